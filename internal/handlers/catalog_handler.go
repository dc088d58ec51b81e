package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/atlas-lingua/portal-service/internal/services"
	"github.com/atlas-lingua/portal-service/internal/utils"
)

type CatalogHandler struct {
	BaseHandler
	service services.CatalogService
}

func NewCatalogHandler(service services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListCourses returns every course record for the public catalog.
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	h.LogRequest(c, "Listing courses")

	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"courses": courses})
}

func (h *CatalogHandler) GetCourse(c *gin.Context) {
	h.LogRequest(c, "Getting course")

	course, err := h.service.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"course": course})
}

// InitCourses seeds the default catalog. Safe to call repeatedly.
func (h *CatalogHandler) InitCourses(c *gin.Context) {
	h.LogRequest(c, "Initializing default courses")

	if err := h.service.SeedDefaultCourses(c.Request.Context()); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"message": "Courses initialized"})
}
