package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/atlas-lingua/portal-service/internal/services"
	"github.com/atlas-lingua/portal-service/internal/utils"
)

// IntakeHandler serves the unauthenticated marketing-site surfaces: placement
// test scoring and consultation booking.
type IntakeHandler struct {
	BaseHandler
	service services.IntakeService
}

func NewIntakeHandler(service services.IntakeService, logger utils.Logger) *IntakeHandler {
	return &IntakeHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *IntakeHandler) SubmitPlacementTest(c *gin.Context) {
	h.LogRequest(c, "Scoring placement test")

	var req services.PlacementTestRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.ScorePlacementTest(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"result": result})
}

func (h *IntakeHandler) BookConsultation(c *gin.Context) {
	h.LogRequest(c, "Booking consultation")

	var req services.ConsultationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	id, err := h.service.BookConsultation(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"id": id})
}
