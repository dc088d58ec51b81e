package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atlas-lingua/portal-service/internal/services"
	"github.com/atlas-lingua/portal-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetDashboard returns the caller's enrollments, submissions, and the latest
// five notifications.
func (h *StudentHandler) GetDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting student dashboard")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"data": dashboard})
}

func (h *StudentHandler) Enroll(c *gin.Context) {
	h.LogRequest(c, "Enrolling in course")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req services.EnrollRequest
	if !h.BindJSON(c, &req) {
		return
	}

	enrollment, err := h.service.Enroll(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"enrollmentId": enrollment.ID})
}

func (h *StudentHandler) SubmitAssignment(c *gin.Context) {
	h.LogRequest(c, "Submitting assignment")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req services.SubmitAssignmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	submission, err := h.service.SubmitAssignment(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"submissionId": submission.ID})
}
