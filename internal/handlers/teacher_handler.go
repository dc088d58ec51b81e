package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atlas-lingua/portal-service/internal/services"
	"github.com/atlas-lingua/portal-service/internal/utils"
)

type TeacherHandler struct {
	BaseHandler
	service services.TeacherService
}

func NewTeacherHandler(service services.TeacherService, logger utils.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *TeacherHandler) GetDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting teacher dashboard")

	teacherID, err := GetUserIDFromContext(c)
	if err != nil {
		h.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), teacherID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"data": dashboard})
}

func (h *TeacherHandler) CreateAssignment(c *gin.Context) {
	h.LogRequest(c, "Creating assignment")

	teacherID, err := GetUserIDFromContext(c)
	if err != nil {
		h.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req services.CreateAssignmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	assignment, err := h.service.CreateAssignment(c.Request.Context(), teacherID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"assignmentId": assignment.ID})
}

// GradeSubmission sets grade and feedback on a student's submission.
func (h *TeacherHandler) GradeSubmission(c *gin.Context) {
	h.LogRequest(c, "Grading submission")

	teacherID, err := GetUserIDFromContext(c)
	if err != nil {
		h.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req services.GradeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	submission, err := h.service.GradeSubmission(c.Request.Context(), teacherID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"submission": submission})
}
