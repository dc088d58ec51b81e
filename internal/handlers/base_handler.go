package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/services"
	"github.com/atlas-lingua/portal-service/internal/utils"
)

// BaseHandler carries the logger and the shared response/error plumbing every
// handler embeds.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.FromContext(c, h.logger).Debug(msg, "path", c.Request.URL.Path)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	utils.FromContext(c, h.logger).Error(msg, "path", c.Request.URL.Path, "error", err)
}

// ===== RESPONSE ENVELOPE =====

// OK writes the uniform success envelope: {success: true, <payload fields>}.
func (h *BaseHandler) OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes the uniform error envelope with the given status.
func (h *BaseHandler) Fail(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorEnvelope{Success: false, Error: message})
}

// BindJSON decodes the request body, translating decode failures into the
// validation-error envelope. Returns false when the response is already
// written.
func (h *BaseHandler) BindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		h.Fail(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// HandleServiceError maps service sentinel errors to HTTP statuses. Messages
// stay generic; details are logged, not returned.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		h.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		h.Fail(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, services.ErrForbidden):
		h.Fail(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrNotFound):
		h.Fail(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, services.ErrConflict):
		h.Fail(c, http.StatusConflict, "already exists")
	default:
		h.LogError(c, err, "unexpected service error")
		h.Fail(c, http.StatusInternalServerError, "internal server error")
	}
}
