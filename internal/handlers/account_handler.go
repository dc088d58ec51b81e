package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atlas-lingua/portal-service/internal/services"
	"github.com/atlas-lingua/portal-service/internal/utils"
)

type AccountHandler struct {
	BaseHandler
	service services.AccountService
}

func NewAccountHandler(service services.AccountService, logger utils.Logger) *AccountHandler {
	return &AccountHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Signup creates an identity at the auth provider and the matching Profile
// record with the default student role.
func (h *AccountHandler) Signup(c *gin.Context) {
	h.LogRequest(c, "Signing up user")

	var req services.SignupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"user": profile})
}

// GetProfile returns the caller's own profile.
func (h *AccountHandler) GetProfile(c *gin.Context) {
	h.LogRequest(c, "Getting profile")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		h.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"profile": profile})
}
