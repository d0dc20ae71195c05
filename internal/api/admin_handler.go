package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pulsefit/server/internal/service"
)

// AdminHandler fronts the identity provider's admin API. The request and
// response shapes match the original serverless admin function:
// POST bodies carry {action, username?, userPoolId} and errors come back as
// {error: string}.
type AdminHandler struct {
	adminService service.AdminService
	userPoolID   string // Deployment default when the request omits it
}

func NewAdminHandler(adminService service.AdminService, userPoolID string) *AdminHandler {
	return &AdminHandler{adminService: adminService, userPoolID: userPoolID}
}

// AdminActionRequest is the shared body for both admin endpoints.
type AdminActionRequest struct {
	Action     string `json:"action"`
	Username   string `json:"username"`
	UserPoolID string `json:"userPoolId"`
}

func (h *AdminHandler) poolID(req AdminActionRequest) string {
	if req.UserPoolID != "" {
		return req.UserPoolID
	}
	return h.userPoolID
}

// ListUsers syncs the pool's users from the identity provider into the
// mirror and returns them.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var req AdminActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if req.Action != "" && req.Action != service.AdminActionListUsers {
		abortWithError(c, http.StatusBadRequest, service.ErrUnknownAdminAction.Error())
		return
	}

	users, err := h.adminService.SyncUsers(c.Request.Context(), h.poolID(req))
	if err != nil {
		if errors.Is(err, service.ErrUserPoolRequired) {
			abortWithError(c, http.StatusBadRequest, "User Pool ID is required")
		} else {
			abortWithError(c, http.StatusBadGateway, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUser applies one enable/disable/delete action.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req AdminActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	message, err := h.adminService.UpdateUser(c.Request.Context(), h.poolID(req), req.Action, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownAdminAction):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUsernameRequired):
			abortWithError(c, http.StatusBadRequest, "Username is required")
		case errors.Is(err, service.ErrUserPoolRequired):
			abortWithError(c, http.StatusBadRequest, "User Pool ID is required")
		default:
			abortWithError(c, http.StatusBadGateway, err.Error())
		}
		return
	}

	response := gin.H{"message": message, "username": req.Username}
	switch req.Action {
	case service.AdminActionEnableUser:
		response["enabled"] = true
	case service.AdminActionDisableUser:
		response["enabled"] = false
	}
	c.JSON(http.StatusOK, response)
}

// MirrorUsers returns the cached mirror collection without calling the
// identity provider.
func (h *AdminHandler) MirrorUsers(c *gin.Context) {
	users, err := h.adminService.MirrorUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read user mirror")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
