package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pulsefit/server/internal/service"
)

// UserHandler exposes the account profile and avatar upload flow.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType"`
}

// GetProfile returns the caller's account record.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch profile")
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// RequestAvatarUpload returns a presigned PUT URL the client uploads the
// avatar image against.
func (h *UserHandler) RequestAvatarUpload(c *gin.Context) {
	userID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AvatarUploadRequest
	// Body is optional; an empty one falls back to image/jpeg.
	_ = c.ShouldBindJSON(&req)

	uploadURL, err := h.userService.RequestAvatarUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to prepare avatar upload")
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploadUrl": uploadURL})
}

// GetAvatarURL resolves the caller's avatar to a presigned download URL.
func (h *UserHandler) GetAvatarURL(c *gin.Context) {
	userID, err := getUserObjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	downloadURL, err := h.userService.AvatarURL(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoAvatar) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve avatar URL")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatarUrl": downloadURL})
}
