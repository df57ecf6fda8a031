package handler

import (
	"net/http"

	"contacts-api/internal/middleware"
	"contacts-api/internal/usecase/user"
	"contacts-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *user.Service
}

func NewUserHandler(service *user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, profileLimiter gin.HandlerFunc) {
	userGroup := router.Group("/users")
	{
		userGroup.GET("/me", profileLimiter, h.Me)
		userGroup.PATCH("/avatar", h.UpdateAvatar)
	}
}

// Me returns the caller's profile, re-read from storage so the response
// reflects changes made after the access token was resolved.
func (h *UserHandler) Me(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), currentUser.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Avatar file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read avatar file")
		return
	}
	defer file.Close()

	userResponse, err := h.service.UpdateAvatar(c.Request.Context(), currentUser, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Avatar updated successfully", userResponse)
}
