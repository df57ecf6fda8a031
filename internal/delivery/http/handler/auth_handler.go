package handler

import (
	"fmt"
	"net/http"

	"contacts-api/internal/middleware"
	"contacts-api/internal/usecase/user"
	"contacts-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *user.Service
}

func NewAuthHandler(service *user.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh_token", h.RefreshToken)
		authGroup.GET("/confirm_email/:token", h.ConfirmEmail)
		authGroup.POST("/request_email", h.RequestEmail)
		authGroup.GET("/public", h.Public)
	}
}

func (h *AuthHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/admin", h.Admin)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.Username = utils.SanitizeString(req.Username)

	userResponse, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", userResponse)
}

// Login accepts form-encoded username/password and returns a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest

	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", tokens)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req user.TokenRefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokens, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", tokens)
}

func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Param("token")

	message, err := h.service.ConfirmEmail(c.Request.Context(), token)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, nil)
}

func (h *AuthHandler) RequestEmail(c *gin.Context) {
	var req user.RequestEmailRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	message, err := h.service.RequestEmail(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, nil)
}

// Public is the unauthenticated counterpart of the admin route.
func (h *AuthHandler) Public(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "This is a public route accessible to everyone", nil)
}

func (h *AuthHandler) Admin(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	greeting := fmt.Sprintf("Hello, %s! This is an admin route.", currentUser.Username)
	utils.SuccessResponse(c, http.StatusOK, greeting, nil)
}
