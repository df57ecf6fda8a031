package handler

import (
	"net/http"
	"strconv"

	"contacts-api/internal/middleware"
	"contacts-api/internal/usecase/contact"
	"contacts-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service *contact.Service
}

func NewContactHandler(service *contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	contacts := router.Group("/contacts")
	{
		contacts.GET("", h.ListContacts)
		contacts.GET("/search", h.SearchContacts)
		contacts.GET("/birthdays", h.BirthdaysNextWeek)
		contacts.GET("/:id", h.GetContact)
		contacts.POST("", h.CreateContact)
		contacts.PATCH("/:id", h.UpdateContact)
		contacts.DELETE("/:id", h.DeleteContact)
	}
}

func (h *ContactHandler) ListContacts(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req contact.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	contacts, err := h.service.ListContacts(c.Request.Context(), currentUser.ID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Contacts retrieved successfully", contacts)
}

func (h *ContactHandler) GetContact(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	contactID, err := parseContactID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	result, err := h.service.GetContact(c.Request.Context(), currentUser.ID, contactID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Contact retrieved successfully", result)
}

func (h *ContactHandler) SearchContacts(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	query := c.Query("query")

	contacts, err := h.service.SearchContacts(c.Request.Context(), currentUser.ID, query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Contacts retrieved successfully", contacts)
}

func (h *ContactHandler) BirthdaysNextWeek(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	contacts, err := h.service.BirthdaysNextWeek(c.Request.Context(), currentUser.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Contacts retrieved successfully", contacts)
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req contact.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sanitizeContactRequest(&req)

	result, err := h.service.CreateContact(c.Request.Context(), currentUser.ID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Contact created successfully", result)
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	contactID, err := parseContactID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	var req contact.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sanitizeContactRequest(&req)

	result, err := h.service.UpdateContact(c.Request.Context(), currentUser.ID, contactID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Contact updated successfully", result)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	contactID, err := parseContactID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	result, err := h.service.RemoveContact(c.Request.Context(), currentUser.ID, contactID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Contact deleted successfully", result)
}

// sanitizeContactRequest cleans user-supplied fields before validation.
func sanitizeContactRequest(req *contact.ContactRequest) {
	req.FirstName = utils.SanitizeString(req.FirstName)
	req.LastName = utils.SanitizeString(req.LastName)
	req.Email = utils.SanitizeEmail(req.Email)
	req.Phone = utils.SanitizePhone(req.Phone)
	if req.Description != nil {
		cleaned := utils.SanitizeText(*req.Description)
		req.Description = &cleaned
	}
}

func parseContactID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
