package handlers

import (
	"log"

	"kedai/internal/middleware"
	"kedai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	service  *services.ContactService
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public contact route.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/contact", h.HandleSubmit)
}

// ContactFormRequest represents a contact form submission.
type ContactFormRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,max=500"`
	Message string `json:"message" validate:"required,max=5000"`
}

// HandleSubmit opens an inquiry thread from the submission. When the request
// carries a valid token the thread is bound to that user.
func (h *ContactHandler) HandleSubmit(c *fiber.Ctx) error {
	var req ContactFormRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing contact request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	var userID *string
	if id := middleware.UserID(c); id != "" {
		userID = &id
	}

	thread, err := h.service.SubmitInquiry(services.ContactRequest{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}, userID)
	if err != nil {
		log.Printf("Error submitting inquiry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit inquiry",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Thank you for contacting us! We will get back to you within 24 hours.",
		"thread_id": thread.ID,
	})
}
