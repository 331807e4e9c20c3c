package handlers

import (
	"errors"
	"log"

	"kedai/internal/middleware"
	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TodoHandler handles HTTP requests for the user's todo list.
type TodoHandler struct {
	service  *services.TodoService
	validate *validator.Validate
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(service *services.TodoService) *TodoHandler {
	return &TodoHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the todo routes with the Fiber app.
func (h *TodoHandler) RegisterRoutes(router fiber.Router) {
	todoRoutes := router.Group("/todos")
	todoRoutes.Get("/", h.HandleGetTodos)
	todoRoutes.Post("/", h.HandleCreateTodo)
	todoRoutes.Get("/:id", h.HandleGetTodoByID)
	todoRoutes.Put("/:id", h.HandleUpdateTodo)
	todoRoutes.Delete("/:id", h.HandleDeleteTodo)
}

// HandleGetTodos retrieves the user's todos.
func (h *TodoHandler) HandleGetTodos(c *fiber.Ctx) error {
	todos, err := h.service.GetTodos(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting todos: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve todos",
			"error":   err.Error(),
		})
	}
	return c.JSON(todos)
}

// HandleGetTodoByID retrieves a single todo owned by the user.
func (h *TodoHandler) HandleGetTodoByID(c *fiber.Ctx) error {
	todo, err := h.service.GetTodoByID(c.Params("id"), middleware.UserID(c))
	if err != nil {
		return todoErrorResponse(c, "Could not retrieve todo", err)
	}
	return c.JSON(todo)
}

// CreateTodoRequest represents the request body for creating a todo.
type CreateTodoRequest struct {
	Text      string `json:"text" validate:"required,max=255"`
	Completed bool   `json:"completed"`
}

// HandleCreateTodo creates a todo for the user.
func (h *TodoHandler) HandleCreateTodo(c *fiber.Ctx) error {
	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing todo request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	todo, err := h.service.CreateTodo(middleware.UserID(c), req.Text, req.Completed)
	if err != nil {
		return todoErrorResponse(c, "Could not create todo", err)
	}
	return c.Status(fiber.StatusCreated).JSON(todo)
}

// UpdateTodoRequest represents a partial todo update.
type UpdateTodoRequest struct {
	Text      *string `json:"text" validate:"omitempty,max=255"`
	Completed *bool   `json:"completed"`
}

// HandleUpdateTodo applies partial changes to a todo owned by the user.
func (h *TodoHandler) HandleUpdateTodo(c *fiber.Ctx) error {
	var req UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing todo request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	todo, err := h.service.UpdateTodo(c.Params("id"), middleware.UserID(c), req.Text, req.Completed)
	if err != nil {
		return todoErrorResponse(c, "Could not update todo", err)
	}
	return c.JSON(todo)
}

// HandleDeleteTodo removes a todo owned by the user.
func (h *TodoHandler) HandleDeleteTodo(c *fiber.Ctx) error {
	if err := h.service.DeleteTodo(c.Params("id"), middleware.UserID(c)); err != nil {
		return todoErrorResponse(c, "Could not delete todo", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func todoErrorResponse(c *fiber.Ctx, message string, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Todo not found",
		})
	}
	log.Printf("Todo operation failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
