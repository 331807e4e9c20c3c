package services

import (
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// TodoService handles a user's todo list.
type TodoService struct {
	repo repositories.TodoRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(repo repositories.TodoRepository) *TodoService {
	return &TodoService{
		repo: repo,
	}
}

// GetTodos retrieves the user's todos, newest first.
func (s *TodoService) GetTodos(userID string) ([]models.Todo, error) {
	return s.repo.GetAllByUser(userID)
}

// GetTodoByID retrieves a single todo owned by the user.
func (s *TodoService) GetTodoByID(id, userID string) (*models.Todo, error) {
	return s.repo.GetByID(id, userID)
}

// CreateTodo creates a todo for the user.
func (s *TodoService) CreateTodo(userID, text string, completed bool) (*models.Todo, error) {
	todo := &models.Todo{
		UserID:    userID,
		Text:      text,
		Completed: completed,
	}
	if err := s.repo.Create(todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// UpdateTodo applies partial changes to a todo owned by the user.
func (s *TodoService) UpdateTodo(id, userID string, text *string, completed *bool) (*models.Todo, error) {
	todo, err := s.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if text != nil {
		todo.Text = *text
	}
	if completed != nil {
		todo.Completed = *completed
	}
	if err := s.repo.Update(todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// DeleteTodo removes a todo owned by the user.
func (s *TodoService) DeleteTodo(id, userID string) error {
	return s.repo.Delete(id, userID)
}
