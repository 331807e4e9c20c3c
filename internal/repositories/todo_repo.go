package repositories

import (
	"errors"
	"fmt"

	"kedai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TodoRepository defines the interface for todo data access, scoped to the
// owning user.
type TodoRepository interface {
	GetAllByUser(userID string) ([]models.Todo, error)
	GetByID(id, userID string) (*models.Todo, error)
	Create(todo *models.Todo) error
	Update(todo *models.Todo) error
	Delete(id, userID string) error
}

// GORMTodoRepository is a GORM implementation of TodoRepository.
type GORMTodoRepository struct {
	db *gorm.DB
}

// NewGORMTodoRepository creates a new instance of GORMTodoRepository.
func NewGORMTodoRepository(db *gorm.DB) *GORMTodoRepository {
	return &GORMTodoRepository{db: db}
}

// GetAllByUser retrieves the user's todos, newest first.
func (r *GORMTodoRepository) GetAllByUser(userID string) ([]models.Todo, error) {
	var todos []models.Todo
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get todos for user %s: %w", userID, err)
	}
	return todos, nil
}

// GetByID retrieves a todo scoped to the owning user.
func (r *GORMTodoRepository) GetByID(id, userID string) (*models.Todo, error) {
	var todo models.Todo
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("todo %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get todo %s: %w", id, err)
	}
	return &todo, nil
}

// Create inserts a new todo.
func (r *GORMTodoRepository) Create(todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	if err := r.db.Create(todo).Error; err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

// Update saves changes to an existing todo.
func (r *GORMTodoRepository) Update(todo *models.Todo) error {
	res := r.db.Save(todo)
	if res.Error != nil {
		return fmt.Errorf("failed to update todo %s: %w", todo.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("todo %s: %w", todo.ID, models.ErrNotFound)
	}
	return nil
}

// Delete removes a todo scoped to the owning user.
func (r *GORMTodoRepository) Delete(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Todo{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete todo %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("todo %s: %w", id, models.ErrNotFound)
	}
	return nil
}
