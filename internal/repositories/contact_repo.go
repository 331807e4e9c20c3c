package repositories

import (
	"fmt"

	"kedai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository defines the interface for inquiry thread data access.
type ContactRepository interface {
	// CreateThreadWithMessage inserts a thread and its first message in one
	// transaction; either both rows exist afterwards or neither does.
	CreateThreadWithMessage(thread *models.InquiryThread, message *models.ThreadMessage) error
}

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{db: db}
}

// CreateThreadWithMessage inserts the thread and its initial message atomically.
func (r *GORMContactRepository) CreateThreadWithMessage(thread *models.InquiryThread, message *models.ThreadMessage) error {
	if thread.ID == "" {
		thread.ID = uuid.New().String()
	}
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.ThreadID = thread.ID

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(thread).Error; err != nil {
			return err
		}
		return tx.Create(message).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create inquiry thread: %w", err)
	}
	return nil
}
