package models

import "gorm.io/gorm"

// Todo represents a single entry on a user's todo list.
type Todo struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string `json:"user_id" gorm:"type:varchar(36);index"`
	Text       string `json:"text" gorm:"type:varchar(255)" validate:"required,max=255"`
	Completed  bool   `json:"completed" gorm:"default:false"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
