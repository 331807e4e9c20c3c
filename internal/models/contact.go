package models

import "time"

// Sender types for thread messages.
const (
	SenderTypeUser  = "user"
	SenderTypeGuest = "guest"
)

// InquiryThread is a contact-form conversation. Guest submissions carry the
// sender's name and email on the thread; authenticated submissions reference
// the user instead.
type InquiryThread struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        *string         `json:"user_id" gorm:"type:varchar(36);index"`
	GuestName     *string         `json:"guest_name" gorm:"type:varchar(255)"`
	GuestEmail    *string         `json:"guest_email" gorm:"type:varchar(255)"`
	Subject       string          `json:"subject" gorm:"type:varchar(500)"`
	Status        string          `json:"status" gorm:"type:varchar(16);default:'pending'"`
	LastMessageAt time.Time       `json:"last_message_at"`
	Messages      []ThreadMessage `json:"messages,omitempty" gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ThreadMessage is one message within an inquiry thread.
type ThreadMessage struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ThreadID    string    `json:"thread_id" gorm:"type:varchar(36);index"`
	SenderType  string    `json:"sender_type" gorm:"type:varchar(16)"`
	SenderID    *string   `json:"sender_id" gorm:"type:varchar(36)"`
	SenderName  string    `json:"sender_name" gorm:"type:varchar(255)"`
	SenderEmail string    `json:"sender_email" gorm:"type:varchar(255)"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
