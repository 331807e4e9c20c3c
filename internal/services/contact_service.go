package services

import (
	"log"
	"time"

	"kedai/internal/models"
	"kedai/internal/repositories"
)

// ContactRequest carries a validated contact form submission.
type ContactRequest struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService handles contact form submissions.
type ContactService struct {
	repo repositories.ContactRepository
}

// NewContactService creates a new ContactService.
func NewContactService(repo repositories.ContactRepository) *ContactService {
	return &ContactService{
		repo: repo,
	}
}

// SubmitInquiry opens an inquiry thread with the submission as its first
// message. When userID is non-nil the thread is bound to the user; otherwise
// the sender's name and email are kept on the thread as guest details.
func (s *ContactService) SubmitInquiry(req ContactRequest, userID *string) (*models.InquiryThread, error) {
	thread := &models.InquiryThread{
		UserID:        userID,
		Subject:       req.Subject,
		Status:        "pending",
		LastMessageAt: time.Now(),
	}
	message := &models.ThreadMessage{
		SenderID:    userID,
		SenderType:  models.SenderTypeUser,
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Message:     req.Message,
	}
	if userID == nil {
		thread.GuestName = &req.Name
		thread.GuestEmail = &req.Email
		message.SenderType = models.SenderTypeGuest
	}

	if err := s.repo.CreateThreadWithMessage(thread, message); err != nil {
		return nil, err
	}

	log.Printf("Contact form submission: thread=%s subject=%q from=%s", thread.ID, req.Subject, req.Email)
	return thread, nil
}
