package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessContact   = "Thank you for your message. Our support team will get back to you shortly."
	MessageSuccessGetTopics = "help topics retrieved successfully"
	MessageFailedContact    = "failed to submit contact form"
	MessageFailedGetTopics  = "failed to retrieve help topics"

	ErrHelpTopicNotFound = errors.New("help topic not found")
)

type (
	ContactRequest struct {
		Name    string `json:"name" validate:"required,max=100"`
		Email   string `json:"email" validate:"required,email"`
		Message string `json:"message" validate:"required,max=4000"`
	}

	HelpTopic struct {
		ID        string    `json:"id"`
		Category  string    `json:"category"`
		Question  string    `json:"question"`
		Answer    string    `json:"answer"`
		Views     int       `json:"views"`
		UpdatedAt time.Time `json:"updated_at"`
	}
)
