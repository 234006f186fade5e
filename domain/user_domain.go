package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister = "registration successful"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetUser  = "user retrieved successfully"
	MessageSuccessLogout   = "logout successful"

	MessageFailedRegister = "failed to register"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetUser  = "failed to retrieve user"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6,max=72"`
		Role     string `json:"role" validate:"omitempty,oneof=donor collector"`
		Address  string `json:"address" validate:"omitempty,max=255"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	User struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Email       string    `json:"email"`
		Role        string    `json:"role"`
		Address     string    `json:"address,omitempty"`
		RatingAvg   float64   `json:"rating_avg"`
		RatingCount int       `json:"rating_count"`
		CreatedAt   time.Time `json:"created_at"`
	}

	AuthResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
)
