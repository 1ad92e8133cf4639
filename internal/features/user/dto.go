package user

import "github.com/google/uuid"

// Requests

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50,noAllRepeatingChars"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50,noAllRepeatingChars"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type AdminRegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50,noAllRepeatingChars"`
	LastName  string `json:"lastName" validate:"required,min=2,max=50,noAllRepeatingChars"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Role      string `json:"role" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	UserID      uuid.UUID `json:"userId" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	Code        string    `json:"code" validate:"required,len=4,numeric"`
	NewPassword string    `json:"newPassword" validate:"required,min=8,max=72"`
}

// Responses

type RegisteredUserResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type LoginResponse struct {
	Token string                 `json:"token"`
	User  RegisteredUserResponse `json:"user"`
}

type VerifiedTokenResponse struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
}

type ForgotPasswordResponse struct {
	UserID uuid.UUID `json:"userId"`
}
