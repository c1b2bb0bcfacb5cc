package dto

import "time"

type RegisterRequest struct {
	Username  string  `json:"username" form:"username" binding:"required,min=3,max=30"`
	Email     string  `json:"email" form:"email" binding:"required,email"`
	Password  string  `json:"password" form:"password" binding:"required,min=8"`
	Bio       string  `json:"bio" form:"bio" binding:"omitempty,max=500"`
	FirstName *string `json:"first_name" form:"first_name"`
	LastName  *string `json:"last_name" form:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	User        *UserResponse `json:"user"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsStaff    bool      `json:"is_staff"`
	AvatarURL  *string   `json:"avatar_url"`
	Bio        string    `json:"bio"`
	DateJoined time.Time `json:"date_joined"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ConfirmResetRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
