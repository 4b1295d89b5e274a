package domain

import "time"

type User struct {
	UserID            string    `json:"id" dynamodbav:"user_id"`
	Email             string    `json:"email" dynamodbav:"email"`
	Username          string    `json:"username" dynamodbav:"username"`
	PasswordHash      string    `json:"-" dynamodbav:"password_hash,omitempty"`
	Role              string    `json:"role" dynamodbav:"role"`
	Contact           string    `json:"contact,omitempty" dynamodbav:"contact,omitempty"`
	Bio               string    `json:"bio,omitempty" dynamodbav:"bio,omitempty"`
	ProfileImage      string    `json:"profile_image" dynamodbav:"profile_image"`
	GoogleSub         string    `json:"-" dynamodbav:"google_sub,omitempty"` // sparse GSI key
	GoogleEmail       string    `json:"-" dynamodbav:"google_email,omitempty"`
	GoogleDisplayName string    `json:"-" dynamodbav:"google_display_name,omitempty"`
	GooglePhotoURL    string    `json:"-" dynamodbav:"google_photo_url,omitempty"`
	CreatedAt         time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"`
	Contact  string `json:"contact"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Contact  *string `json:"contact"`
	Bio      *string `json:"bio"`
}

type UpdateProfileImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}
