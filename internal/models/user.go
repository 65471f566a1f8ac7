package models

import "time"

type User struct {
	ID               int       `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	SubscribedToNews bool      `json:"subscribed_to_news"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UpdateProfileRequest struct {
	FullName         *string `json:"full_name,omitempty"`
	SubscribedToNews *bool   `json:"subscribed_to_news,omitempty"`
}

type UserProfileResponse struct {
	ID               int       `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	Role             string    `json:"role"`
	SubscribedToNews bool      `json:"subscribed_to_news"`
	CreatedAt        time.Time `json:"created_at"`
}
