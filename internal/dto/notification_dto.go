package dto

import "time"

type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
