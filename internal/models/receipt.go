package models

import "time"

const DefaultCustomerName = "Guest"

// Receipt is produced by checkout and returned once. It is never stored.
type Receipt struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Total     int64      `json:"total"`
	Items     []CartLine `json:"items"`
	Timestamp time.Time  `json:"timestamp"`
}

type CheckoutRequest struct {
	Name        string   `json:"name" validate:"max=200"`
	Email       string   `json:"email" validate:"max=320"`
	SelectedIDs []string `json:"selectedIds"`
}

type CheckoutResponse struct {
	Receipt *Receipt `json:"receipt"`
}

type EmailNotificationRequest struct {
	To          string
	ToName      string
	Subject     string
	Content     string
	HTMLContent string
}
