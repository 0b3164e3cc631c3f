package domain

import "time"

const TypeEmail = "email"

// Notification is the message pos-svc publishes on the notifications topic.
type Notification struct {
	Type      string    `json:"type"`
	To        string    `json:"to"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}
