package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ContactTypeGeneral     = "general"
	ContactTypeProject     = "project"
	ContactTypeSupport     = "support"
	ContactTypePartnership = "partnership"

	ContactStatusUnread    = "unread"
	ContactStatusRead      = "read"
	ContactStatusResponded = "responded"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	Source    string    `json:"source"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewContact(name, email, phone, company, subject, message, contactType string) *Contact {
	if contactType == "" {
		contactType = ContactTypeGeneral
	}

	now := time.Now().UTC()
	return &Contact{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Company:   company,
		Subject:   subject,
		Message:   message,
		Type:      contactType,
		Status:    ContactStatusUnread,
		Source:    "website",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *Contact) error
}
