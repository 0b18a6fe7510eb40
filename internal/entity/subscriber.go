package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	SubscriberStatusPending      = "pending"
	SubscriberStatusActive       = "active"
	SubscriberStatusUnsubscribed = "unsubscribed"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type Subscriber struct {
	ID          string            `json:"id"`
	Email       string            `json:"email"`
	Name        string            `json:"name,omitempty"`
	Status      string            `json:"status"`
	Source      string            `json:"source"`
	Preferences map[string]string `json:"preferences,omitempty"`

	// ListmonkID is the upstream subscriber id. nil means "not yet synced":
	// the create call failed or never ran, and updates must no-op.
	ListmonkID *int `json:"listmonk_subscriber_id,omitempty"`

	VerificationToken string     `json:"-"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	UnsubscribedAt    *time.Time `json:"unsubscribed_at,omitempty"`
	IPAddress         string     `json:"-"`
	UserAgent         string     `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func NewSubscriber(email, name, source string, preferences map[string]string) *Subscriber {
	if source == "" {
		source = "website"
	}

	now := time.Now().UTC()
	return &Subscriber{
		ID:                uuid.New().String(),
		Email:             email,
		Name:              name,
		Status:            SubscriberStatusPending,
		Source:            source,
		Preferences:       preferences,
		VerificationToken: uuid.New().String(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (s *Subscriber) IsActive() bool {
	return s.Status == SubscriberStatusActive
}

func (s *Subscriber) IsUnsubscribed() bool {
	return s.Status == SubscriberStatusUnsubscribed
}

type SubscriberRepositoryInterface interface {
	Create(ctx context.Context, s *Subscriber) error
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SetListmonkID(ctx context.Context, id string, listmonkID int) error
}
