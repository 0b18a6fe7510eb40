package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/caioaot/atelier-backend/internal/entity"
	"github.com/caioaot/atelier-backend/internal/infra/queue"
)

var ErrRecaptchaFailed = errors.New("recaptcha verification failed")

type SubmitContactInput struct {
	Name           string
	Email          string
	Phone          string
	Company        string
	Subject        string
	Message        string
	Type           string
	RecaptchaToken string
	IPAddress      string
	UserAgent      string
}

type SubmitContactOutput struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	// Priority is for callers (metrics, logs), not the API response.
	Priority string `json:"-"`
}

type SubmitContactUseCase struct {
	Contacts      entity.ContactRepositoryInterface
	Recaptcha     RecaptchaVerifier
	Notifications NotificationProducer
	Log           *slog.Logger
}

func NewSubmitContactUseCase(
	contacts entity.ContactRepositoryInterface,
	recaptcha RecaptchaVerifier,
	notifications NotificationProducer,
	log *slog.Logger,
) *SubmitContactUseCase {
	return &SubmitContactUseCase{
		Contacts:      contacts,
		Recaptcha:     recaptcha,
		Notifications: notifications,
		Log:           log,
	}
}

func (uc *SubmitContactUseCase) Execute(ctx context.Context, input SubmitContactInput) (*SubmitContactOutput, error) {
	if !uc.Recaptcha.Verify(ctx, input.RecaptchaToken) {
		return nil, ErrRecaptchaFailed
	}

	contact := entity.NewContact(
		input.Name, input.Email, input.Phone, input.Company,
		input.Subject, input.Message, input.Type,
	)
	contact.Priority = ClassifyPriority(input.Subject, input.Message, contact.Type)
	contact.IPAddress = input.IPAddress
	contact.UserAgent = input.UserAgent

	if err := uc.Contacts.Create(ctx, contact); err != nil {
		return nil, err
	}

	uc.Log.Info("new contact form submission",
		"contact_id", contact.ID,
		"email", contact.Email,
		"subject", contact.Subject,
		"type", contact.Type,
		"priority", contact.Priority,
	)

	// Notification delivery is async and best effort: a queue outage must
	// not fail a submission that is already stored.
	if uc.Notifications != nil {
		err := uc.Notifications.PublishContactNotification(ctx, queue.ContactNotification{
			ContactID: contact.ID,
			Name:      contact.Name,
			Email:     contact.Email,
			Company:   contact.Company,
			Subject:   contact.Subject,
			Message:   contact.Message,
			Type:      contact.Type,
			Priority:  contact.Priority,
		})
		if err != nil {
			uc.Log.Error("failed to publish contact notification",
				"contact_id", contact.ID,
				"error", err,
			)
		}
	}

	return &SubmitContactOutput{ID: contact.ID, Status: "submitted", Priority: contact.Priority}, nil
}
