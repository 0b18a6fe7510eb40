package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/caioaot/atelier-backend/internal/entity"
)

const (
	StatusAlreadySubscribed   = "already_subscribed"
	StatusResubscribed        = "resubscribed"
	StatusPendingVerification = "pending_verification"
	StatusUnsubscribed        = "unsubscribed"
	StatusAlreadyUnsubscribed = "already_unsubscribed"
)

type SubscribeInput struct {
	Email       string
	Name        string
	Source      string
	Preferences map[string]string
	IPAddress   string
	UserAgent   string
}

type SubscribeOutput struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

type SubscribeNewsletterUseCase struct {
	Subscribers entity.SubscriberRepositoryInterface
	Newsletter  NewsletterGateway
	Log         *slog.Logger
}

func NewSubscribeNewsletterUseCase(
	subscribers entity.SubscriberRepositoryInterface,
	newsletter NewsletterGateway,
	log *slog.Logger,
) *SubscribeNewsletterUseCase {
	return &SubscribeNewsletterUseCase{
		Subscribers: subscribers,
		Newsletter:  newsletter,
		Log:         log,
	}
}

func (uc *SubscribeNewsletterUseCase) Execute(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error) {
	existing, err := uc.Subscribers.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return uc.reactivate(ctx, existing)
	case errors.Is(err, entity.ErrNotFound):
		return uc.subscribe(ctx, input)
	default:
		return nil, err
	}
}

func (uc *SubscribeNewsletterUseCase) reactivate(ctx context.Context, sub *entity.Subscriber) (*SubscribeOutput, error) {
	if sub.IsActive() {
		return &SubscribeOutput{Status: StatusAlreadySubscribed, Email: sub.Email}, nil
	}

	if err := uc.Subscribers.UpdateStatus(ctx, sub.ID, entity.SubscriberStatusActive); err != nil {
		return nil, err
	}
	sub.Status = entity.SubscriberStatusActive

	uc.Newsletter.UpdateSubscriber(ctx, sub)

	uc.Log.Info("newsletter resubscription", "subscriber_id", sub.ID, "email", sub.Email)
	return &SubscribeOutput{Status: StatusResubscribed, Email: sub.Email}, nil
}

func (uc *SubscribeNewsletterUseCase) subscribe(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error) {
	sub := entity.NewSubscriber(input.Email, input.Name, input.Source, input.Preferences)
	sub.IPAddress = input.IPAddress
	sub.UserAgent = input.UserAgent

	if err := uc.Subscribers.Create(ctx, sub); err != nil {
		// A concurrent subscribe for the same address won the insert; the
		// record exists, so report it the same way a repeat call would.
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return &SubscribeOutput{Status: StatusAlreadySubscribed, Email: input.Email}, nil
		}
		return nil, err
	}

	// Sync failure leaves ListmonkID null; the record persists locally and
	// is never retried automatically.
	listmonkID, err := uc.Newsletter.CreateSubscriber(ctx, sub)
	if err != nil {
		uc.Log.Error("listmonk subscription failed", "email", sub.Email, "error", err)
	} else if err := uc.Subscribers.SetListmonkID(ctx, sub.ID, listmonkID); err != nil {
		uc.Log.Error("failed to store listmonk id", "subscriber_id", sub.ID, "error", err)
	}

	uc.Log.Info("new newsletter subscription",
		"subscriber_id", sub.ID,
		"email", sub.Email,
		"source", sub.Source,
	)

	return &SubscribeOutput{Status: StatusPendingVerification, Email: sub.Email}, nil
}
