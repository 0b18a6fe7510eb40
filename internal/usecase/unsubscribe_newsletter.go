package usecase

import (
	"context"
	"log/slog"

	"github.com/caioaot/atelier-backend/internal/entity"
)

type UnsubscribeInput struct {
	Email string
	Token string
}

type UnsubscribeNewsletterUseCase struct {
	Subscribers entity.SubscriberRepositoryInterface
	Newsletter  NewsletterGateway
	Log         *slog.Logger
}

func NewUnsubscribeNewsletterUseCase(
	subscribers entity.SubscriberRepositoryInterface,
	newsletter NewsletterGateway,
	log *slog.Logger,
) *UnsubscribeNewsletterUseCase {
	return &UnsubscribeNewsletterUseCase{
		Subscribers: subscribers,
		Newsletter:  newsletter,
		Log:         log,
	}
}

// Execute returns entity.ErrNotFound for unknown addresses; the handler maps
// that to 404.
func (uc *UnsubscribeNewsletterUseCase) Execute(ctx context.Context, input UnsubscribeInput) (*SubscribeOutput, error) {
	sub, err := uc.Subscribers.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if sub.IsUnsubscribed() {
		return &SubscribeOutput{Status: StatusAlreadyUnsubscribed, Email: sub.Email}, nil
	}

	if err := uc.Subscribers.UpdateStatus(ctx, sub.ID, entity.SubscriberStatusUnsubscribed); err != nil {
		return nil, err
	}
	sub.Status = entity.SubscriberStatusUnsubscribed

	uc.Newsletter.UpdateSubscriber(ctx, sub)

	uc.Log.Info("newsletter unsubscription", "subscriber_id", sub.ID, "email", sub.Email)
	return &SubscribeOutput{Status: StatusUnsubscribed, Email: sub.Email}, nil
}
