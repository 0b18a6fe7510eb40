package usecase

import (
	"context"

	"github.com/caioaot/atelier-backend/internal/entity"
	"github.com/caioaot/atelier-backend/internal/infra/queue"
)

type RecaptchaVerifier interface {
	Verify(ctx context.Context, token string) bool
}

type NewsletterGateway interface {
	CreateSubscriber(ctx context.Context, sub *entity.Subscriber) (int, error)
	UpdateSubscriber(ctx context.Context, sub *entity.Subscriber) bool
}

type NotificationProducer interface {
	PublishContactNotification(ctx context.Context, payload queue.ContactNotification) error
}
