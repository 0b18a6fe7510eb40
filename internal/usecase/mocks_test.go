package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/caioaot/atelier-backend/internal/entity"
	"github.com/caioaot/atelier-backend/internal/infra/queue"
)

type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) Create(ctx context.Context, s *entity.Subscriber) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubscriberRepository) FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSubscriberRepository) SetListmonkID(ctx context.Context, id string, listmonkID int) error {
	args := m.Called(ctx, id, listmonkID)
	return args.Error(0)
}

type MockNewsletterGateway struct {
	mock.Mock
}

func (m *MockNewsletterGateway) CreateSubscriber(ctx context.Context, sub *entity.Subscriber) (int, error) {
	args := m.Called(ctx, sub)
	return args.Int(0), args.Error(1)
}

func (m *MockNewsletterGateway) UpdateSubscriber(ctx context.Context, sub *entity.Subscriber) bool {
	args := m.Called(ctx, sub)
	return args.Bool(0)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockRecaptchaVerifier struct {
	mock.Mock
}

func (m *MockRecaptchaVerifier) Verify(ctx context.Context, token string) bool {
	args := m.Called(ctx, token)
	return args.Bool(0)
}

type MockNotificationProducer struct {
	mock.Mock
}

func (m *MockNotificationProducer) PublishContactNotification(ctx context.Context, payload queue.ContactNotification) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
