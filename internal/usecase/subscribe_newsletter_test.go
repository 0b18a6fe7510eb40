package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caioaot/atelier-backend/internal/entity"
	"github.com/caioaot/atelier-backend/internal/logger"
)

func newSubscribeUC(repo *MockSubscriberRepository, gw *MockNewsletterGateway) *SubscribeNewsletterUseCase {
	return NewSubscribeNewsletterUseCase(repo, gw, logger.NewNop())
}

func TestSubscribeNewAddressCreatesAndSyncs(t *testing.T) {
	repo := new(MockSubscriberRepository)
	gw := new(MockNewsletterGateway)

	repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, entity.ErrNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	gw.On("CreateSubscriber", mock.Anything, mock.Anything).Return(42, nil)
	repo.On("SetListmonkID", mock.Anything, mock.Anything, 42).Return(nil)

	out, err := newSubscribeUC(repo, gw).Execute(context.Background(), SubscribeInput{
		Email: "ada@example.com",
		Name:  "Ada",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPendingVerification, out.Status)
	repo.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestSubscribeTwiceReturnsAlreadySubscribedWithoutDuplicate(t *testing.T) {
	repo := new(MockSubscriberRepository)
	gw := new(MockNewsletterGateway)

	active := entity.NewSubscriber("ada@example.com", "Ada", "website", nil)
	active.Status = entity.SubscriberStatusActive
	repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(active, nil)

	out, err := newSubscribeUC(repo, gw).Execute(context.Background(), SubscribeInput{
		Email: "ada@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusAlreadySubscribed, out.Status)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "CreateSubscriber", mock.Anything, mock.Anything)
}

func TestSubscribeUnsubscribedAddressResubscribes(t *testing.T) {
	repo := new(MockSubscriberRepository)
	gw := new(MockNewsletterGateway)

	listmonkID := 42
	sub := entity.NewSubscriber("ada@example.com", "Ada", "website", nil)
	sub.Status = entity.SubscriberStatusUnsubscribed
	sub.ListmonkID = &listmonkID

	repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(sub, nil)
	repo.On("UpdateStatus", mock.Anything, sub.ID, entity.SubscriberStatusActive).Return(nil)
	gw.On("UpdateSubscriber", mock.Anything, mock.MatchedBy(func(s *entity.Subscriber) bool {
		return s.IsActive()
	})).Return(true)

	out, err := newSubscribeUC(repo, gw).Execute(context.Background(), SubscribeInput{
		Email: "ada@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusResubscribed, out.Status)
	repo.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestSubscribeKeepsLocalRecordWhenListmonkFails(t *testing.T) {
	repo := new(MockSubscriberRepository)
	gw := new(MockNewsletterGateway)

	repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, entity.ErrNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	gw.On("CreateSubscriber", mock.Anything, mock.Anything).Return(0, errors.New("listmonk down"))

	out, err := newSubscribeUC(repo, gw).Execute(context.Background(), SubscribeInput{
		Email: "ada@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPendingVerification, out.Status)
	repo.AssertNotCalled(t, "SetListmonkID", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscribeInsertRaceReportsAlreadySubscribed(t *testing.T) {
	repo := new(MockSubscriberRepository)
	gw := new(MockNewsletterGateway)

	repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, entity.ErrNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(entity.ErrEmailAlreadyExists)

	out, err := newSubscribeUC(repo, gw).Execute(context.Background(), SubscribeInput{
		Email: "ada@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusAlreadySubscribed, out.Status)
}

func TestUnsubscribeUnknownEmailReturnsNotFound(t *testing.T) {
	repo := new(MockSubscriberRepository)
	gw := new(MockNewsletterGateway)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, entity.ErrNotFound)

	uc := NewUnsubscribeNewsletterUseCase(repo, gw, logger.NewNop())
	_, err := uc.Execute(context.Background(), UnsubscribeInput{Email: "ghost@example.com"})

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUnsubscribeActiveAddress(t *testing.T) {
	repo := new(MockSubscriberRepository)
	gw := new(MockNewsletterGateway)

	sub := entity.NewSubscriber("ada@example.com", "Ada", "website", nil)
	sub.Status = entity.SubscriberStatusActive
	repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(sub, nil)
	repo.On("UpdateStatus", mock.Anything, sub.ID, entity.SubscriberStatusUnsubscribed).Return(nil)
	gw.On("UpdateSubscriber", mock.Anything, mock.Anything).Return(true)

	uc := NewUnsubscribeNewsletterUseCase(repo, gw, logger.NewNop())
	out, err := uc.Execute(context.Background(), UnsubscribeInput{Email: "ada@example.com"})

	require.NoError(t, err)
	assert.Equal(t, StatusUnsubscribed, out.Status)
	repo.AssertExpectations(t)
}

func TestUnsubscribeAlreadyUnsubscribed(t *testing.T) {
	repo := new(MockSubscriberRepository)
	gw := new(MockNewsletterGateway)

	sub := entity.NewSubscriber("ada@example.com", "Ada", "website", nil)
	sub.Status = entity.SubscriberStatusUnsubscribed
	repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(sub, nil)

	uc := NewUnsubscribeNewsletterUseCase(repo, gw, logger.NewNop())
	out, err := uc.Execute(context.Background(), UnsubscribeInput{Email: "ada@example.com"})

	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyUnsubscribed, out.Status)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
