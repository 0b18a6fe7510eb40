package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caioaot/atelier-backend/internal/entity"
	"github.com/caioaot/atelier-backend/internal/infra/queue"
	"github.com/caioaot/atelier-backend/internal/logger"
)

func TestSubmitContactStoresAndNotifies(t *testing.T) {
	contacts := new(MockContactRepository)
	captcha := new(MockRecaptchaVerifier)
	producer := new(MockNotificationProducer)

	captcha.On("Verify", mock.Anything, "tok").Return(true)
	contacts.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Contact) bool {
		return c.Priority == entity.PriorityHigh && c.Status == entity.ContactStatusUnread
	})).Return(nil)
	producer.On("PublishContactNotification", mock.Anything, mock.MatchedBy(func(p queue.ContactNotification) bool {
		return p.Priority == entity.PriorityHigh && p.Email == "ada@example.com"
	})).Return(nil)

	uc := NewSubmitContactUseCase(contacts, captcha, producer, logger.NewNop())
	out, err := uc.Execute(context.Background(), SubmitContactInput{
		Name:           "Ada",
		Email:          "ada@example.com",
		Subject:        "Site down",
		Message:        "This is urgent",
		RecaptchaToken: "tok",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "submitted", out.Status)
	contacts.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestSubmitContactRejectsFailedRecaptcha(t *testing.T) {
	contacts := new(MockContactRepository)
	captcha := new(MockRecaptchaVerifier)
	captcha.On("Verify", mock.Anything, "bad").Return(false)

	uc := NewSubmitContactUseCase(contacts, captcha, nil, logger.NewNop())
	_, err := uc.Execute(context.Background(), SubmitContactInput{RecaptchaToken: "bad"})

	assert.ErrorIs(t, err, ErrRecaptchaFailed)
	contacts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitContactSucceedsWhenQueuePublishFails(t *testing.T) {
	contacts := new(MockContactRepository)
	captcha := new(MockRecaptchaVerifier)
	producer := new(MockNotificationProducer)

	captcha.On("Verify", mock.Anything, mock.Anything).Return(true)
	contacts.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishContactNotification", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	uc := NewSubmitContactUseCase(contacts, captcha, producer, logger.NewNop())
	out, err := uc.Execute(context.Background(), SubmitContactInput{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hi",
		Message: "Hello",
	})

	require.NoError(t, err)
	assert.Equal(t, "submitted", out.Status)
}

func TestSubmitContactDefaultsTypeToGeneral(t *testing.T) {
	contacts := new(MockContactRepository)
	captcha := new(MockRecaptchaVerifier)

	captcha.On("Verify", mock.Anything, mock.Anything).Return(true)
	contacts.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Contact) bool {
		return c.Type == entity.ContactTypeGeneral
	})).Return(nil)

	uc := NewSubmitContactUseCase(contacts, captcha, nil, logger.NewNop())
	_, err := uc.Execute(context.Background(), SubmitContactInput{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hi",
		Message: "Hello",
	})

	require.NoError(t, err)
	contacts.AssertExpectations(t)
}
