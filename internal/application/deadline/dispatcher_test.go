package deadline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, htmlBody string) error {
	return m.Called(to, subject, htmlBody).Error(0)
}

type mockSMS struct{ mock.Mock }

func (m *mockSMS) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}

func passedNotification() *domain.Notification {
	return &domain.Notification{
		UserID:  "u1",
		TaskID:  "t1",
		Type:    domain.NotificationDeadlinePassed,
		Title:   TitlePassed,
		Message: `Task "<b>X</b>" has passed its deadline`,
	}
}

func TestOwnerDispatcher_EmailAndSMS(t *testing.T) {
	users, mailer, sms := &mockUsers{}, &mockMailer{}, &mockSMS{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "a@b.com", Contact: "+15550001"}, nil)
	mailer.On("SendEmail", "a@b.com", TitlePassed, mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "&lt;b&gt;X&lt;/b&gt;")
	})).Return(nil)
	sms.On("SendSMS", mock.Anything, "+15550001", "Deadline Passed: "+passedNotification().Message).Return(nil)

	d := NewOwnerDispatcher(users, mailer, sms)
	require.NoError(t, d.Dispatch(context.Background(), passedNotification()))
	mailer.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestOwnerDispatcher_NoContactSkipsSMS(t *testing.T) {
	users, sms := &mockUsers{}, &mockSMS{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)

	d := NewOwnerDispatcher(users, nil, sms)
	require.NoError(t, d.Dispatch(context.Background(), passedNotification()))
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func TestOwnerDispatcher_ChannelErrorsJoined(t *testing.T) {
	users, mailer, sms := &mockUsers{}, &mockMailer{}, &mockSMS{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "a@b.com", Contact: "+1"}, nil)
	mailErr := errors.New("smtp down")
	mailer.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(mailErr)
	sms.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := NewOwnerDispatcher(users, mailer, sms).Dispatch(context.Background(), passedNotification())
	assert.ErrorIs(t, err, mailErr)
	sms.AssertExpectations(t)
}

func TestOwnerDispatcher_Disabled(t *testing.T) {
	users := &mockUsers{}
	d := NewOwnerDispatcher(users, nil, nil)
	assert.False(t, d.Enabled())
	require.NoError(t, d.Dispatch(context.Background(), passedNotification()))
	users.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestOwnerDispatcher_OwnerMissing(t *testing.T) {
	users, mailer := &mockUsers{}, &mockMailer{}
	users.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	err := NewOwnerDispatcher(users, mailer, nil).Dispatch(context.Background(), passedNotification())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}
