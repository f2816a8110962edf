package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// Notifier mocks email.Notifier
type Notifier struct {
	mock.Mock
}

func (m *Notifier) SendStudentRegistered(ctx context.Context, toEmail, toName string) error {
	return m.Called(ctx, toEmail, toName).Error(0)
}

func (m *Notifier) SendLecturerWelcome(ctx context.Context, toEmail, toName string) error {
	return m.Called(ctx, toEmail, toName).Error(0)
}

func (m *Notifier) SendLoginAlert(ctx context.Context, toEmail, toName string, at time.Time) error {
	return m.Called(ctx, toEmail, toName, at).Error(0)
}

func (m *Notifier) SendPasswordResetOTP(ctx context.Context, toEmail, toName, otp string, ttl time.Duration) error {
	return m.Called(ctx, toEmail, toName, otp, ttl).Error(0)
}
