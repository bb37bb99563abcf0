package service

import (
	"context"
	"fmt"
	"log/slog"
)

// ResetEmailData carries everything needed to render a password-reset email.
type ResetEmailData struct {
	Email     string
	Name      string
	Token     string
	ExpiresIn int // in minutes
}

// EmailProvider interface for different email services
type EmailProvider interface {
	SendPasswordResetEmail(ctx context.Context, data ResetEmailData) error
}

// MultiProviderEmailService tries each configured provider in order until
// one succeeds.
type MultiProviderEmailService struct {
	providers []EmailProvider
}

func NewMultiProviderEmailService(providers []EmailProvider) *MultiProviderEmailService {
	return &MultiProviderEmailService{providers: providers}
}

// SendPasswordResetEmail tries available providers; the first success wins.
func (m *MultiProviderEmailService) SendPasswordResetEmail(ctx context.Context, data ResetEmailData) error {
	if len(m.providers) == 0 {
		return fmt.Errorf("no email providers configured")
	}

	var lastErr error
	for i, provider := range m.providers {
		err := provider.SendPasswordResetEmail(ctx, data)
		if err == nil {
			slog.Info("password reset email sent", "provider", i+1, "email", data.Email)
			return nil
		}
		slog.Warn("email provider failed", "provider", i+1, "err", err)
		lastErr = err
	}

	return fmt.Errorf("all email providers failed. Last error: %w", lastErr)
}

// ProviderCount returns the number of configured providers.
func (m *MultiProviderEmailService) ProviderCount() int {
	return len(m.providers)
}
