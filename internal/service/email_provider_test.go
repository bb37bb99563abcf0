package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	err   error
	calls int
}

func (s *stubProvider) SendPasswordResetEmail(ctx context.Context, data ResetEmailData) error {
	s.calls++
	return s.err
}

func TestFirstProviderSuccessStopsChain(t *testing.T) {
	first := &stubProvider{}
	second := &stubProvider{}
	svc := NewMultiProviderEmailService([]EmailProvider{first, second})

	err := svc.SendPasswordResetEmail(context.Background(), ResetEmailData{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestFallsBackToNextProvider(t *testing.T) {
	first := &stubProvider{err: errors.New("quota exceeded")}
	second := &stubProvider{}
	svc := NewMultiProviderEmailService([]EmailProvider{first, second})

	err := svc.SendPasswordResetEmail(context.Background(), ResetEmailData{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestAllProvidersFailing(t *testing.T) {
	first := &stubProvider{err: errors.New("quota exceeded")}
	second := &stubProvider{err: errors.New("timeout")}
	svc := NewMultiProviderEmailService([]EmailProvider{first, second})

	err := svc.SendPasswordResetEmail(context.Background(), ResetEmailData{Email: "alice@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestNoProvidersConfigured(t *testing.T) {
	svc := NewMultiProviderEmailService(nil)
	assert.Equal(t, 0, svc.ProviderCount())

	err := svc.SendPasswordResetEmail(context.Background(), ResetEmailData{Email: "alice@example.com"})
	assert.Error(t, err)
}
