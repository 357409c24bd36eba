package testutil

import (
	"context"
	"sync"

	"github.com/molnpaket/checkout/internal/email"
)

// RecordingMailer is an email.Sender for tests.
type RecordingMailer struct {
	mu sync.Mutex

	FailWith error

	Confirmations []email.OrderConfirmationRequest
	Welcomes      []email.WelcomeRequest
}

func NewRecordingMailer() *RecordingMailer {
	return &RecordingMailer{}
}

func (m *RecordingMailer) SendOrderConfirmation(_ context.Context, req email.OrderConfirmationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	m.Confirmations = append(m.Confirmations, req)
	return nil
}

func (m *RecordingMailer) SendWelcome(_ context.Context, req email.WelcomeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	m.Welcomes = append(m.Welcomes, req)
	return nil
}

func (m *RecordingMailer) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Confirmations = nil
	m.Welcomes = nil
}
