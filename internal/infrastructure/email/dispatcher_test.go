package email

import (
	"errors"
	"sync"
	"testing"

	"contacts-api/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Init("development")
}

type recordingSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (s *recordingSender) SendConfirmation(to, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to)
	return s.err
}

func (s *recordingSender) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func TestDispatcher_DeliversQueuedJobs(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender)

	d.Enqueue(Job{To: "a@example.com", Username: "a", ConfirmURL: "http://localhost/confirm/x"})
	d.Enqueue(Job{To: "b@example.com", Username: "b", ConfirmURL: "http://localhost/confirm/y"})
	d.Stop()

	require.Len(t, sender.recipients(), 2)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.recipients())
}

func TestDispatcher_SendFailureIsSwallowed(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp unreachable")}
	d := NewDispatcher(sender)

	// Enqueue never surfaces delivery errors to the caller
	d.Enqueue(Job{To: "a@example.com"})
	d.Enqueue(Job{To: "b@example.com"})
	d.Stop()

	// The worker keeps draining after a failure
	assert.Len(t, sender.recipients(), 2)
}

func TestDispatcher_StopIsIdempotent(t *testing.T) {
	d := NewDispatcher(&recordingSender{})
	d.Stop()
	assert.NotPanics(t, func() { d.Stop() })
}
