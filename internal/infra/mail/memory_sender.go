package mail

import (
	"context"
	"slices"
	"sync"

	"tiktok/internal/domain/service"
)

// MemorySender keeps sent messages in memory. Tests inspect them through Messages.
type MemorySender struct {
	mu       sync.Mutex
	messages []service.MailMessage
	err      error
}

func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

func (s *MemorySender) Send(_ context.Context, msg *service.MailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	stored := *msg
	stored.To = slices.Clone(msg.To)
	s.messages = append(s.messages, stored)

	return nil
}

// Messages returns a copy of everything sent so far.
func (s *MemorySender) Messages() []service.MailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.messages)
}

// FailWith makes every later Send return err. A nil err restores delivery.
func (s *MemorySender) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err
}
