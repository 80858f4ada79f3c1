package testutil

import (
	"context"
	"sync"
)

// Message is one captured outbound send.
type Message struct {
	To   string
	Text string
}

// RecordingSender captures messages instead of delivering them.
type RecordingSender struct {
	mu   sync.Mutex
	sent []Message

	// Err, when set, is returned from every send after recording it.
	Err error
}

func (s *RecordingSender) SendMessage(_ context.Context, to, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, Message{To: to, Text: text})
	return s.Err
}

// Sent returns a copy of captured messages in send order.
func (s *RecordingSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}
