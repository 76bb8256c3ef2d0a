// Package chat provides the AI kitchen-assistant conversation use case.
package chat

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/xiuxiu06/leos-kitchen/internal/application/auth"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
	"github.com/xiuxiu06/leos-kitchen/pkg/errors"
	"go.uber.org/zap"
)

const systemPrompt = "You are Leo, a friendly feline chef assistant. You help home cooks " +
	"with recipes, meal planning, macro targets and cooking technique. Keep answers " +
	"practical and concise, and suggest concrete meals when asked."

const maxHistoryMessages = 40

// Conversation is one user's running exchange with the assistant.
type Conversation struct {
	ID       uuid.UUID
	UserID   int64
	Messages []outbound.ChatMessage
}

// Service keeps per-user conversations in memory and streams completions
// through the configured model backend.
type Service struct {
	completions outbound.ChatCompletionService
	logger      *zap.Logger

	mu            sync.Mutex
	conversations map[int64]*Conversation
}

func NewService(completions outbound.ChatCompletionService, logger *zap.Logger) *Service {
	return &Service{
		completions:   completions,
		logger:        logger.Named("chat-service"),
		conversations: make(map[int64]*Conversation),
	}
}

// Stream sends the user's message with the conversation history and
// forwards each completion delta to onDelta as it arrives. The assistant's
// full reply is appended to the history once the stream ends.
func (s *Service) Stream(ctx context.Context, sess auth.Session, message string, onDelta func(string) error) error {
	if !sess.Authenticated {
		return errors.NewUnauthorizedError("Please log in to chat with Leo")
	}
	if message == "" {
		return errors.NewValidationError("message is required")
	}

	conv := s.conversation(sess.UserID)

	s.mu.Lock()
	conv.Messages = append(conv.Messages, outbound.ChatMessage{Role: "user", Content: message})
	history := make([]outbound.ChatMessage, 0, len(conv.Messages)+1)
	history = append(history, outbound.ChatMessage{Role: "system", Content: systemPrompt})
	history = append(history, conv.Messages...)
	s.mu.Unlock()

	reply, err := s.completions.StreamChat(ctx, history, onDelta)
	if err != nil {
		s.logger.Warn("Chat completion failed",
			zap.Int64("user_id", sess.UserID),
			zap.Error(err),
		)
		return errors.NewExternalServiceError("chat completion", err)
	}

	s.mu.Lock()
	conv.Messages = append(conv.Messages, outbound.ChatMessage{Role: "assistant", Content: reply})
	if len(conv.Messages) > maxHistoryMessages {
		conv.Messages = conv.Messages[len(conv.Messages)-maxHistoryMessages:]
	}
	s.mu.Unlock()

	return nil
}

// Reset discards the user's conversation history.
func (s *Service) Reset(sess auth.Session) error {
	if !sess.Authenticated {
		return errors.NewUnauthorizedError("")
	}
	s.mu.Lock()
	delete(s.conversations, sess.UserID)
	s.mu.Unlock()
	return nil
}

// History returns a copy of the user's conversation so far.
func (s *Service) History(sess auth.Session) ([]outbound.ChatMessage, error) {
	if !sess.Authenticated {
		return nil, errors.NewUnauthorizedError("")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[sess.UserID]
	if !ok {
		return nil, nil
	}
	out := make([]outbound.ChatMessage, len(conv.Messages))
	copy(out, conv.Messages)
	return out, nil
}

func (s *Service) conversation(userID int64) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[userID]
	if !ok {
		conv = &Conversation{ID: uuid.New(), UserID: userID}
		s.conversations[userID] = conv
	}
	return conv
}
