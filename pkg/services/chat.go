package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/credana/delinq-engine/pkg/apperrors"
	"github.com/credana/delinq-engine/pkg/config"
	"github.com/credana/delinq-engine/pkg/llm"
	"github.com/credana/delinq-engine/pkg/models"
	"github.com/credana/delinq-engine/pkg/prompts"
)

// TurnErrorPrefix starts the assistant turn shown when any pipeline stage
// fails. The cause is appended so the user sees why the turn was lost.
const TurnErrorPrefix = "Erro no processamento: "

// ChatService orchestrates one conversation turn end to end.
type ChatService interface {
	// HandleTurn answers question within the given session, streaming
	// typing-prefix events followed by exactly one answer or error event
	// and then done. The caller owns eventChan and closes it after
	// HandleTurn returns. Errors are returned only for conditions that
	// precede the turn (unknown session, busy session, empty question);
	// pipeline failures inside the turn become assistant-visible messages.
	HandleTurn(ctx context.Context, sessionID uuid.UUID, question string, eventChan chan<- models.ChatEvent) error
}

type chatService struct {
	sessions   *SessionManager
	classifier IntentClassifier
	synth      QuerySynthesizer
	composer   AnswerComposer
	client     llm.LLMClient
	cfg        config.ChatConfig
	logger     *zap.Logger
}

// NewChatService wires the turn pipeline together.
func NewChatService(
	sessions *SessionManager,
	classifier IntentClassifier,
	synth QuerySynthesizer,
	composer AnswerComposer,
	client llm.LLMClient,
	cfg config.ChatConfig,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		sessions:   sessions,
		classifier: classifier,
		synth:      synth,
		composer:   composer,
		client:     client,
		cfg:        cfg,
		logger:     logger.Named("chat"),
	}
}

var _ ChatService = (*chatService)(nil)

func (s *chatService) HandleTurn(ctx context.Context, sessionID uuid.UUID, question string, eventChan chan<- models.ChatEvent) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return apperrors.ErrEmptyQuestion
	}

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if err := session.BeginTurn(); err != nil {
		return err
	}
	defer session.EndTurn()

	session.Append(models.ChatRoleUser, question)

	answer, err := s.answer(ctx, session, question)
	if err != nil {
		s.logger.Error("turn failed",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
		message := TurnErrorPrefix + err.Error()
		session.Append(models.ChatRoleAssistant, message)
		s.emit(ctx, eventChan, models.NewErrorEvent(message))
		s.emit(ctx, eventChan, models.NewDoneEvent())
		return nil
	}

	session.Append(models.ChatRoleAssistant, answer)

	s.streamTyping(ctx, eventChan, answer)
	s.emit(ctx, eventChan, models.NewAnswerEvent(answer))
	s.emit(ctx, eventChan, models.NewDoneEvent())
	return nil
}

func (s *chatService) answer(ctx context.Context, session *Session, question string) (string, error) {
	intent, err := s.classifier.Classify(ctx, question)
	if err != nil {
		return "", err
	}

	if intent == models.IntentGeneral {
		return s.answerGeneral(ctx, session, question)
	}

	sqlQuery, err := s.synth.Synthesize(ctx, question, intent)
	if err != nil {
		return "", err
	}

	return s.composer.Compose(ctx, question, intent, session.InsightReport(), sqlQuery)
}

// answerGeneral handles conversational questions with a direct completion
// over recent history plus the insight report. No SQL is synthesized.
func (s *chatService) answerGeneral(ctx context.Context, session *Session, question string) (string, error) {
	history := session.History()
	if s.cfg.HistoryWindow > 0 && len(history) > s.cfg.HistoryWindow {
		history = history[len(history)-s.cfg.HistoryWindow:]
	}
	// The Anthropic Messages API rejects conversations that open with an
	// assistant turn, so the seeded welcome (and any truncation artifact)
	// is dropped before building the provider message list.
	for len(history) > 0 && history[0].Role != models.ChatRoleUser {
		history = history[1:]
	}

	messages := make([]llm.Message, 0, len(history))
	for _, msg := range history {
		role := llm.RoleUser
		if msg.Role == models.ChatRoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}

	result, err := s.client.Complete(ctx, &llm.CompletionRequest{
		SystemPrompt: prompts.BuildGeneralSystemPrompt(s.cfg.FactTable, session.InsightReport()),
		Messages:     messages,
		Temperature:  0.7,
	})
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// streamTyping emits monotonically growing prefixes of text. Canceling the
// context stops the stream early; the final answer event still follows so
// clients always see the full text.
func (s *chatService) streamTyping(ctx context.Context, eventChan chan<- models.ChatEvent, text string) {
	if s.cfg.TypingInterval <= 0 || s.cfg.TypingChunkRunes <= 0 {
		return
	}

	runes := []rune(text)
	ticker := time.NewTicker(s.cfg.TypingInterval)
	defer ticker.Stop()

	for i := s.cfg.TypingChunkRunes; i < len(runes); i += s.cfg.TypingChunkRunes {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if !s.emit(ctx, eventChan, models.NewTypingEvent(string(runes[:i]))) {
			return
		}
	}
}

func (s *chatService) emit(ctx context.Context, eventChan chan<- models.ChatEvent, event models.ChatEvent) bool {
	select {
	case <-ctx.Done():
		return false
	case eventChan <- event:
		return true
	}
}
