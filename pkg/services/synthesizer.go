package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/credana/delinq-engine/pkg/llm"
	"github.com/credana/delinq-engine/pkg/logging"
	"github.com/credana/delinq-engine/pkg/models"
	"github.com/credana/delinq-engine/pkg/prompts"
	enginesql "github.com/credana/delinq-engine/pkg/sql"
)

// QuerySynthesizer turns a classified question into a SQL statement.
type QuerySynthesizer interface {
	// Synthesize runs one model call with the intent-appropriate prompt
	// template and returns the generated SQL with markdown fences stripped.
	// It does not validate the statement; that happens at execution.
	Synthesize(ctx context.Context, question string, intent models.Intent) (string, error)
}

type querySynthesizer struct {
	client          llm.LLMClient
	factTable       string
	projectionTable string
	now             func() time.Time
	logger          *zap.Logger
}

// NewQuerySynthesizer creates a synthesizer over the given model client.
// The table names land verbatim in the prompt schemas.
func NewQuerySynthesizer(client llm.LLMClient, factTable, projectionTable string, logger *zap.Logger) QuerySynthesizer {
	return &querySynthesizer{
		client:          client,
		factTable:       factTable,
		projectionTable: projectionTable,
		now:             time.Now,
		logger:          logger.Named("synthesizer"),
	}
}

var _ QuerySynthesizer = (*querySynthesizer)(nil)

func (s *querySynthesizer) Synthesize(ctx context.Context, question string, intent models.Intent) (string, error) {
	prompt := prompts.BuildQueryPrompt(s.factTable, s.projectionTable, intent, s.now())

	result, err := s.client.Complete(ctx, &llm.CompletionRequest{
		SystemPrompt: prompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: question},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}

	sqlQuery := strings.TrimSpace(enginesql.StripCodeFence(result.Content))

	s.logger.Debug("synthesized query",
		zap.String("intent", string(intent)),
		zap.String("query", logging.SanitizeQuery(sqlQuery)))

	return sqlQuery, nil
}
