package services

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/credana/delinq-engine/pkg/llm"
	"github.com/credana/delinq-engine/pkg/models"
	"github.com/credana/delinq-engine/pkg/prompts"
)

// IntentClassifier assigns one of the six intent categories to a question.
type IntentClassifier interface {
	// Classify runs one model call and maps its digit answer onto the
	// closed intent set. Output that carries no recognizable digit falls
	// back to IntentGeneral without error.
	Classify(ctx context.Context, question string) (models.Intent, error)
}

type intentClassifier struct {
	client llm.LLMClient
	logger *zap.Logger
}

// NewIntentClassifier creates a classifier over the given model client.
func NewIntentClassifier(client llm.LLMClient, logger *zap.Logger) IntentClassifier {
	return &intentClassifier{
		client: client,
		logger: logger.Named("classifier"),
	}
}

var _ IntentClassifier = (*intentClassifier)(nil)

func (c *intentClassifier) Classify(ctx context.Context, question string) (models.Intent, error) {
	result, err := c.client.Complete(ctx, &llm.CompletionRequest{
		SystemPrompt: prompts.IntentClassificationPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: question},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}

	intent, recognized := parseIntentDigit(result.Content)
	if !recognized {
		c.logger.Debug("unrecognized intent answer, using general",
			zap.String("answer", firstRunes(result.Content, 20)))
	}

	c.logger.Debug("classified question",
		zap.String("intent", string(intent)))

	return intent, nil
}

// parseIntentDigit collects the digits found in the first two characters of
// the raw model answer and maps the collected string as a whole. Two digits
// ("12"), a digit past the two-character window, or no digit at all are
// unrecognized and fall back to the general intent.
func parseIntentDigit(answer string) (models.Intent, bool) {
	var digits strings.Builder
	for _, r := range firstRunes(answer, 2) {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return models.IntentGeneral, false
	}
	return models.IntentFromDigit(digits.String())
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
