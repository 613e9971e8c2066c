package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/credana/delinq-engine/pkg/llm"
	"github.com/credana/delinq-engine/pkg/logging"
	"github.com/credana/delinq-engine/pkg/models"
	"github.com/credana/delinq-engine/pkg/prompts"
)

// NoDynamicResults is handed to the answer prompt when the synthesized
// query could not be executed. The pipeline continues on the cached insight
// report alone.
const NoDynamicResults = "Não foi possível gerar resultados dinâmicos específicos."

// QueryRunner executes a SQL statement and returns tabular results.
// *datasource.Executor satisfies it; tests substitute a stub.
type QueryRunner interface {
	ExecuteQuery(ctx context.Context, sqlQuery string, limit int) (*models.QueryResult, error)
}

// AnswerComposer executes a synthesized query and merges its results with
// the session's insight report into a final answer.
type AnswerComposer interface {
	// Compose runs sqlQuery, renders the result table, and makes one model
	// call combining it with the cached insights. An execution failure is
	// not fatal: the answer is composed from insights alone.
	Compose(ctx context.Context, question string, intent models.Intent, insights, sqlQuery string) (string, error)
}

type answerComposer struct {
	client        llm.LLMClient
	runner        QueryRunner
	maxResultRows int
	logger        *zap.Logger
}

// NewAnswerComposer creates a composer over the given model client and
// query runner. maxResultRows caps how many rows feed the answer prompt.
func NewAnswerComposer(client llm.LLMClient, runner QueryRunner, maxResultRows int, logger *zap.Logger) AnswerComposer {
	return &answerComposer{
		client:        client,
		runner:        runner,
		maxResultRows: maxResultRows,
		logger:        logger.Named("composer"),
	}
}

var _ AnswerComposer = (*answerComposer)(nil)

func (c *answerComposer) Compose(ctx context.Context, question string, intent models.Intent, insights, sqlQuery string) (string, error) {
	dynamic := NoDynamicResults

	result, err := c.runner.ExecuteQuery(ctx, sqlQuery, c.maxResultRows)
	if err != nil {
		c.logger.Warn("query execution failed, composing from insights only",
			zap.String("query", logging.SanitizeQuery(sqlQuery)),
			zap.Error(err))
	} else {
		dynamic = result.RenderText()
		c.logger.Debug("query executed",
			zap.Int("row_count", result.RowCount))
	}

	completion, err := c.client.Complete(ctx, &llm.CompletionRequest{
		SystemPrompt: prompts.BuildAnswerPrompt(intent, insights, dynamic),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: question},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	return completion.Content, nil
}
