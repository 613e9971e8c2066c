package services

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/credana/delinq-engine/pkg/llm"
	"github.com/credana/delinq-engine/pkg/models"
)

func TestSynthesize_StripsFences(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "sql fence",
			response: "```sql\nSELECT uf FROM table_agg_inad_consolidado\n```",
			want:     "SELECT uf FROM table_agg_inad_consolidado",
		},
		{
			name:     "bare fence",
			response: "```\nSELECT 1\n```",
			want:     "SELECT 1",
		},
		{
			name:     "no fence",
			response: "  SELECT 1  ",
			want:     "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockLLMClient()
			mock.CompleteFunc = func(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResult, error) {
				return &llm.CompletionResult{Content: tt.response}, nil
			}
			synth := NewQuerySynthesizer(mock, "table_agg_inad_consolidado", "projecao_consolidado", zap.NewNop())

			got, err := synth.Synthesize(context.Background(), "qual a carteira por estado?", models.IntentSpecific)
			if err != nil {
				t.Fatalf("Synthesize error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Synthesize = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesize_TemplateSelection(t *testing.T) {
	mock := llm.NewMockLLMClient()
	mock.CompleteFunc = func(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResult, error) {
		return &llm.CompletionResult{Content: "SELECT 1"}, nil
	}
	synth := NewQuerySynthesizer(mock, "table_agg_inad_consolidado", "projecao_consolidado", zap.NewNop())

	if _, err := synth.Synthesize(context.Background(), "projeção para 2026", models.IntentProjection); err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}
	projPrompt := mock.CompleteRequests[0].SystemPrompt
	if !strings.Contains(projPrompt, "projecao_consolidado") {
		t.Error("projection intent should use the projection table schema")
	}
	if !strings.Contains(projPrompt, "data de referência") {
		t.Error("projection prompt missing reference date")
	}

	mock.Reset()
	if _, err := synth.Synthesize(context.Background(), "top 5 estados", models.IntentRanking); err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}
	factPrompt := mock.CompleteRequests[0].SystemPrompt
	if !strings.Contains(factPrompt, "table_agg_inad_consolidado") {
		t.Error("ranking intent should use the fact table schema")
	}
	if strings.Contains(factPrompt, "projecao_consolidado") {
		t.Error("fact prompt should not reference the projection table")
	}
}

func TestSynthesize_RankingAndComparisonShapes(t *testing.T) {
	// With ranking-shaped and comparison-shaped model output, the returned
	// SQL keeps its ORDER BY/LIMIT and GROUP BY structure intact.
	tests := []struct {
		name      string
		intent    models.Intent
		response  string
		fragments []string
	}{
		{
			name:      "ranking keeps order and limit",
			intent:    models.IntentRanking,
			response:  "```sql\nSELECT uf, SUM(soma_carteira_inadimplida_arrastada) AS total FROM table_agg_inad_consolidado GROUP BY uf ORDER BY total DESC LIMIT 5\n```",
			fragments: []string{"ORDER BY", "LIMIT", "table_agg_inad_consolidado"},
		},
		{
			name:      "comparison keeps grouping",
			intent:    models.IntentComparison,
			response:  "SELECT porte, SUM(soma_carteira_ativa) FROM table_agg_inad_consolidado GROUP BY porte",
			fragments: []string{"GROUP BY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockLLMClient()
			mock.CompleteFunc = func(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResult, error) {
				return &llm.CompletionResult{Content: tt.response}, nil
			}
			synth := NewQuerySynthesizer(mock, "table_agg_inad_consolidado", "projecao_consolidado", zap.NewNop())

			got, err := synth.Synthesize(context.Background(), "pergunta", tt.intent)
			if err != nil {
				t.Fatalf("Synthesize error: %v", err)
			}
			for _, frag := range tt.fragments {
				if !strings.Contains(got, frag) {
					t.Errorf("synthesized SQL missing %q: %s", frag, got)
				}
			}
		})
	}
}
