package prompts

import (
	"strings"
	"testing"
	"time"

	"github.com/credana/delinq-engine/pkg/models"
)

func TestIntentClassificationPrompt_ListsAllCategories(t *testing.T) {
	for _, intent := range models.AllIntents {
		if !strings.Contains(IntentClassificationPrompt, string(intent)) {
			t.Errorf("prompt missing category %s", intent)
		}
	}
	if !strings.Contains(IntentClassificationPrompt, "apenas com o número") {
		t.Error("prompt missing digit-only instruction")
	}
}

func TestBuildFactQueryPrompt(t *testing.T) {
	prompt := BuildFactQueryPrompt("table_agg_inad_consolidado", models.IntentRanking)

	wantFragments := []string{
		"table_agg_inad_consolidado",
		"RANKING",
		"ORDER BY e LIMIT",
		"soma_carteira_inadimplida_arrastada",
		"max_ativo_problematico",
		"Sudeste: ES, MG, RJ, SP",
		"NULLIF(SUM(soma_carteira_ativa), 0)",
		"APENAS o código SQL",
	}
	for _, want := range wantFragments {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildFactQueryPrompt_EmbedsIntent(t *testing.T) {
	for _, intent := range []models.Intent{
		models.IntentComparison,
		models.IntentRanking,
		models.IntentSpecific,
		models.IntentTrend,
	} {
		prompt := BuildFactQueryPrompt("table_agg_inad_consolidado", intent)
		if !strings.Contains(prompt, "classificada como: "+string(intent)) {
			t.Errorf("prompt for %s missing intent line", intent)
		}
	}
}

func TestBuildProjectionQueryPrompt(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	prompt := BuildProjectionQueryPrompt("projecao_consolidado", now)

	wantFragments := []string{
		"projecao_consolidado",
		"ano_mes",
		"2026-09",
		"PROJEÇÃO",
		"APENAS o código SQL",
	}
	for _, want := range wantFragments {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Contains(prompt, "data_base") {
		t.Error("projection prompt should not describe the fact table")
	}
}

func TestBuildQueryPrompt_SelectsTemplate(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	projection := BuildQueryPrompt("fact", "proj", models.IntentProjection, now)
	if !strings.Contains(projection, "'proj'") {
		t.Error("projection intent should use the projection table")
	}

	ranking := BuildQueryPrompt("fact", "proj", models.IntentRanking, now)
	if !strings.Contains(ranking, "'fact'") {
		t.Error("ranking intent should use the fact table")
	}
}

func TestBuildAnswerPrompt(t *testing.T) {
	prompt := BuildAnswerPrompt(models.IntentComparison, "relatório de insights", "uf | total\nSP | 10")

	if !strings.Contains(prompt, "INSIGHTS PRÉ-CALCULADOS:\nrelatório de insights") {
		t.Error("prompt missing insights section")
	}
	if !strings.Contains(prompt, "RESULTADOS DINÂMICOS DA CONSULTA:\nuf | total") {
		t.Error("prompt missing dynamic results section")
	}
	if !strings.Contains(prompt, "Priorize os resultados dinâmicos") {
		t.Error("prompt missing priority instruction")
	}
	if !strings.Contains(prompt, "COMPARAÇÃO") {
		t.Error("prompt missing intent")
	}
}

func TestBuildGeneralSystemPrompt(t *testing.T) {
	prompt := BuildGeneralSystemPrompt("table_agg_inad_consolidado", "relatório")

	if !strings.Contains(prompt, "table_agg_inad_consolidado") {
		t.Error("prompt missing fact table name")
	}
	if !strings.Contains(prompt, "Insights gerados:\nrelatório") {
		t.Error("prompt missing insights")
	}
	if !strings.Contains(prompt, "mais dados são necessários") {
		t.Error("prompt missing fallback instruction")
	}
}
