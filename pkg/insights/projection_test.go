package insights

import (
	"strings"
	"testing"

	"github.com/credana/delinq-engine/pkg/models"
)

func projectionRecord(period, state, clientType, sizeTier, rowKind string, delinquent float64) models.ProjectionRecord {
	return models.ProjectionRecord{
		Period:               period,
		SizeTier:             sizeTier,
		State:                state,
		ClientType:           clientType,
		Modality:             "Cartão de crédito",
		RowKind:              rowKind,
		SumProblematicAssets: delinquent * 2,
		SumDelinquentBalance: delinquent,
	}
}

func TestAggregateProjections_Empty(t *testing.T) {
	if got := AggregateProjections(nil); got != NoProjectionDataSentinel {
		t.Errorf("got %q, want sentinel", got)
	}
}

func TestAggregateProjections_OnlyHistoricalRows(t *testing.T) {
	records := []models.ProjectionRecord{
		projectionRecord("2025-01", "SP", "PF", "Grande", "HISTORICO", 100),
	}
	if got := AggregateProjections(records); got != NoProjectionDataSentinel {
		t.Errorf("got %q, want sentinel when no forecast rows survive", got)
	}
}

func TestAggregateProjections_RowKindCaseInsensitive(t *testing.T) {
	records := []models.ProjectionRecord{
		projectionRecord("2026-01", "SP", "PF", "Grande", "previsao", 100),
		projectionRecord("2026-01", "RJ", "PJ", "Pequeno", "Previsao", 200),
	}

	report := AggregateProjections(records)
	if report == NoProjectionDataSentinel {
		t.Fatal("lowercase row kinds should survive the filter")
	}
	if !strings.Contains(report, "2026-01 | Grande") {
		t.Errorf("report missing group line:\n%s", report)
	}
}

func TestAggregateProjections_Sections(t *testing.T) {
	records := []models.ProjectionRecord{
		projectionRecord("2026-01", "SP", "PF", "Grande", "PREVISAO", 1000),
		projectionRecord("2026-02", "RJ", "PJ", "Pequeno", "PREVISAO", 500),
	}

	report := AggregateProjections(records)

	sections := []string{
		"## PROJEÇÕES DE INADIMPLÊNCIA",
		"### Projeção por Ano e Porte:",
		"### Projeção por Estado e Modalidade:",
		"### Projeção por Tipo de Cliente:",
		"### Destaques de Projeção:",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(report, section)
		if idx < 0 {
			t.Fatalf("report missing section %q", section)
		}
		if idx < last {
			t.Errorf("section %q out of order", section)
		}
		last = idx
	}

	if !strings.Contains(report, "- **Total Inadimplência Prevista**: R$ 1,500.00") {
		t.Errorf("report missing forecast total:\n%s", report)
	}
	if !strings.Contains(report, "- **Total Ativo Problemático Previsto**: R$ 3,000.00") {
		t.Errorf("report missing problematic total:\n%s", report)
	}
}

func TestProjectionByClient(t *testing.T) {
	records := []models.ProjectionRecord{
		projectionRecord("2026-01", "SP", "PF", "Grande", "PREVISAO", 100),
		projectionRecord("2026-06", "SP", "PF", "Grande", "PREVISAO", 50),
		projectionRecord("2028-01", "SP", "PF", "Grande", "PREVISAO", 200),
		projectionRecord("2026-01", "RJ", "PJ", "Pequeno", "PREVISAO", 999),
	}

	report := ProjectionByClient(records, "PF", 3)

	if !strings.Contains(report, "PROJEÇÃO DE DÍVIDA PARA PF NOS PRÓXIMOS 3 ANOS") {
		t.Errorf("report missing header:\n%s", report)
	}
	// 2026 sums both PF rows
	if !strings.Contains(report, "- **Ano 2026**: Ativo Problemático: R$ 300.00, Inadimplência Arrastada: R$ 150.00") {
		t.Errorf("report missing 2026 totals:\n%s", report)
	}
	if !strings.Contains(report, "- **Ano 2027**: Sem dados disponíveis.") {
		t.Errorf("report missing gap year line:\n%s", report)
	}
	if !strings.Contains(report, "- **Ano 2028**:") {
		t.Errorf("report missing 2028 line:\n%s", report)
	}
	if strings.Contains(report, "999") {
		t.Error("PJ rows must not leak into the PF report")
	}
}

func TestProjectionByClient_NoData(t *testing.T) {
	got := ProjectionByClient(nil, "PF", 5)
	if got != "Nenhum dado disponível para o tipo de cliente 'PF'." {
		t.Errorf("got %q", got)
	}
}

func TestProjectionByState(t *testing.T) {
	records := []models.ProjectionRecord{
		projectionRecord("2026-02", "SP", "PF", "Grande", "PREVISAO", 100),
		projectionRecord("2026-01", "SP", "PJ", "Pequeno", "PREVISAO", 50),
		projectionRecord("2026-01", "RJ", "PF", "Grande", "PREVISAO", 999),
	}

	report := ProjectionByState(records, "SP")

	if !strings.Contains(report, "PROJEÇÃO DE DÍVIDA PARA O ESTADO SP") {
		t.Errorf("report missing header:\n%s", report)
	}
	// Periods come out sorted
	first := strings.Index(report, "2026-01")
	second := strings.Index(report, "2026-02")
	if first < 0 || second < 0 || first > second {
		t.Errorf("periods missing or out of order:\n%s", report)
	}
	if strings.Contains(report, "999") {
		t.Error("other states must not leak into the report")
	}
}

func TestProjectionByState_NoData(t *testing.T) {
	got := ProjectionByState(nil, "SP")
	if got != "Nenhum dado disponível para o estado 'SP'." {
		t.Errorf("got %q", got)
	}
}

func TestProjectionBySizeTier(t *testing.T) {
	records := []models.ProjectionRecord{
		projectionRecord("2026-01", "SP", "PF", "Médio", "PREVISAO", 100),
	}

	report := ProjectionBySizeTier(records, "Médio")
	if !strings.Contains(report, "PROJEÇÃO DE DÍVIDA PARA CLIENTES DE PORTE MÉDIO") {
		t.Errorf("report missing header:\n%s", report)
	}

	if got := ProjectionBySizeTier(records, "Grande"); got != "Nenhum dado disponível para o porte 'Grande'." {
		t.Errorf("got %q", got)
	}
}
