package insights

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/credana/delinq-engine/pkg/models"
)

// NoProjectionDataSentinel is returned when no forecast rows survive the
// row-kind filter.
const NoProjectionDataSentinel = "Nenhum dado disponível para projeções de inadimplência."

// projectionTotals accumulates the two projection aggregates per group.
type projectionTotals struct {
	key         string
	problematic float64
	delinquent  float64
}

// AggregateProjections builds the projection section of the Insight Report.
// Rows whose kind tag is not PREVISAO (case-insensitive) are dropped before
// aggregation; an all-filtered-out input yields the sentinel string.
func AggregateProjections(records []models.ProjectionRecord) string {
	forecast := filterForecast(records)
	if len(forecast) == 0 {
		return NoProjectionDataSentinel
	}

	var report strings.Builder
	report.WriteString("\n## PROJEÇÕES DE INADIMPLÊNCIA\n\n")

	report.WriteString("### Projeção por Ano e Porte:\n")
	byPeriodTier := groupProjections(forecast, func(r models.ProjectionRecord) string {
		return r.Period + " | " + r.SizeTier
	})
	sortProjectionsByKey(byPeriodTier)
	for _, g := range byPeriodTier {
		writeProjectionLine(&report, g.key, g)
	}

	report.WriteString("\n### Projeção por Estado e Modalidade:\n")
	byStateModality := groupProjections(forecast, func(r models.ProjectionRecord) string {
		return r.State + " | " + r.Modality
	})
	// Ranked section: stable sort so equal balances keep first-appearance order
	sort.SliceStable(byStateModality, func(i, j int) bool {
		return byStateModality[i].delinquent > byStateModality[j].delinquent
	})
	if len(byStateModality) > topGroupLimit {
		byStateModality = byStateModality[:topGroupLimit]
	}
	for _, g := range byStateModality {
		writeProjectionLine(&report, g.key, g)
	}

	report.WriteString("\n### Projeção por Tipo de Cliente:\n")
	byClient := groupProjections(forecast, func(r models.ProjectionRecord) string {
		return r.ClientType
	})
	sortProjectionsByKey(byClient)
	for _, g := range byClient {
		writeProjectionLine(&report, g.key, g)
	}

	report.WriteString("\n### Destaques de Projeção:\n")
	var totalProblematic, totalDelinquent float64
	for _, r := range forecast {
		totalProblematic += r.SumProblematicAssets
		totalDelinquent += r.SumDelinquentBalance
	}
	fmt.Fprintf(&report, "- **Total Ativo Problemático Previsto**: %s\n", FormatBRL(totalProblematic))
	fmt.Fprintf(&report, "- **Total Inadimplência Prevista**: %s\n", FormatBRL(totalDelinquent))

	return report.String()
}

// ProjectionByClient summarizes the forecast debt for one client type (PF or
// PJ) over the given number of consecutive years, starting at the earliest
// projected year for that client.
func ProjectionByClient(records []models.ProjectionRecord, clientType string, years int) string {
	var filtered []models.ProjectionRecord
	for _, r := range records {
		if r.ClientType == clientType {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return fmt.Sprintf("Nenhum dado disponível para o tipo de cliente '%s'.", clientType)
	}

	byYear := groupProjections(filtered, func(r models.ProjectionRecord) string {
		return periodYear(r.Period)
	})
	index := make(map[string]projectionTotals, len(byYear))
	minYear := 0
	for _, g := range byYear {
		index[g.key] = g
		if y, err := strconv.Atoi(g.key); err == nil && (minYear == 0 || y < minYear) {
			minYear = y
		}
	}

	var report strings.Builder
	fmt.Fprintf(&report, "\n## PROJEÇÃO DE DÍVIDA PARA %s NOS PRÓXIMOS %d ANOS\n\n",
		strings.ToUpper(clientType), years)
	for year := minYear; year < minYear+years; year++ {
		g, ok := index[strconv.Itoa(year)]
		if !ok {
			fmt.Fprintf(&report, "- **Ano %d**: Sem dados disponíveis.\n", year)
			continue
		}
		writeProjectionLine(&report, fmt.Sprintf("Ano %d", year), g)
	}

	return report.String()
}

// ProjectionByState summarizes the forecast debt for one state, per period.
func ProjectionByState(records []models.ProjectionRecord, state string) string {
	var filtered []models.ProjectionRecord
	for _, r := range records {
		if r.State == state {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return fmt.Sprintf("Nenhum dado disponível para o estado '%s'.", state)
	}

	byPeriod := groupProjections(filtered, func(r models.ProjectionRecord) string {
		return r.Period
	})
	sortProjectionsByKey(byPeriod)

	var report strings.Builder
	fmt.Fprintf(&report, "\n## PROJEÇÃO DE DÍVIDA PARA O ESTADO %s\n\n", strings.ToUpper(state))
	for _, g := range byPeriod {
		writeProjectionLine(&report, g.key, g)
	}

	return report.String()
}

// ProjectionBySizeTier summarizes the forecast debt for one client size
// tier, per period.
func ProjectionBySizeTier(records []models.ProjectionRecord, sizeTier string) string {
	var filtered []models.ProjectionRecord
	for _, r := range records {
		if r.SizeTier == sizeTier {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return fmt.Sprintf("Nenhum dado disponível para o porte '%s'.", sizeTier)
	}

	byPeriod := groupProjections(filtered, func(r models.ProjectionRecord) string {
		return r.Period
	})
	sortProjectionsByKey(byPeriod)

	var report strings.Builder
	fmt.Fprintf(&report, "\n## PROJEÇÃO DE DÍVIDA PARA CLIENTES DE PORTE %s\n\n", strings.ToUpper(sizeTier))
	for _, g := range byPeriod {
		writeProjectionLine(&report, g.key, g)
	}

	return report.String()
}

func filterForecast(records []models.ProjectionRecord) []models.ProjectionRecord {
	var forecast []models.ProjectionRecord
	for _, r := range records {
		if strings.EqualFold(r.RowKind, models.RowKindForecast) {
			forecast = append(forecast, r)
		}
	}
	return forecast
}

func groupProjections(records []models.ProjectionRecord, keyFn func(models.ProjectionRecord) string) []projectionTotals {
	index := make(map[string]int)
	var groups []projectionTotals

	for _, r := range records {
		key := keyFn(r)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, projectionTotals{key: key})
		}
		groups[i].problematic += r.SumProblematicAssets
		groups[i].delinquent += r.SumDelinquentBalance
	}

	return groups
}

func sortProjectionsByKey(groups []projectionTotals) {
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].key < groups[j].key
	})
}

func writeProjectionLine(report *strings.Builder, label string, g projectionTotals) {
	fmt.Fprintf(report, "- **%s**: Ativo Problemático: %s, Inadimplência Arrastada: %s\n",
		label, FormatBRL(g.problematic), FormatBRL(g.delinquent))
}

// periodYear extracts the year from an "YYYY-MM" period.
func periodYear(period string) string {
	if len(period) >= 4 {
		return period[:4]
	}
	return period
}
