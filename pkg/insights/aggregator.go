package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/credana/delinq-engine/pkg/models"
)

// NoFactDataSentinel is returned when the fact sample is empty.
const NoFactDataSentinel = "Nenhum dado disponível para análise de inadimplência."

// topGroupLimit caps the ranked state/modality section.
const topGroupLimit = 10

// factTotals accumulates the three monetary aggregates per group.
type factTotals struct {
	key         string
	active      float64
	delinquent  float64
	problematic float64
}

// AggregateFacts builds the delinquency section of the Insight Report from a
// sample of fact rows. Pure function of its input; section order is fixed.
func AggregateFacts(records []models.DelinquencyRecord) string {
	if len(records) == 0 {
		return NoFactDataSentinel
	}

	var report strings.Builder
	report.WriteString("\n## INSIGHTS DE INADIMPLÊNCIA\n\n")

	report.WriteString("### Inadimplência por Período e Porte:\n")
	byPeriodTier := groupFacts(records, func(r models.DelinquencyRecord) string {
		return r.ReferenceDate.Format("2006-01") + " | " + r.SizeTier
	})
	sortFactsByKey(byPeriodTier)
	for _, g := range byPeriodTier {
		writeFactLine(&report, g)
	}

	report.WriteString("\n### Inadimplência por Estado e Modalidade:\n")
	byStateModality := groupFacts(records, func(r models.DelinquencyRecord) string {
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
		writeFactLine(&report, g)
	}

	report.WriteString("\n### Inadimplência por Tipo de Cliente:\n")
	byClient := groupFacts(records, func(r models.DelinquencyRecord) string {
		return r.ClientType
	})
	sortFactsByKey(byClient)
	for _, g := range byClient {
		writeFactLine(&report, g)
	}

	report.WriteString("\n### Destaques:\n")
	var total factTotals
	for _, r := range records {
		total.active += r.SumActivePortfolio
		total.delinquent += r.SumDelinquentBalance
		total.problematic += r.SumProblematicAssets
	}
	fmt.Fprintf(&report, "- **Total Carteira Ativa**: %s\n", FormatBRL(total.active))
	fmt.Fprintf(&report, "- **Total Inadimplência Arrastada**: %s\n", FormatBRL(total.delinquent))
	fmt.Fprintf(&report, "- **Total Ativo Problemático**: %s\n", FormatBRL(total.problematic))

	return report.String()
}

// groupFacts sums the monetary aggregates per key, keeping groups in
// first-appearance order.
func groupFacts(records []models.DelinquencyRecord, keyFn func(models.DelinquencyRecord) string) []factTotals {
	index := make(map[string]int)
	var groups []factTotals

	for _, r := range records {
		key := keyFn(r)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, factTotals{key: key})
		}
		groups[i].active += r.SumActivePortfolio
		groups[i].delinquent += r.SumDelinquentBalance
		groups[i].problematic += r.SumProblematicAssets
	}

	return groups
}

func sortFactsByKey(groups []factTotals) {
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].key < groups[j].key
	})
}

func writeFactLine(report *strings.Builder, g factTotals) {
	fmt.Fprintf(report,
		"- **%s**: Carteira Ativa: %s, Inadimplência Arrastada: %s, Ativo Problemático: %s\n",
		g.key, FormatBRL(g.active), FormatBRL(g.delinquent), FormatBRL(g.problematic))
}

// CombineReports joins the fact and projection sections the way the chat
// pipeline caches them per session.
func CombineReports(factReport, projectionReport string) string {
	return factReport + "\n\nProjeções:\n" + projectionReport
}
