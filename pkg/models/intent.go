package models

// Intent is the classified purpose-category of a user question. The
// classifier maps the model's digit answer onto this closed set; anything it
// cannot map falls back to IntentGeneral.
type Intent string

const (
	IntentComparison Intent = "COMPARAÇÃO"
	IntentRanking    Intent = "RANKING"
	IntentSpecific   Intent = "ESPECÍFICO"
	IntentTrend      Intent = "TENDÊNCIA"
	IntentGeneral    Intent = "GERAL"
	IntentProjection Intent = "PROJEÇÃO"
)

// AllIntents lists every member of the closed intent set in rubric order.
var AllIntents = []Intent{
	IntentComparison,
	IntentRanking,
	IntentSpecific,
	IntentTrend,
	IntentGeneral,
	IntentProjection,
}

// IntentFromDigit maps the rubric digit "1".."6" to its intent. The second
// return value is false when the digit is outside the rubric.
func IntentFromDigit(digit string) (Intent, bool) {
	switch digit {
	case "1":
		return IntentComparison, true
	case "2":
		return IntentRanking, true
	case "3":
		return IntentSpecific, true
	case "4":
		return IntentTrend, true
	case "5":
		return IntentGeneral, true
	case "6":
		return IntentProjection, true
	default:
		return IntentGeneral, false
	}
}

// IsValid reports whether i is a member of the closed intent set.
func (i Intent) IsValid() bool {
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}
