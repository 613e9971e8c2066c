package insights

import (
	"fmt"
	"strconv"
	"time"

	"github.com/credana/delinq-engine/pkg/apperrors"
	"github.com/credana/delinq-engine/pkg/models"
)

// FactRecordsFromRows decodes generic query rows into fact records. A
// missing or mistyped column yields a DataError naming the column.
func FactRecordsFromRows(rows []map[string]any) ([]models.DelinquencyRecord, error) {
	records := make([]models.DelinquencyRecord, 0, len(rows))
	for _, row := range rows {
		var (
			r   models.DelinquencyRecord
			err error
		)
		if r.ReferenceDate, err = timeColumn(row, "data_base"); err != nil {
			return nil, err
		}
		if r.State, err = stringColumn(row, "uf"); err != nil {
			return nil, err
		}
		if r.ClientType, err = stringColumn(row, "cliente"); err != nil {
			return nil, err
		}
		// ocupacao applies to PF rows and cnae_secao to PJ rows, so each
		// may be null on the other's rows
		r.Occupation = optionalStringColumn(row, "ocupacao")
		r.IndustrySector = optionalStringColumn(row, "cnae_secao")
		if r.SizeTier, err = stringColumn(row, "porte"); err != nil {
			return nil, err
		}
		if r.Modality, err = stringColumn(row, "modalidade"); err != nil {
			return nil, err
		}

		numeric := []struct {
			column string
			target *float64
		}{
			{"soma_a_vencer_ate_90_dias", &r.SumDueWithin90Days},
			{"soma_numero_de_operacoes", &r.SumOperationCount},
			{"soma_carteira_ativa", &r.SumActivePortfolio},
			{"soma_carteira_inadimplida_arrastada", &r.SumDelinquentBalance},
			{"soma_ativo_problematico", &r.SumProblematicAssets},
			{"media_a_vencer_ate_90_dias", &r.MeanDueWithin90Days},
			{"media_numero_de_operacoes", &r.MeanOperationCount},
			{"media_carteira_ativa", &r.MeanActivePortfolio},
			{"media_carteira_inadimplida_arrastada", &r.MeanDelinquentBalance},
			{"media_ativo_problematico", &r.MeanProblematicAssets},
			{"min_a_vencer_ate_90_dias", &r.MinDueWithin90Days},
			{"min_numero_de_operacoes", &r.MinOperationCount},
			{"min_carteira_ativa", &r.MinActivePortfolio},
			{"min_carteira_inadimplida_arrastada", &r.MinDelinquentBalance},
			{"min_ativo_problematico", &r.MinProblematicAssets},
			{"max_a_vencer_ate_90_dias", &r.MaxDueWithin90Days},
			{"max_numero_de_operacoes", &r.MaxOperationCount},
			{"max_carteira_ativa", &r.MaxActivePortfolio},
			{"max_carteira_inadimplida_arrastada", &r.MaxDelinquentBalance},
			{"max_ativo_problematico", &r.MaxProblematicAssets},
		}
		for _, n := range numeric {
			if *n.target, err = floatColumn(row, n.column); err != nil {
				return nil, err
			}
		}

		records = append(records, r)
	}
	return records, nil
}

// ProjectionRecordsFromRows decodes generic query rows into projection
// records. A missing or mistyped column yields a DataError.
func ProjectionRecordsFromRows(rows []map[string]any) ([]models.ProjectionRecord, error) {
	records := make([]models.ProjectionRecord, 0, len(rows))
	for _, row := range rows {
		var (
			r   models.ProjectionRecord
			err error
		)
		if r.Period, err = stringColumn(row, "ano_mes"); err != nil {
			return nil, err
		}
		if r.SizeTier, err = stringColumn(row, "porte"); err != nil {
			return nil, err
		}
		if r.State, err = stringColumn(row, "uf"); err != nil {
			return nil, err
		}
		if r.ClientType, err = stringColumn(row, "cliente"); err != nil {
			return nil, err
		}
		if r.Modality, err = stringColumn(row, "modalidade"); err != nil {
			return nil, err
		}
		if r.RowKind, err = stringColumn(row, "tipo"); err != nil {
			return nil, err
		}
		if r.SumProblematicAssets, err = floatColumn(row, "soma_ativo_problematico"); err != nil {
			return nil, err
		}
		if r.SumDelinquentBalance, err = floatColumn(row, "soma_carteira_inadimplida_arrastada"); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func stringColumn(row map[string]any, column string) (string, error) {
	value, ok := row[column]
	if !ok {
		return "", &apperrors.DataError{Column: column, Reason: "column missing"}
	}
	s, ok := value.(string)
	if !ok {
		return "", &apperrors.DataError{Column: column, Reason: fmt.Sprintf("expected text, got %T", value)}
	}
	return s, nil
}

func optionalStringColumn(row map[string]any, column string) string {
	if s, ok := row[column].(string); ok {
		return s
	}
	return ""
}

func timeColumn(row map[string]any, column string) (time.Time, error) {
	value, ok := row[column]
	if !ok {
		return time.Time{}, &apperrors.DataError{Column: column, Reason: "column missing"}
	}
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, &apperrors.DataError{Column: column, Reason: fmt.Sprintf("unparseable date %q", v)}
		}
		return t, nil
	default:
		return time.Time{}, &apperrors.DataError{Column: column, Reason: fmt.Sprintf("expected date, got %T", value)}
	}
}

func floatColumn(row map[string]any, column string) (float64, error) {
	value, ok := row[column]
	if !ok {
		return 0, &apperrors.DataError{Column: column, Reason: "column missing"}
	}
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case string:
		// NUMERIC columns arrive as text through the generic scanner
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, &apperrors.DataError{Column: column, Reason: fmt.Sprintf("unparseable number %q", v)}
		}
		return f, nil
	case nil:
		return 0, nil
	default:
		return 0, &apperrors.DataError{Column: column, Reason: fmt.Sprintf("expected number, got %T", value)}
	}
}
