// Package datasource executes synthesized SQL against the delinquency data
// store and loads the table samples the insight aggregators run on.
package datasource

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/credana/delinq-engine/pkg/apperrors"
	"github.com/credana/delinq-engine/pkg/database"
	"github.com/credana/delinq-engine/pkg/logging"
	"github.com/credana/delinq-engine/pkg/models"
	enginesql "github.com/credana/delinq-engine/pkg/sql"
)

// Executor runs model-generated SQL through the safety pipeline and returns
// tabular results.
type Executor struct {
	db              *database.DB
	enforceReadOnly bool
	logger          *zap.Logger
}

// NewExecutor creates an executor over an established connection pool.
func NewExecutor(db *database.DB, enforceReadOnly bool, logger *zap.Logger) *Executor {
	return &Executor{
		db:              db,
		enforceReadOnly: enforceReadOnly,
		logger:          logger.Named("datasource"),
	}
}

// PrepareStatement normalizes a generated statement and, when the read-only
// guard is enabled, rejects anything other than a single SELECT/WITH query
// with clean string literals. The returned SQL is what actually runs.
func PrepareStatement(sqlQuery string, enforceReadOnly bool) (string, error) {
	result := enginesql.ValidateAndNormalize(sqlQuery)
	if result.Error != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrStatementRejected, result.Error)
	}
	if result.NormalizedSQL == "" {
		return "", fmt.Errorf("%w: empty statement", apperrors.ErrStatementRejected)
	}

	if !enforceReadOnly {
		return result.NormalizedSQL, nil
	}

	if err := enginesql.EnsureReadOnly(result.NormalizedSQL); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrStatementRejected, err)
	}
	if hits := enginesql.CheckStatementLiterals(result.NormalizedSQL); len(hits) > 0 {
		return "", fmt.Errorf("%w: injection pattern in string literal (fingerprint %s)",
			apperrors.ErrStatementRejected, hits[0].Fingerprint)
	}

	return result.NormalizedSQL, nil
}

// ExecuteQuery runs a SQL query and returns the results. A positive limit
// wraps the statement in a bounding subquery so the model cannot blow past
// the configured row cap.
func (e *Executor) ExecuteQuery(ctx context.Context, sqlQuery string, limit int) (*models.QueryResult, error) {
	prepared, err := PrepareStatement(sqlQuery, e.enforceReadOnly)
	if err != nil {
		e.logger.Warn("rejected generated statement",
			zap.String("query", logging.SanitizeQuery(sqlQuery)),
			zap.Error(err))
		return nil, err
	}

	queryToRun := prepared
	if limit > 0 {
		queryToRun = fmt.Sprintf("SELECT * FROM (%s) AS _limited LIMIT %d", prepared, limit)
	}

	e.logger.Debug("executing query",
		zap.String("query", logging.SanitizeQuery(queryToRun)))

	rows, err := e.db.Query(ctx, queryToRun)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	columns := make([]models.ColumnInfo, len(fieldDescs))
	for i, fd := range fieldDescs {
		columns[i] = models.ColumnInfo{
			Name: string(fd.Name),
			Type: pgTypeNameFromOID(fd.DataTypeOID),
		}
	}

	resultRows := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row values: %w", err)
		}

		rowMap := make(map[string]any)
		for i, col := range columns {
			rowMap[col.Name] = values[i]
		}
		resultRows = append(resultRows, rowMap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &models.QueryResult{
		Columns:  columns,
		Rows:     resultRows,
		RowCount: len(resultRows),
	}, nil
}

// pgTypeNameFromOID maps common PostgreSQL type OIDs to readable names for
// result metadata.
func pgTypeNameFromOID(oid uint32) string {
	switch oid {
	case 16:
		return "BOOL"
	case 18:
		return "CHAR"
	case 20:
		return "INT8"
	case 21:
		return "INT2"
	case 23:
		return "INT4"
	case 25:
		return "TEXT"
	case 700:
		return "FLOAT4"
	case 701:
		return "FLOAT8"
	case 1042:
		return "BPCHAR"
	case 1043:
		return "VARCHAR"
	case 1082:
		return "DATE"
	case 1083:
		return "TIME"
	case 1114:
		return "TIMESTAMP"
	case 1184:
		return "TIMESTAMPTZ"
	case 1186:
		return "INTERVAL"
	case 1700:
		return "NUMERIC"
	case 2950:
		return "UUID"
	case 114:
		return "JSON"
	case 3802:
		return "JSONB"
	default:
		return "UNKNOWN"
	}
}
