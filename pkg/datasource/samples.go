package datasource

import (
	"context"
	"fmt"

	"github.com/credana/delinq-engine/pkg/insights"
	"github.com/credana/delinq-engine/pkg/models"
)

// LoadFactSample reads up to limit rows from the consolidated fact table and
// decodes them into delinquency records for insight aggregation.
func (e *Executor) LoadFactSample(ctx context.Context, table string, limit int) ([]models.DelinquencyRecord, error) {
	result, err := e.sampleTable(ctx, table, limit)
	if err != nil {
		return nil, err
	}
	return insights.FactRecordsFromRows(result.Rows)
}

// LoadProjectionSample reads up to limit rows from the projection table and
// decodes them into projection records.
func (e *Executor) LoadProjectionSample(ctx context.Context, table string, limit int) ([]models.ProjectionRecord, error) {
	result, err := e.sampleTable(ctx, table, limit)
	if err != nil {
		return nil, err
	}
	return insights.ProjectionRecordsFromRows(result.Rows)
}

func (e *Executor) sampleTable(ctx context.Context, table string, limit int) (*models.QueryResult, error) {
	if table == "" {
		return nil, fmt.Errorf("sample table name must not be empty")
	}
	// Table names come from configuration, not from the model, so plain
	// interpolation is fine here. The limit is applied by ExecuteQuery.
	return e.ExecuteQuery(ctx, fmt.Sprintf("SELECT * FROM %s", table), limit)
}
