package models

import (
	"fmt"
	"strings"
)

// ColumnInfo describes one column of a query result.
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// QueryResult is the tabular output of executing a synthesized query.
type QueryResult struct {
	Columns  []ColumnInfo     `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"row_count"`
}

// RenderText serializes the result as a pipe-separated table suitable for
// inclusion in a model prompt. An empty result renders as a short notice
// instead of a bare header.
func (r *QueryResult) RenderText() string {
	if r == nil || len(r.Columns) == 0 {
		return "(consulta sem colunas)"
	}
	if r.RowCount == 0 {
		return "(consulta executada, nenhuma linha retornada)"
	}

	var sb strings.Builder
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	sb.WriteString(strings.Join(names, " | "))
	sb.WriteString("\n")

	for _, row := range r.Rows {
		cells := make([]string, len(names))
		for i, name := range names {
			cells[i] = fmt.Sprintf("%v", row[name])
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
	}
	return sb.String()
}
