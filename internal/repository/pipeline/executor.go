// FILE: internal/repository/pipeline/executor.go
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row is one result document of an executed pipeline. Group stages return
// synthetic columns (count, sum_<field>, avg_<field>); everything else
// returns table columns.
type Row = map[string]any

// Run executes a plan against the database and returns raw rows. Callers
// that need typed entities go through the repository Find methods instead;
// Aggregate is for reporting-shaped output.
func (pl *Planner) Run(ctx context.Context, db *gorm.DB, plan *Plan) ([]Row, error) {
	cfg := pl.cfg
	q := db.WithContext(ctx).Table(cfg.Table)

	// Table() skips GORM's model-level soft delete handling.
	q = q.Where(fmt.Sprintf("%s.deleted_at IS NULL", cfg.Table))

	if plan.Geo != nil && cfg.GeoJoin != "" {
		q = q.Joins(cfg.GeoJoin)
	}

	for _, c := range plan.Conditions {
		col := fmt.Sprintf("%s.%s", cfg.Table, c.Column)
		switch c.Op {
		case "IN":
			q = q.Where(fmt.Sprintf("%s IN ?", col), c.Value)
		default:
			q = q.Where(fmt.Sprintf("%s %s ?", col, c.Op), c.Value)
		}
	}

	if plan.TextQuery != "" {
		q = q.Where(
			fmt.Sprintf("to_tsvector('english', %s) @@ plainto_tsquery('english', ?)", pl.TextSearchExpr()),
			plan.TextQuery,
		)
	}

	if plan.Geo != nil {
		distance := fmt.Sprintf(
			"(6371 * acos(least(1.0, cos(radians(?)) * cos(radians(%[1]s)) * cos(radians(%[2]s) - radians(?)) + sin(radians(?)) * sin(radians(%[1]s)))))",
			cfg.LatColumn, cfg.LngColumn,
		)
		if plan.Geo.MaxDistanceKm > 0 {
			q = q.Where(distance+" <= ?", plan.Geo.Lat, plan.Geo.Lng, plan.Geo.Lat, plan.Geo.MaxDistanceKm)
		}
		q = q.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                distance + " ASC",
			Vars:               []interface{}{plan.Geo.Lat, plan.Geo.Lng, plan.Geo.Lat},
			WithoutParentheses: true,
		}})
	}

	if plan.Vector != nil {
		q = q.Where(fmt.Sprintf("%s IS NOT NULL", plan.Vector.Column))
		q = q.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                fmt.Sprintf("%s <=> ?", plan.Vector.Column),
			Vars:               []interface{}{pgvector.NewVector(plan.Vector.Vector)},
			WithoutParentheses: true,
		}})
	}

	switch {
	case plan.Group != nil:
		g := plan.Group
		selects := []string{fmt.Sprintf("%s.%s", cfg.Table, g.By)}
		if g.Count {
			selects = append(selects, "COUNT(*) AS count")
		}
		if g.SumColumn != "" {
			selects = append(selects, fmt.Sprintf("SUM(%s.%s) AS sum_%s", cfg.Table, g.SumColumn, g.SumColumn))
		}
		if g.AvgColumn != "" {
			selects = append(selects, fmt.Sprintf("AVG(%s.%s) AS avg_%s", cfg.Table, g.AvgColumn, g.AvgColumn))
		}
		q = q.Select(strings.Join(selects, ", ")).Group(fmt.Sprintf("%s.%s", cfg.Table, g.By))

	case len(plan.Selects) > 0:
		qualified := make([]string, len(plan.Selects))
		for i, s := range plan.Selects {
			qualified[i] = fmt.Sprintf("%s.%s", cfg.Table, s)
		}
		q = q.Select(strings.Join(qualified, ", "))

	default:
		q = q.Select(cfg.Table + ".*")
	}

	for _, o := range plan.Orders {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		q = q.Order(fmt.Sprintf("%s.%s %s", cfg.Table, o.Column, dir))
	}

	if plan.Limit > 0 {
		q = q.Limit(plan.Limit)
	}
	if plan.Offset > 0 {
		q = q.Offset(plan.Offset)
	}

	var rows []Row
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("pipeline execution on %s: %w", cfg.Table, err)
	}
	return rows, nil
}
