package pipeline

import (
	"errors"
	"testing"

	"fixzit-be/pkg/aggregate"

	"github.com/stretchr/testify/assert"
)

func workOrderPlanner() *Planner {
	return NewPlanner(Config{
		Table:        "work_orders",
		TextColumns:  []string{"title", "description"},
		VectorColumn: "description_embedding",
		LatColumn:    "properties.location_lat",
		LngColumn:    "properties.location_lng",
		GeoJoin:      "JOIN properties ON properties.id = work_orders.property_id",
	})
}

func TestBuildMatchConditions(t *testing.T) {
	plan, err := workOrderPlanner().Build(aggregate.Pipeline{
		aggregate.Match(aggregate.Doc{
			"org_id": "acme",
			"status": aggregate.Doc{"in": []any{"open", "in_progress"}},
		}),
	})
	assert.NoError(t, err)
	assert.Len(t, plan.Conditions, 2)

	byColumn := map[string]Condition{}
	for _, c := range plan.Conditions {
		byColumn[c.Column] = c
	}
	assert.Equal(t, "=", byColumn["org_id"].Op)
	assert.Equal(t, "acme", byColumn["org_id"].Value)
	assert.Equal(t, "IN", byColumn["status"].Op)
}

func TestBuildMatchOperators(t *testing.T) {
	plan, err := workOrderPlanner().Build(aggregate.Pipeline{
		aggregate.Match(aggregate.Doc{
			"created_at": aggregate.Doc{"gte": "2026-01-01", "lt": "2026-02-01"},
		}),
	})
	assert.NoError(t, err)
	assert.Len(t, plan.Conditions, 2)

	ops := map[string]bool{}
	for _, c := range plan.Conditions {
		assert.Equal(t, "created_at", c.Column)
		ops[c.Op] = true
	}
	assert.True(t, ops[">="])
	assert.True(t, ops["<"])
}

func TestBuildMatchRejectsBadInput(t *testing.T) {
	_, err := workOrderPlanner().Build(aggregate.Pipeline{
		aggregate.Match(aggregate.Doc{"status; DROP TABLE work_orders": "x"}),
	})
	assert.Error(t, err)

	_, err = workOrderPlanner().Build(aggregate.Pipeline{
		aggregate.Match(aggregate.Doc{"status": aggregate.Doc{"regex": "x"}}),
	})
	assert.Error(t, err)
}

func TestBuildSearchStage(t *testing.T) {
	plan, err := workOrderPlanner().Build(aggregate.Pipeline{
		aggregate.NewStage(aggregate.StageSearch, aggregate.Doc{"query": "leaking pipe"}),
		aggregate.Match(aggregate.Doc{"org_id": "acme"}),
		aggregate.NewStage(aggregate.StageLimit, aggregate.Doc{"n": 20}),
	})
	assert.NoError(t, err)
	assert.Equal(t, "leaking pipe", plan.TextQuery)
	assert.Equal(t, 20, plan.Limit)
	assert.Len(t, plan.Conditions, 1)
}

func TestBuildSearchMustBeFirst(t *testing.T) {
	_, err := workOrderPlanner().Build(aggregate.Pipeline{
		aggregate.Match(aggregate.Doc{"org_id": "acme"}),
		aggregate.NewStage(aggregate.StageSearch, aggregate.Doc{"query": "pipe"}),
	})
	assert.Error(t, err)
}

func TestBuildVectorSearchStage(t *testing.T) {
	plan, err := workOrderPlanner().Build(aggregate.Pipeline{
		aggregate.NewStage(aggregate.StageVectorSearch, aggregate.Doc{
			"vector": []any{0.1, 0.2, 0.3},
			"limit":  5,
		}),
		aggregate.Match(aggregate.Doc{"org_id": "acme"}),
	})
	assert.NoError(t, err)
	assert.NotNil(t, plan.Vector)
	assert.Equal(t, "description_embedding", plan.Vector.Column)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, plan.Vector.Vector)
	assert.Equal(t, 5, plan.Limit)
}

func TestBuildGeoNearStage(t *testing.T) {
	plan, err := workOrderPlanner().Build(aggregate.Pipeline{
		aggregate.NewStage(aggregate.StageGeoNear, aggregate.Doc{
			"lat": 24.7136, "lng": 46.6753, "maxDistanceKm": 10.0,
		}),
		aggregate.Match(aggregate.Doc{"org_id": "acme"}),
	})
	assert.NoError(t, err)
	assert.NotNil(t, plan.Geo)
	assert.InDelta(t, 24.7136, plan.Geo.Lat, 1e-9)
	assert.InDelta(t, 10.0, plan.Geo.MaxDistanceKm, 1e-9)
}

func TestBuildGroupStage(t *testing.T) {
	plan, err := workOrderPlanner().Build(aggregate.Pipeline{
		aggregate.Match(aggregate.Doc{"org_id": "acme"}),
		aggregate.NewStage(aggregate.StageGroup, aggregate.Doc{
			"by": "status", "count": true,
		}),
	})
	assert.NoError(t, err)
	assert.NotNil(t, plan.Group)
	assert.Equal(t, "status", plan.Group.By)
	assert.True(t, plan.Group.Count)
}

func TestBuildSortSkipProject(t *testing.T) {
	plan, err := workOrderPlanner().Build(aggregate.Pipeline{
		aggregate.Match(aggregate.Doc{"org_id": "acme"}),
		aggregate.NewStage(aggregate.StageSort, aggregate.Doc{"field": "created_at", "desc": true}),
		aggregate.NewStage(aggregate.StageSkip, aggregate.Doc{"n": 40}),
		aggregate.NewStage(aggregate.StageLimit, aggregate.Doc{"n": 20}),
		aggregate.NewStage(aggregate.StageProject, aggregate.Doc{"fields": []any{"id", "title", "status"}}),
	})
	assert.NoError(t, err)
	assert.Equal(t, []Order{{Column: "created_at", Desc: true}}, plan.Orders)
	assert.Equal(t, 40, plan.Offset)
	assert.Equal(t, 20, plan.Limit)
	assert.Equal(t, []string{"id", "title", "status"}, plan.Selects)
}

func TestBuildUnsupportedStage(t *testing.T) {
	_, err := workOrderPlanner().Build(aggregate.Pipeline{
		aggregate.NewStage(aggregate.StageLookup, aggregate.Doc{"from": "invoices"}),
	})
	assert.True(t, errors.Is(err, ErrUnsupportedStage))
}

func TestStagesUnsupportedByTableConfig(t *testing.T) {
	invoices := NewPlanner(Config{Table: "invoices"})

	_, err := invoices.Build(aggregate.Pipeline{
		aggregate.NewStage(aggregate.StageSearch, aggregate.Doc{"query": "x"}),
	})
	assert.Error(t, err)

	_, err = invoices.Build(aggregate.Pipeline{
		aggregate.NewStage(aggregate.StageVectorSearch, aggregate.Doc{"vector": []any{0.1}}),
	})
	assert.Error(t, err)

	_, err = invoices.Build(aggregate.Pipeline{
		aggregate.NewStage(aggregate.StageGeoNear, aggregate.Doc{"lat": 1.0, "lng": 2.0}),
	})
	assert.Error(t, err)
}

func TestTextSearchExpr(t *testing.T) {
	expr := workOrderPlanner().TextSearchExpr()
	assert.Equal(t, "coalesce(title,'') || ' ' || coalesce(description,'')", expr)
}
