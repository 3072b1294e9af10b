// FILE: internal/repository/pipeline/planner.go
// Translates an aggregation Pipeline (already passed through the tenant
// scope guard) into a SQL query plan executed via GORM. The guard treats
// stage payloads as opaque; interpretation happens here, so a malformed
// payload fails at plan time with a descriptive error.
package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"fixzit-be/pkg/aggregate"
)

var ErrUnsupportedStage = errors.New("unsupported pipeline stage")

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Config describes the table-specific columns special stages bind to.
type Config struct {
	Table string

	// Columns concatenated for full-text search stages.
	TextColumns []string

	// Column holding the pgvector embedding for vectorSearch stages.
	VectorColumn string

	// Latitude/longitude columns for geoNear stages. May live on a joined
	// table (e.g. "properties.location_lat") when Join is set.
	LatColumn string
	LngColumn string

	// Optional JOIN clause required by geoNear (work orders join their
	// property to reach coordinates).
	GeoJoin string
}

// Condition is a single WHERE predicate.
type Condition struct {
	Column string
	Op     string // =, <>, >, >=, <, <=, IN, LIKE
	Value  any
}

// Order is a single ORDER BY directive on a plain column.
type Order struct {
	Column string
	Desc   bool
}

// Grouping describes a GROUP BY aggregation.
type Grouping struct {
	By        string
	Count     bool
	SumColumn string
	AvgColumn string
}

// VectorOrder orders rows by embedding distance to a query vector.
type VectorOrder struct {
	Column string
	Vector []float32
}

// GeoOrder orders rows by haversine distance to a point, optionally
// bounded by a max distance in kilometers.
type GeoOrder struct {
	Lat           float64
	Lng           float64
	MaxDistanceKm float64 // 0 = unbounded
}

// Plan is the flattened, executable form of a pipeline. It exists as a
// separate value so stage translation can be tested without a database.
type Plan struct {
	Table      string
	Conditions []Condition
	TextQuery  string
	Vector     *VectorOrder
	Geo        *GeoOrder
	Group      *Grouping
	Selects    []string
	Orders     []Order
	Limit      int // 0 = unset
	Offset     int
}

type Planner struct {
	cfg Config
}

func NewPlanner(cfg Config) *Planner {
	return &Planner{cfg: cfg}
}

// Build walks the pipeline once and accumulates a Plan. Stage kinds the
// planner does not know are rejected; the guard deliberately lets them
// through untouched, so this is where they surface.
func (pl *Planner) Build(p aggregate.Pipeline) (*Plan, error) {
	plan := &Plan{Table: pl.cfg.Table}

	for i, stage := range p {
		var err error
		switch stage.Kind {
		case aggregate.StageMatch:
			err = pl.buildMatch(plan, stage.Spec)
		case aggregate.StageSearch:
			err = pl.buildSearch(plan, stage.Spec, i)
		case aggregate.StageVectorSearch:
			err = pl.buildVectorSearch(plan, stage.Spec, i)
		case aggregate.StageGeoNear:
			err = pl.buildGeoNear(plan, stage.Spec, i)
		case aggregate.StageGroup:
			err = pl.buildGroup(plan, stage.Spec)
		case aggregate.StageSort:
			err = pl.buildSort(plan, stage.Spec)
		case aggregate.StageLimit:
			plan.Limit, err = intField(stage.Spec, "n")
		case aggregate.StageSkip:
			plan.Offset, err = intField(stage.Spec, "n")
		case aggregate.StageProject:
			err = pl.buildProject(plan, stage.Spec)
		default:
			err = fmt.Errorf("%w: %q at index %d", ErrUnsupportedStage, stage.Kind, i)
		}
		if err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func (pl *Planner) buildMatch(plan *Plan, spec aggregate.Doc) error {
	for field, cond := range spec {
		if !identPattern.MatchString(field) {
			return fmt.Errorf("match: invalid field name %q", field)
		}

		ops, ok := asDoc(cond)
		if !ok {
			// Scalar condition: plain equality.
			plan.Conditions = append(plan.Conditions, Condition{Column: field, Op: "=", Value: cond})
			continue
		}

		for op, val := range ops {
			sqlOp, known := matchOps[op]
			if !known {
				return fmt.Errorf("match: unknown operator %q on field %q", op, field)
			}
			plan.Conditions = append(plan.Conditions, Condition{Column: field, Op: sqlOp, Value: val})
		}
	}
	return nil
}

var matchOps = map[string]string{
	"eq":   "=",
	"ne":   "<>",
	"gt":   ">",
	"gte":  ">=",
	"lt":   "<",
	"lte":  "<=",
	"in":   "IN",
	"like": "LIKE",
}

func (pl *Planner) buildSearch(plan *Plan, spec aggregate.Doc, index int) error {
	if index != 0 {
		return fmt.Errorf("search stage must be first, found at index %d", index)
	}
	if len(pl.cfg.TextColumns) == 0 {
		return fmt.Errorf("search stage not supported on table %q", pl.cfg.Table)
	}
	q, _ := spec["query"].(string)
	if q == "" {
		return errors.New("search: query is required")
	}
	plan.TextQuery = q
	return nil
}

func (pl *Planner) buildVectorSearch(plan *Plan, spec aggregate.Doc, index int) error {
	if index != 0 {
		return fmt.Errorf("vectorSearch stage must be first, found at index %d", index)
	}
	if pl.cfg.VectorColumn == "" {
		return fmt.Errorf("vectorSearch stage not supported on table %q", pl.cfg.Table)
	}

	vec, err := floatSlice(spec["vector"])
	if err != nil {
		return fmt.Errorf("vectorSearch: %w", err)
	}
	plan.Vector = &VectorOrder{Column: pl.cfg.VectorColumn, Vector: vec}

	if n, ok := spec["limit"]; ok {
		limit, err := asInt(n)
		if err != nil {
			return fmt.Errorf("vectorSearch: %w", err)
		}
		plan.Limit = limit
	}
	return nil
}

func (pl *Planner) buildGeoNear(plan *Plan, spec aggregate.Doc, index int) error {
	if index != 0 {
		return fmt.Errorf("geoNear stage must be first, found at index %d", index)
	}
	if pl.cfg.LatColumn == "" || pl.cfg.LngColumn == "" {
		return fmt.Errorf("geoNear stage not supported on table %q", pl.cfg.Table)
	}

	lat, err := asFloat(spec["lat"])
	if err != nil {
		return fmt.Errorf("geoNear: lat: %w", err)
	}
	lng, err := asFloat(spec["lng"])
	if err != nil {
		return fmt.Errorf("geoNear: lng: %w", err)
	}

	geo := &GeoOrder{Lat: lat, Lng: lng}
	if max, ok := spec["maxDistanceKm"]; ok {
		if geo.MaxDistanceKm, err = asFloat(max); err != nil {
			return fmt.Errorf("geoNear: maxDistanceKm: %w", err)
		}
	}
	plan.Geo = geo
	return nil
}

func (pl *Planner) buildGroup(plan *Plan, spec aggregate.Doc) error {
	by, _ := spec["by"].(string)
	if !identPattern.MatchString(by) {
		return fmt.Errorf("group: invalid group field %q", by)
	}

	group := &Grouping{By: by}
	if count, ok := spec["count"].(bool); ok {
		group.Count = count
	}
	if sum, ok := spec["sum"].(string); ok && sum != "" {
		if !identPattern.MatchString(sum) {
			return fmt.Errorf("group: invalid sum field %q", sum)
		}
		group.SumColumn = sum
	}
	if avg, ok := spec["avg"].(string); ok && avg != "" {
		if !identPattern.MatchString(avg) {
			return fmt.Errorf("group: invalid avg field %q", avg)
		}
		group.AvgColumn = avg
	}
	plan.Group = group
	return nil
}

func (pl *Planner) buildSort(plan *Plan, spec aggregate.Doc) error {
	field, _ := spec["field"].(string)
	if !identPattern.MatchString(field) {
		return fmt.Errorf("sort: invalid field %q", field)
	}
	desc, _ := spec["desc"].(bool)
	plan.Orders = append(plan.Orders, Order{Column: field, Desc: desc})
	return nil
}

func (pl *Planner) buildProject(plan *Plan, spec aggregate.Doc) error {
	raw, ok := spec["fields"]
	if !ok {
		return errors.New("project: fields is required")
	}

	fields, err := stringSlice(raw)
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	for _, f := range fields {
		if !identPattern.MatchString(f) {
			return fmt.Errorf("project: invalid field %q", f)
		}
	}
	plan.Selects = fields
	return nil
}

// TextSearchExpr returns the to_tsvector expression for the configured
// text columns, e.g. "coalesce(title,'') || ' ' || coalesce(description,'')".
func (pl *Planner) TextSearchExpr() string {
	parts := make([]string, len(pl.cfg.TextColumns))
	for i, c := range pl.cfg.TextColumns {
		parts[i] = fmt.Sprintf("coalesce(%s,'')", c)
	}
	return strings.Join(parts, " || ' ' || ")
}

func (pl *Planner) ConfigRef() Config {
	return pl.cfg
}

// ---- payload coercion helpers ----

func asDoc(v any) (aggregate.Doc, bool) {
	switch d := v.(type) {
	case aggregate.Doc:
		return d, true
	case map[string]any:
		return aggregate.Doc(d), true
	default:
		return nil, false
	}
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func intField(spec aggregate.Doc, key string) (int, error) {
	raw, ok := spec[key]
	if !ok {
		return 0, fmt.Errorf("stage payload field %q is required", key)
	}
	return asInt(raw)
}

func floatSlice(v any) ([]float32, error) {
	switch vec := v.(type) {
	case []float32:
		out := make([]float32, len(vec))
		copy(out, vec)
		return out, nil
	case []float64:
		out := make([]float32, len(vec))
		for i, f := range vec {
			out[i] = float32(f)
		}
		return out, nil
	case []any:
		out := make([]float32, len(vec))
		for i, item := range vec {
			f, err := asFloat(item)
			if err != nil {
				return nil, fmt.Errorf("vector element %d: %w", i, err)
			}
			out[i] = float32(f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected vector, got %T", v)
	}
}

func stringSlice(v any) ([]string, error) {
	switch s := v.(type) {
	case []string:
		return s, nil
	case []any:
		out := make([]string, len(s))
		for i, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %d: expected string, got %T", i, item)
			}
			out[i] = str
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string list, got %T", v)
	}
}
