// FILE: pkg/aggregate/stage.go
// Pipeline and stage types shared by the aggregation planner and the
// tenant-scope guard.
package aggregate

// StageKind discriminates what a stage does. The guard only ever inspects
// the kind of the first stage; payloads stay opaque except for StageMatch.
type StageKind string

const (
	// StageMatch filters documents by field conditions. Its Spec is a
	// field -> condition map and is the only payload the guard interprets.
	StageMatch StageKind = "match"

	// Engine-ordered kinds. Postgres-backed planners and the upstream
	// document engine both require these to occupy position 0.
	StageSearch       StageKind = "search"       // full-text search
	StageVectorSearch StageKind = "vectorSearch" // embedding similarity
	StageGeoNear      StageKind = "geoNear"      // geo proximity

	// Passthrough kinds, interpreted by the planner only.
	StageGroup   StageKind = "group"
	StageSort    StageKind = "sort"
	StageLimit   StageKind = "limit"
	StageSkip    StageKind = "skip"
	StageProject StageKind = "project"
	StageLookup  StageKind = "lookup"
)

// Doc is an opaque stage payload. Values may be scalars, nested Docs,
// or slices; the guard never reaches below the top level.
type Doc map[string]any

// Stage is one step of an aggregation pipeline.
type Stage struct {
	Kind StageKind
	Spec Doc
}

// Pipeline is an ordered sequence of stages. Order is semantically
// significant: the engine executes stages sequentially and rejects
// pipelines where an engine-ordered kind is not first.
type Pipeline []Stage

// Match builds a match stage from a field -> condition map.
func Match(spec Doc) Stage {
	return Stage{Kind: StageMatch, Spec: spec}
}

// NewStage builds a stage of an arbitrary kind.
func NewStage(kind StageKind, spec Doc) Stage {
	return Stage{Kind: kind, Spec: spec}
}

// Clone returns a deep copy of the stage. The copy shares nothing with
// the receiver, so mutating one can never leak into the other.
func (s Stage) Clone() Stage {
	return Stage{Kind: s.Kind, Spec: cloneDoc(s.Spec)}
}

// Clone returns a deep copy of the pipeline.
func (p Pipeline) Clone() Pipeline {
	if p == nil {
		return nil
	}
	out := make(Pipeline, len(p))
	for i, s := range p {
		out[i] = s.Clone()
	}
	return out
}

func cloneDoc(d Doc) Doc {
	if d == nil {
		return nil
	}
	out := make(Doc, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Doc:
		return cloneDoc(val)
	case map[string]any:
		return map[string]any(cloneDoc(Doc(val)))
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		// Scalars (and caller-defined value types) are copied by value.
		return v
	}
}
