package aggregate

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestApplyTenantScopeEmptyPipeline(t *testing.T) {
	out, err := ApplyTenantScope(Pipeline{}, "org_id", "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Pipeline{{Kind: StageMatch, Spec: Doc{"org_id": "acme"}}}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("out = %+v, want %+v", out, want)
	}

	out2, err := ApplyTenantScope(nil, "org_id", "acme")
	if err != nil {
		t.Fatalf("unexpected error on nil pipeline: %v", err)
	}
	if !reflect.DeepEqual(out2, want) {
		t.Errorf("nil pipeline out = %+v, want %+v", out2, want)
	}
}

func TestApplyTenantScopePlacement(t *testing.T) {
	tests := []struct {
		name string
		in   Pipeline
		want Pipeline
	}{
		{
			name: "full-text search stays first, tenant filter second",
			in: Pipeline{
				{Kind: StageSearch, Spec: Doc{"query": "leaking pipe"}},
				{Kind: StageLimit, Spec: Doc{"n": 10}},
			},
			want: Pipeline{
				{Kind: StageSearch, Spec: Doc{"query": "leaking pipe"}},
				{Kind: StageMatch, Spec: Doc{"org_id": "acme"}},
				{Kind: StageLimit, Spec: Doc{"n": 10}},
			},
		},
		{
			name: "vector search stays first",
			in: Pipeline{
				{Kind: StageVectorSearch, Spec: Doc{"query": "shoes"}},
			},
			want: Pipeline{
				{Kind: StageVectorSearch, Spec: Doc{"query": "shoes"}},
				{Kind: StageMatch, Spec: Doc{"org_id": "acme"}},
			},
		},
		{
			name: "geo proximity stays first",
			in: Pipeline{
				{Kind: StageGeoNear, Spec: Doc{"lat": 24.7, "lng": 46.6}},
				{Kind: StageSort, Spec: Doc{"field": "created_at"}},
			},
			want: Pipeline{
				{Kind: StageGeoNear, Spec: Doc{"lat": 24.7, "lng": 46.6}},
				{Kind: StageMatch, Spec: Doc{"org_id": "acme"}},
				{Kind: StageSort, Spec: Doc{"field": "created_at"}},
			},
		},
		{
			name: "leading match merges, no duplicate stage",
			in: Pipeline{
				{Kind: StageMatch, Spec: Doc{"status": "open"}},
			},
			want: Pipeline{
				{Kind: StageMatch, Spec: Doc{"status": "open", "org_id": "acme"}},
			},
		},
		{
			name: "tenant field authoritative on collision",
			in: Pipeline{
				{Kind: StageMatch, Spec: Doc{"org_id": "somebody-else", "status": "open"}},
			},
			want: Pipeline{
				{Kind: StageMatch, Spec: Doc{"org_id": "acme", "status": "open"}},
			},
		},
		{
			name: "other first stage gets tenant filter prepended",
			in: Pipeline{
				{Kind: StageGroup, Spec: Doc{"by": "status", "count": true}},
			},
			want: Pipeline{
				{Kind: StageMatch, Spec: Doc{"org_id": "acme"}},
				{Kind: StageGroup, Spec: Doc{"by": "status", "count": true}},
			},
		},
		{
			name: "match later in the pipeline is left alone",
			in: Pipeline{
				{Kind: StageSort, Spec: Doc{"field": "priority"}},
				{Kind: StageMatch, Spec: Doc{"status": "open"}},
			},
			want: Pipeline{
				{Kind: StageMatch, Spec: Doc{"org_id": "acme"}},
				{Kind: StageSort, Spec: Doc{"field": "priority"}},
				{Kind: StageMatch, Spec: Doc{"status": "open"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ApplyTenantScope(tt.in, "org_id", "acme")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(out, tt.want) {
				t.Errorf("out = %+v, want %+v", out, tt.want)
			}
		})
	}
}

func TestApplyTenantScopeDoesNotMutateInput(t *testing.T) {
	inputs := []Pipeline{
		{
			{Kind: StageMatch, Spec: Doc{"org_id": "stale", "status": "open", "meta": Doc{"k": "v"}}},
			{Kind: StageSort, Spec: Doc{"field": "created_at"}},
		},
		{
			{Kind: StageVectorSearch, Spec: Doc{"vector": []any{0.1, 0.2}}},
		},
		{
			{Kind: StageGroup, Spec: Doc{"by": "status"}},
		},
	}

	for _, in := range inputs {
		snapshot := in.Clone()

		out, err := ApplyTenantScope(in, "org_id", "acme")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(in, snapshot) {
			t.Errorf("input pipeline mutated: got %+v, want %+v", in, snapshot)
		}

		// Mutating the output must not reach back into the input either.
		for i := range out {
			for k := range out[i].Spec {
				out[i].Spec[k] = "clobbered"
			}
		}
		if !reflect.DeepEqual(in, snapshot) {
			t.Errorf("output aliases input: input became %+v", in)
		}
	}
}

func TestApplyTenantScopeMissingContext(t *testing.T) {
	pipe := Pipeline{{Kind: StageMatch, Spec: Doc{"status": "open"}}}

	tests := []struct {
		name  string
		field string
		id    any
	}{
		{"empty field", "", "acme"},
		{"nil id", "org_id", nil},
		{"empty string id", "org_id", ""},
		{"nil uuid id", "org_id", uuid.Nil},
		{"nil uuid pointer", "org_id", (*uuid.UUID)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ApplyTenantScope(pipe, tt.field, tt.id)
			if !errors.Is(err, ErrMissingTenantContext) {
				t.Errorf("err = %v, want ErrMissingTenantContext", err)
			}
			if out != nil {
				t.Errorf("out = %+v, want nil on error", out)
			}
		})
	}
}

func TestApplyTenantScopeUUIDTenant(t *testing.T) {
	orgID := uuid.New()
	out, err := ApplyTenantScope(nil, "org_id", orgID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out[0].Spec["org_id"]; got != orgID {
		t.Errorf("org_id = %v, want %v", got, orgID)
	}
}

func TestBypassTenantScope(t *testing.T) {
	pipe := Pipeline{
		{Kind: StageGroup, Spec: Doc{"by": "org_id", "count": true}},
	}

	out, err := BypassTenantScope(pipe, BypassAudit{Actor: "admin@fixzit.sa", Reason: "platform revenue report"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(out, pipe) {
		t.Errorf("bypass altered pipeline: got %+v, want %+v", out, pipe)
	}

	// Bypass still returns an owned copy, never the caller's slice.
	out[0].Spec["by"] = "clobbered"
	if pipe[0].Spec["by"] != "org_id" {
		t.Error("bypass output aliases input pipeline")
	}
}

func TestBypassTenantScopeRequiresAudit(t *testing.T) {
	pipe := Pipeline{{Kind: StageLimit, Spec: Doc{"n": 1}}}

	for _, audit := range []BypassAudit{
		{},
		{Actor: "admin@fixzit.sa"},
		{Reason: "no actor"},
	} {
		out, err := BypassTenantScope(pipe, audit)
		if !errors.Is(err, ErrMissingBypassAudit) {
			t.Errorf("audit %+v: err = %v, want ErrMissingBypassAudit", audit, err)
		}
		if out != nil {
			t.Errorf("audit %+v: out = %+v, want nil", audit, out)
		}
	}
}
