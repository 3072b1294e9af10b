package aggregate

import (
	"reflect"
	"testing"
)

func TestStageCloneIsDeep(t *testing.T) {
	original := Stage{
		Kind: StageMatch,
		Spec: Doc{
			"status": "open",
			"meta":   Doc{"source": "mobile"},
			"plain":  map[string]any{"nested": "value"},
			"tags":   []any{"plumbing", Doc{"k": "v"}},
		},
	}

	clone := original.Clone()
	if !reflect.DeepEqual(clone, original) {
		t.Fatalf("clone = %+v, want %+v", clone, original)
	}

	clone.Spec["status"] = "closed"
	clone.Spec["meta"].(Doc)["source"] = "web"
	clone.Spec["plain"].(map[string]any)["nested"] = "changed"
	clone.Spec["tags"].([]any)[0] = "electrical"
	clone.Spec["tags"].([]any)[1].(Doc)["k"] = "changed"

	if original.Spec["status"] != "open" {
		t.Error("clone shares top-level map with original")
	}
	if original.Spec["meta"].(Doc)["source"] != "mobile" {
		t.Error("clone shares nested Doc with original")
	}
	if original.Spec["plain"].(map[string]any)["nested"] != "value" {
		t.Error("clone shares nested map with original")
	}
	if original.Spec["tags"].([]any)[0] != "plumbing" {
		t.Error("clone shares slice with original")
	}
	if original.Spec["tags"].([]any)[1].(Doc)["k"] != "v" {
		t.Error("clone shares Doc inside slice with original")
	}
}

func TestPipelineCloneNil(t *testing.T) {
	var p Pipeline
	if got := p.Clone(); got != nil {
		t.Errorf("Clone of nil pipeline = %+v, want nil", got)
	}
}

func TestMatchHelper(t *testing.T) {
	s := Match(Doc{"org_id": "acme"})
	if s.Kind != StageMatch {
		t.Errorf("Kind = %v, want %v", s.Kind, StageMatch)
	}
	if s.Spec["org_id"] != "acme" {
		t.Errorf("Spec = %+v", s.Spec)
	}
}
