// FILE: pkg/aggregate/tenant_scope.go
// Tenant-isolation guard for aggregation pipelines. Every pipeline that
// reaches storage must pass through ApplyTenantScope (or, for audited
// platform-admin reporting, BypassTenantScope) so that an unscoped query
// can never be the silent default.
package aggregate

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrMissingTenantContext signals a caller-side programming bug: a call
// site reached the guard without tenant information. It is never retried;
// the enclosing request must abort rather than run an unscoped query.
var ErrMissingTenantContext = errors.New("missing tenant context")

// ErrMissingBypassAudit signals a bypass invocation without a complete
// audit context. Bypassing tenant scope anonymously is not allowed.
var ErrMissingBypassAudit = errors.New("missing bypass audit context")

// mustBeFirst lists the stage kinds the engine requires at position 0.
// The set is fixed; adding a kind here without planner support would let
// the guard displace stages the engine will then reject.
var mustBeFirst = map[StageKind]bool{
	StageSearch:       true,
	StageVectorSearch: true,
	StageGeoNear:      true,
}

// ApplyTenantScope returns a new pipeline equivalent to p but guaranteed
// to constrain every document to tenantField == tenantID, inserted at the
// position the engine's stage-ordering rules allow:
//
//   - empty pipeline: a single match stage carrying only the tenant filter
//   - engine-ordered first stage (search/vectorSearch/geoNear): the tenant
//     match becomes the second stage, the required stage stays first
//   - leading match stage: the tenant condition is merged into it, with
//     the tenant field authoritative over any caller condition on the same
//     field, so no redundant back-to-back match stages appear
//   - anything else: the tenant match is prepended
//
// The input pipeline and its stages are never mutated or aliased; the
// result is a freshly owned value, safe under concurrent callers.
func ApplyTenantScope(p Pipeline, tenantField string, tenantID any) (Pipeline, error) {
	if tenantField == "" {
		return nil, fmt.Errorf("%w: tenant field is empty", ErrMissingTenantContext)
	}
	if isMissingID(tenantID) {
		return nil, fmt.Errorf("%w: tenant id is not set (field %q)", ErrMissingTenantContext, tenantField)
	}

	tenant := Stage{Kind: StageMatch, Spec: Doc{tenantField: tenantID}}

	if len(p) == 0 {
		return Pipeline{tenant}, nil
	}

	out := make(Pipeline, 0, len(p)+1)
	first := p[0]

	switch {
	case mustBeFirst[first.Kind]:
		out = append(out, first.Clone(), tenant)
		out = appendCloned(out, p[1:])

	case first.Kind == StageMatch:
		// Merge instead of stacking a second match right behind the
		// caller's one. The tenant condition wins on field collision:
		// scoping is authoritative over whatever the caller asked for.
		merged := make(Doc, len(first.Spec)+1)
		for k, v := range first.Spec {
			merged[k] = cloneValue(v)
		}
		merged[tenantField] = tenantID
		out = append(out, Stage{Kind: StageMatch, Spec: merged})
		out = appendCloned(out, p[1:])

	default:
		out = append(out, tenant)
		out = appendCloned(out, p)
	}

	return out, nil
}

// BypassAudit identifies who is skipping tenant scoping and why. Both
// fields are mandatory; a zero value is rejected. Callers are expected to
// log or publish every bypass (see pkg/audit).
type BypassAudit struct {
	Actor  string // user or service identity performing the bypass
	Reason string // human-readable justification, e.g. "platform revenue report"
}

// BypassTenantScope deliberately skips tenant scoping and returns a clone
// of p unchanged. It exists as a separate, loudly named function (not a
// flag on ApplyTenantScope) so a bypass can never be reached by a typo or
// a defaulted argument, and every call site is visible in review.
func BypassTenantScope(p Pipeline, audit BypassAudit) (Pipeline, error) {
	if audit.Actor == "" {
		return nil, fmt.Errorf("%w: actor is empty", ErrMissingBypassAudit)
	}
	if audit.Reason == "" {
		return nil, fmt.Errorf("%w: reason is empty", ErrMissingBypassAudit)
	}
	return p.Clone(), nil
}

func appendCloned(dst Pipeline, src Pipeline) Pipeline {
	for _, s := range src {
		dst = append(dst, s.Clone())
	}
	return dst
}

func isMissingID(id any) bool {
	switch v := id.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case uuid.UUID:
		return v == uuid.Nil
	case *uuid.UUID:
		return v == nil || *v == uuid.Nil
	default:
		return false
	}
}
