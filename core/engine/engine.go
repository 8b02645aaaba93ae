// Package engine - Estimation pipeline
// The engine wires the pure stages together: validate → resolve → compose →
// aggregate → timeline. It pins one catalog snapshot per request, so a hot
// reload can never produce an estimate that mixes old and new prices.
package engine

import (
	"time"

	"go.uber.org/zap"

	"baticost/core/aggregate"
	"baticost/core/catalog"
	"baticost/core/coeff"
	"baticost/core/resolve"
	"baticost/core/timeline"
	"baticost/core/types"
	"baticost/core/validate"
	"baticost/internal/errors"
	"baticost/internal/logging"
)

// Engine computes estimates against the catalog store's current snapshot.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	store *catalog.Store

	// now is the time source; replaceable in tests
	now func() time.Time
}

// New creates an engine over a catalog store
func New(store *catalog.Store) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
	}
}

// NewWithClock creates an engine with a fixed time source
func NewWithClock(store *catalog.Store, now func() time.Time) *Engine {
	return &Engine{store: store, now: now}
}

// Catalog returns the current catalog snapshot
func (e *Engine) Catalog() *catalog.Catalog {
	return e.store.Current()
}

// Estimate computes a fully itemized estimate for a raw project description.
// Validation failures return a *errors.ValidationErrors listing every
// offending field; pricing gaps and integrity failures short-circuit.
func (e *Engine) Estimate(raw *types.RawProjectInput) (*types.EstimationResult, error) {
	// Pin the snapshot once; every stage below reads this pointer only.
	cat := e.store.Current()
	now := e.now().UTC()

	in, err := validate.Validate(raw, cat, now)
	if err != nil {
		return nil, err
	}

	items, err := resolve.Resolve(in, cat)
	if err != nil {
		logStageFailure("resolve", cat, err)
		return nil, err
	}

	comp, err := coeff.Compose(in, cat, now)
	if err != nil {
		logStageFailure("compose", cat, err)
		return nil, err
	}

	result, err := aggregate.Aggregate(items, comp, in, cat)
	if err != nil {
		logStageFailure("aggregate", cat, err)
		return nil, err
	}

	result.Timeline = timeline.Estimate(in.ProjectType, in.Surface)
	return result, nil
}

// logStageFailure records non-user-facing failures. Pricing gaps and
// integrity errors are catalog authoring bugs, not user errors; they must
// reach an operator, not just the caller.
func logStageFailure(stage string, cat *catalog.Catalog, err error) {
	if errors.IsType(err, errors.TypePricingGap) || errors.IsType(err, errors.TypeIntegrity) {
		logging.Error("estimate stage failed",
			zap.String("stage", stage),
			zap.String("catalog_version", cat.Version),
			zap.Error(err))
	}
}
