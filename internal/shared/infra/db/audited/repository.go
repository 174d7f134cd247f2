package audited

import (
	"context"
	"time"

	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
)

// Repository decora un SpecRepository y deja constancia de cada consulta en el
// registro analítico. No altera resultados ni errores.
type Repository[T any] struct {
	inner    sharedDomain.SpecRepository[T]
	entity   string
	recorder sharedDomain.QueryRecorder
}

var _ sharedDomain.SpecRepository[struct{}] = (*Repository[struct{}])(nil)

// Wrap devuelve inner tal cual si no hay recorder.
func Wrap[T any](inner sharedDomain.SpecRepository[T], entity string, recorder sharedDomain.QueryRecorder) sharedDomain.SpecRepository[T] {
	if recorder == nil {
		return inner
	}
	return &Repository[T]{inner: inner, entity: entity, recorder: recorder}
}

func (r *Repository[T]) List(ctx context.Context, spec sharedDomain.Specification[T]) ([]*T, error) {
	start := time.Now()
	items, err := r.inner.List(ctx, spec)
	r.record("list", spec, int64(len(items)), start, err)
	return items, err
}

func (r *Repository[T]) Count(ctx context.Context, spec sharedDomain.Specification[T]) (int64, error) {
	start := time.Now()
	total, err := r.inner.Count(ctx, spec)
	r.record("count", spec, total, start, err)
	return total, err
}

func (r *Repository[T]) record(op string, spec sharedDomain.Specification[T], rows int64, start time.Time, err error) {
	r.recorder.Record(sharedDomain.QueryLogEntry{
		Entity:     r.entity,
		Operation:  op,
		Conditions: len(spec.Criteria.ToConditions()),
		Paged:      spec.PagingEnabled && op == "list",
		Rows:       rows,
		Duration:   time.Since(start),
		Failed:     err != nil,
		ExecutedAt: start.UTC(),
	})
}
