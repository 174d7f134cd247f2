package gormrepo

import (
	"context"
	"fmt"

	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	sharedUtils "github.com/kast7n/PurrfectMatchPublic-sub003/shared/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Repository es un SpecRepository sobre gorm (Postgres o SQLite). El criterio se
// traduce a SQL; las condiciones sobre relaciones se resuelven con EXISTS.
type Repository[T any] struct {
	db *gorm.DB
}

// Verificación estática para asegurar que implementa la interfaz compartida.
var _ sharedDomain.SpecRepository[struct{}] = (*Repository[struct{}])(nil)

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// ------------------ SpecRepository ------------------

// List aplica filtro, includes (Preload), orden y ventana.
func (r *Repository[T]) List(ctx context.Context, spec sharedDomain.Specification[T]) ([]*T, error) {
	q, sch, err := r.filtered(ctx, spec.Criteria)
	if err != nil {
		return nil, r.fail("list", sch, err)
	}

	for _, inc := range spec.Includes {
		q = q.Preload(inc.String())
	}

	if spec.OrderKey != nil {
		q = q.Order(orderFor(sch, spec))
	}

	if spec.PagingEnabled {
		q = q.Offset(spec.Skip).Limit(spec.Take)
	}

	out := []*T{}
	if err := q.Find(&out).Error; err != nil {
		return nil, r.fail("list", sch, err)
	}
	return out, nil
}

// Count solo aplica el criterio: sin includes, orden ni ventana.
func (r *Repository[T]) Count(ctx context.Context, spec sharedDomain.Specification[T]) (int64, error) {
	q, sch, err := r.filtered(ctx, spec.Criteria)
	if err != nil {
		return 0, r.fail("count", sch, err)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, r.fail("count", sch, err)
	}
	return total, nil
}

// ------------------ Helpers ------------------

func (r *Repository[T]) filtered(ctx context.Context, criteria sharedDomain.Predicate[T]) (*gorm.DB, *schema.Schema, error) {
	sch, err := r.schema()
	if err != nil {
		return nil, nil, err
	}
	if !criteria.Translatable() {
		return nil, sch, ErrUntranslatable
	}

	q := r.db.WithContext(ctx).Model(new(T))
	for _, c := range criteria.ToConditions() {
		expr, err := conditionFor(sch, c)
		if err != nil {
			return nil, sch, err
		}
		q = q.Where(expr)
	}
	return q, sch, nil
}

// orderFor arma el ORDER BY en una sola cláusula, con desempate por clave primaria
// para que las páginas no se solapen. Una clave sin distinción de mayúsculas
// compara LOWER(columna).
func orderFor[T any](sch *schema.Schema, spec sharedDomain.Specification[T]) clause.OrderBy {
	field := spec.OrderKey.Field
	col := clause.Column{Table: clause.CurrentTable, Name: field}
	dir := sharedUtils.Ternary(spec.Descending, " DESC", "")

	sql, vars := "?"+dir, []interface{}{col}
	if spec.OrderKey.CaseInsensitive {
		sql = "LOWER(?)" + dir
	}
	if pk := sch.PrioritizedPrimaryField; pk != nil && pk.DBName != field {
		sql += ", ?"
		vars = append(vars, clause.Column{Table: clause.CurrentTable, Name: pk.DBName})
	}
	return clause.OrderBy{Expression: clause.Expr{SQL: sql, Vars: vars}}
}

func (r *Repository[T]) schema() (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, err
	}
	return stmt.Schema, nil
}

func (r *Repository[T]) fail(op string, sch *schema.Schema, err error) error {
	table := "?"
	if sch != nil {
		table = sch.Table
	}
	return fmt.Errorf("%w: %s %s: %w", sharedDomain.ErrQueryFailed, table, op, err)
}
