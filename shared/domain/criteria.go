package domain

import "strings"

// ---------------- Operadores ----------------

type Operator string

const (
	OpEq      Operator = "="
	OpNeq     Operator = "<>"
	OpGt      Operator = ">"
	OpGte     Operator = ">="
	OpLt      Operator = "<"
	OpLte     Operator = "<="
	OpILike   Operator = "ILIKE" // contiene, sin distinguir mayúsculas
	OpIn      Operator = "IN"
	OpNotNull Operator = "IS NOT NULL"
)

// ---------------- Criterion ----------------

// Criterion describe una condición neutral de filtrado.
// Field es una columna de la entidad, o "Relacion.columna" cuando la condición
// se evalúa sobre un registro (o colección) relacionado: basta con que uno cumpla.
type Criterion struct {
	Field string
	Op    Operator
	Value interface{}
}

// Relation devuelve la relación sobre la que aplica la condición ("" si es propia).
func (c Criterion) Relation() string {
	if i := strings.Index(c.Field, "."); i > 0 {
		return c.Field[:i]
	}
	return ""
}

// Column devuelve la columna sin el prefijo de relación.
func (c Criterion) Column() string {
	if i := strings.Index(c.Field, "."); i > 0 {
		return c.Field[i+1:]
	}
	return c.Field
}

// ---------------- Criteria interface ----------------

// Criteria permite transformar filtros a condiciones neutrales
type Criteria interface {
	ToConditions() []Criterion
}

// ---------------- Predicate ----------------

// Predicate es una prueba booleana sobre una entidad. Guarda a la vez la función
// que evalúa en memoria y las condiciones neutrales equivalentes, para que los
// adaptadores SQL/Mongo puedan empujar el filtro al almacenamiento.
type Predicate[T any] struct {
	match  func(*T) bool
	conds  []Criterion
	opaque bool
}

// True es el predicado identidad del AND.
func True[T any]() Predicate[T] {
	return Predicate[T]{}
}

// Where crea un predicado traducible a partir de una condición y su evaluación en memoria.
func Where[T any](c Criterion, match func(*T) bool) Predicate[T] {
	return Predicate[T]{match: match, conds: []Criterion{c}}
}

// Func crea un predicado opaco: solo lo puede evaluar el motor en memoria.
func Func[T any](match func(*T) bool) Predicate[T] {
	return Predicate[T]{match: match, opaque: true}
}

// IsSatisfiedBy evalúa el predicado sobre una entidad.
func (p Predicate[T]) IsSatisfiedBy(entity *T) bool {
	if p.match == nil {
		return true
	}
	return p.match(entity)
}

// And combina dos predicados. q no se evalúa si p ya falló, así las cláusulas
// posteriores pueden asumir lo que las anteriores garantizan (p. ej. relación no nula).
func (p Predicate[T]) And(q Predicate[T]) Predicate[T] {
	switch {
	case p.match == nil && !p.opaque && len(p.conds) == 0:
		return q
	case q.match == nil && !q.opaque && len(q.conds) == 0:
		return p
	}

	left, right := p.match, q.match
	conds := make([]Criterion, 0, len(p.conds)+len(q.conds))
	conds = append(conds, p.conds...)
	conds = append(conds, q.conds...)

	return Predicate[T]{
		match: func(e *T) bool {
			if left != nil && !left(e) {
				return false
			}
			return right == nil || right(e)
		},
		conds:  conds,
		opaque: p.opaque || q.opaque,
	}
}

// ToConditions implementa Criteria. Las condiciones conservan el orden de composición.
func (p Predicate[T]) ToConditions() []Criterion {
	out := make([]Criterion, len(p.conds))
	copy(out, p.conds)
	return out
}

// Translatable indica si todas las partes del predicado tienen condición neutral.
func (p Predicate[T]) Translatable() bool {
	return !p.opaque
}

// Relations devuelve las relaciones que el predicado necesita resueltas para evaluarse.
func (p Predicate[T]) Relations() []string {
	var rels []string
	seen := map[string]bool{}
	for _, c := range p.conds {
		if r := c.Relation(); r != "" && !seen[r] {
			seen[r] = true
			rels = append(rels, r)
		}
	}
	return rels
}

// ---------------- Helpers ----------------

// And pliega los predicados de izquierda a derecha empezando por True.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	acc := True[T]()
	for _, p := range preds {
		acc = acc.And(p)
	}
	return acc
}

// Contains compara sin distinguir mayúsculas. Una aguja vacía siempre coincide.
func Contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Text devuelve el valor apuntado o "" si no hay valor.
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
