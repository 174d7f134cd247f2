package domain

// Clause es una contribución opcional al predicado de una especificación.
// ok=false significa "no aporta nada" (identidad del AND).
type Clause[T any] func() (pred Predicate[T], ok bool)

// Fold reduce las cláusulas con AND, de izquierda a derecha, empezando por True.
// El orden importa: una cláusula que protege una relación nula va antes que la que la lee.
func Fold[T any](clauses ...Clause[T]) Predicate[T] {
	acc := True[T]()
	for _, clause := range clauses {
		if clause == nil {
			continue
		}
		if p, ok := clause(); ok {
			acc = acc.And(p)
		}
	}
	return acc
}

// Always aporta siempre el predicado.
func Always[T any](p Predicate[T]) Clause[T] {
	return func() (Predicate[T], bool) { return p, true }
}

// WhenPresent aporta build(*v) solo si el campo opcional viene informado.
func WhenPresent[T any, V any](v *V, build func(V) Predicate[T]) Clause[T] {
	return func() (Predicate[T], bool) {
		if v == nil {
			return Predicate[T]{}, false
		}
		return build(*v), true
	}
}

// WhenNotEmpty aporta build(vs) solo si la lista trae elementos.
func WhenNotEmpty[T any, V any](vs []V, build func([]V) Predicate[T]) Clause[T] {
	return func() (Predicate[T], bool) {
		if len(vs) == 0 {
			return Predicate[T]{}, false
		}
		return build(vs), true
	}
}

// DefaultFalse implementa la regla de exclusión por defecto de los flags de ciclo
// de vida: si el flag no viene, se filtra como si valiera false.
func DefaultFalse[T any](flag *bool, build func(bool) Predicate[T]) Clause[T] {
	return func() (Predicate[T], bool) {
		if flag == nil {
			return build(false), true
		}
		return build(*flag), true
	}
}
