package domain

import (
	"cmp"
	"strings"
	"time"
)

// SortKey es una clave de ordenación normalizada (minúsculas, sin espacios).
type SortKey string

// ParseSortKey normaliza el texto libre que llega en el filtro.
func ParseSortKey(raw string) SortKey {
	return SortKey(strings.ToLower(strings.TrimSpace(raw)))
}

// SortDefault documenta el orden que aplica un builder cuando no llega SortBy.
type SortDefault struct {
	Key        SortKey
	Descending bool
}

// SortTable es la lista blanca de claves de orden de una entidad.
type SortTable[T any] map[SortKey]OrderKey[T]

// Apply resuelve SortBy contra la tabla:
//   - vacío: se aplica el orden por defecto de la entidad;
//   - clave desconocida: se ignora, la especificación queda sin orden;
//   - clave conocida: se aplica con la dirección pedida.
func (t SortTable[T]) Apply(spec *Specification[T], sortBy string, descending bool, def SortDefault) {
	key, desc := ParseSortKey(sortBy), descending
	if key == "" {
		key, desc = def.Key, def.Descending
	}

	orderKey, ok := t[key]
	if !ok {
		return
	}
	if desc {
		spec.ApplyOrderByDescending(orderKey)
	} else {
		spec.ApplyOrderBy(orderKey)
	}
}

// ---------------- Comparadores ----------------

// By construye una OrderKey a partir de un accesor de valor ordenable.
func By[T any, V cmp.Ordered](field string, get func(*T) V) OrderKey[T] {
	return OrderKey[T]{
		Field:   field,
		Compare: func(a, b *T) int { return cmp.Compare(get(a), get(b)) },
	}
}

// ByText ordena por texto sin distinguir mayúsculas.
func ByText[T any](field string, get func(*T) string) OrderKey[T] {
	return OrderKey[T]{
		Field: field,
		Compare: func(a, b *T) int {
			return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
		},
		CaseInsensitive: true,
	}
}

// ByTime ordena por fecha.
func ByTime[T any](field string, get func(*T) time.Time) OrderKey[T] {
	return OrderKey[T]{
		Field:   field,
		Compare: func(a, b *T) int { return get(a).Compare(get(b)) },
	}
}
