package domain

import (
	"math"
	"strings"
)

// ---------------- RelationPath ----------------

// RelationPath es una ruta de relaciones a precargar ("Shelter", "Pet.Shelter").
// Un solo elemento cubre el caso de relación directa.
type RelationPath []string

// Rel construye una ruta a partir de sus nombres de relación.
func Rel(names ...string) RelationPath {
	return RelationPath(names)
}

// ParseRelationPath convierte "Pet.Shelter" en una RelationPath. Ignora segmentos vacíos.
func ParseRelationPath(dotted string) RelationPath {
	var path RelationPath
	for _, part := range strings.Split(dotted, ".") {
		if part = strings.TrimSpace(part); part != "" {
			path = append(path, part)
		}
	}
	return path
}

func (p RelationPath) String() string {
	return strings.Join(p, ".")
}

// Root es la primera relación de la ruta.
func (p RelationPath) Root() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// ---------------- OrderKey ----------------

// OrderKey es la clave de ordenación: columna para los motores de almacenamiento
// y comparador para el motor en memoria (negativo si a va antes que b).
// CaseInsensitive pide a los motores que comparen la columna en minúsculas.
type OrderKey[T any] struct {
	Field           string
	Compare         func(a, b *T) int
	CaseInsensitive bool
}

// ---------------- Specification ----------------

// Specification agrupa filtro, relaciones a precargar, una clave de orden y una
// ventana de paginación. La construye un único builder por petición y después
// nadie la modifica.
type Specification[T any] struct {
	Criteria      Predicate[T]
	Includes      []RelationPath
	OrderKey      *OrderKey[T]
	Descending    bool
	Skip          int
	Take          int
	PagingEnabled bool
}

// NewSpecification crea una especificación con el criterio dado.
func NewSpecification[T any](criteria Predicate[T]) *Specification[T] {
	return &Specification[T]{Criteria: criteria}
}

// AddInclude añade una relación a precargar.
func (s *Specification[T]) AddInclude(names ...string) {
	if len(names) == 0 {
		return
	}
	s.Includes = append(s.Includes, Rel(names...))
}

// AddIncludePath añade una ruta con puntos ("Pet.Shelter").
func (s *Specification[T]) AddIncludePath(dotted string) {
	if path := ParseRelationPath(dotted); len(path) > 0 {
		s.Includes = append(s.Includes, path)
	}
}

// ApplyOrderBy fija la clave de orden ascendente. Sustituye cualquier orden previo.
func (s *Specification[T]) ApplyOrderBy(key OrderKey[T]) {
	s.OrderKey = &key
	s.Descending = false
}

// ApplyOrderByDescending fija la clave de orden descendente. Sustituye cualquier orden previo.
func (s *Specification[T]) ApplyOrderByDescending(key OrderKey[T]) {
	s.OrderKey = &key
	s.Descending = true
}

// ApplyPaging fija la ventana de paginación. pageSize <= 0 desactiva la paginación;
// pageNumber por debajo de 1 se trata como 1. Si el desplazamiento no cabe en un
// int se satura a math.MaxInt y la ventana queda vacía.
func (s *Specification[T]) ApplyPaging(pageNumber, pageSize int) {
	if pageSize <= 0 {
		s.Skip, s.Take, s.PagingEnabled = 0, 0, false
		return
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber-1 > math.MaxInt/pageSize {
		s.Skip = math.MaxInt
	} else {
		s.Skip = (pageNumber - 1) * pageSize
	}
	s.Take = pageSize
	s.PagingEnabled = true
}

// HasOrder indica si hay una clave de orden activa.
func (s Specification[T]) HasOrder() bool {
	return s.OrderKey != nil
}

// Unpaged devuelve una copia con la paginación desactivada (mismo filtro y orden).
func (s Specification[T]) Unpaged() Specification[T] {
	s.Skip, s.Take, s.PagingEnabled = 0, 0, false
	return s
}
