package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
)

// Resolver rellena una relación sobre la copia de la entidad que devuelve el store.
// No debe modificar objetos compartidos: si necesita tocar un hijo, lo copia.
type Resolver[T any] func(ctx context.Context, entity *T) error

// Store es un SpecRepository sobre una colección en memoria. Evalúa el predicado
// de la especificación directamente, sin traducirlo.
type Store[T any] struct {
	mu        sync.RWMutex
	name      string
	items     []*T
	resolvers map[string]Resolver[T]
	failWith  error
}

// Verificación estática para asegurar que implementa la interfaz compartida.
var _ sharedDomain.SpecRepository[struct{}] = (*Store[struct{}])(nil)

func NewStore[T any](name string, items ...*T) *Store[T] {
	return &Store[T]{
		name:      name,
		items:     append([]*T(nil), items...),
		resolvers: make(map[string]Resolver[T]),
	}
}

// Add añade entidades al final de la colección (orden de inserción estable).
func (s *Store[T]) Add(items ...*T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

// Replace sustituye la colección completa.
func (s *Store[T]) Replace(items []*T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]*T(nil), items...)
}

// Snapshot devuelve la colección tal cual está guardada.
func (s *Store[T]) Snapshot() []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*T(nil), s.items...)
}

// WithRelation registra cómo resolver una ruta de relación ("Shelter", "Pet.Shelter").
// Las rutas sin resolver se consideran ya embebidas en la entidad.
func (s *Store[T]) WithRelation(path string, r Resolver[T]) *Store[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolvers[path] = r
	return s
}

// FailWith hace que las consultas fallen con err (nil lo desactiva).
func (s *Store[T]) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// ------------------ SpecRepository ------------------

func (s *Store[T]) List(ctx context.Context, spec sharedDomain.Specification[T]) ([]*T, error) {
	paths := make([]string, 0, len(spec.Includes))
	for _, inc := range spec.Includes {
		paths = append(paths, inc.String())
	}
	paths = append(paths, spec.Criteria.Relations()...)

	matched, err := s.filter(ctx, "list", spec.Criteria, paths)
	if err != nil {
		return nil, err
	}

	if spec.OrderKey != nil && spec.OrderKey.Compare != nil {
		cmp := spec.OrderKey.Compare
		if spec.Descending {
			sort.SliceStable(matched, func(i, j int) bool { return cmp(matched[j], matched[i]) < 0 })
		} else {
			sort.SliceStable(matched, func(i, j int) bool { return cmp(matched[i], matched[j]) < 0 })
		}
	}

	if !spec.PagingEnabled {
		return matched, nil
	}
	if spec.Skip < 0 || spec.Take <= 0 || spec.Skip >= len(matched) {
		return []*T{}, nil
	}
	end := len(matched)
	if spec.Take < end-spec.Skip {
		end = spec.Skip + spec.Take
	}
	return matched[spec.Skip:end], nil
}

// Count solo resuelve las relaciones que el criterio necesita. Con un predicado
// opaco no se sabe cuáles son, así que se resuelven todos los includes.
func (s *Store[T]) Count(ctx context.Context, spec sharedDomain.Specification[T]) (int64, error) {
	paths := spec.Criteria.Relations()
	if !spec.Criteria.Translatable() {
		for _, inc := range spec.Includes {
			paths = append(paths, inc.String())
		}
	}

	matched, err := s.filter(ctx, "count", spec.Criteria, paths)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

// ------------------ Helpers ------------------

func (s *Store[T]) filter(ctx context.Context, op string, criteria sharedDomain.Predicate[T], paths []string) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", sharedDomain.ErrQueryFailed, s.name, op, err)
	}

	s.mu.RLock()
	items := append([]*T(nil), s.items...)
	resolvers := s.resolversFor(paths)
	failWith := s.failWith
	s.mu.RUnlock()

	if failWith != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", sharedDomain.ErrQueryFailed, s.name, op, failWith)
	}

	matched := make([]*T, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		cp := *item
		for _, resolve := range resolvers {
			if err := resolve(ctx, &cp); err != nil {
				return nil, fmt.Errorf("%w: %s %s: %w", sharedDomain.ErrQueryFailed, s.name, op, err)
			}
		}
		if criteria.IsSatisfiedBy(&cp) {
			matched = append(matched, &cp)
		}
	}
	return matched, nil
}

// resolversFor devuelve los resolvers de las rutas, de menos a más profundas:
// "Pet" se resuelve antes que "Pet.Shelter".
func (s *Store[T]) resolversFor(paths []string) []Resolver[T] {
	unique := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if _, ok := s.resolvers[p]; ok && !seen[p] {
			seen[p] = true
			unique = append(unique, p)
		}
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return strings.Count(unique[i], ".") < strings.Count(unique[j], ".")
	})

	out := make([]Resolver[T], 0, len(unique))
	for _, p := range unique {
		out = append(out, s.resolvers[p])
	}
	return out
}
