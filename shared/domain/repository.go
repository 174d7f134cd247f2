package domain

import (
	"context"
	"errors"
)

// ErrQueryFailed es el único error que exponen los motores de consulta: conexión,
// timeout o rechazo del backend. Un resultado vacío nunca es un error.
var ErrQueryFailed = errors.New("query execution failed")

// SpecRepository interpreta una Specification contra un almacenamiento concreto.
type SpecRepository[T any] interface {
	// List filtra, precarga relaciones, ordena y, si hay paginación, devuelve la ventana.
	List(ctx context.Context, spec Specification[T]) ([]*T, error)

	// Count cuenta las entidades que cumplen el criterio. Ignora orden, includes y paginación.
	Count(ctx context.Context, spec Specification[T]) (int64, error)
}
