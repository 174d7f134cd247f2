package query

// ---------- Paginación / ordenamiento ----------

// PageRequest es la parte común de todos los filtros: ventana y orden pedidos.
type PageRequest struct {
	PageNumber     int    `json:"pageNumber,omitempty"`
	PageSize       int    `json:"pageSize,omitempty"`
	SortBy         string `json:"sortBy,omitempty"`
	SortDescending bool   `json:"sortDescending,omitempty"`
}

// ---------- Respuesta paginada ----------

// Page es el sobre que devuelve un listado: la página pedida y el total que cumple el filtro.
type Page[T any] struct {
	Items      []*T  `json:"items"`
	TotalCount int64 `json:"totalCount"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPage arma el sobre a partir del resultado de List y de Count.
func NewPage[T any](items []*T, totalCount int64, pageNumber, pageSize int) *Page[T] {
	if items == nil {
		items = []*T{}
	}
	return &Page[T]{
		Items:      items,
		TotalCount: totalCount,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: TotalPages(totalCount, pageSize),
	}
}

// TotalPages = ceil(total / pageSize) si pageSize > 0; si no, 1.
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	size := int64(pageSize)
	pages := totalCount / size
	if totalCount%size != 0 {
		pages++
	}
	return int(pages)
}
