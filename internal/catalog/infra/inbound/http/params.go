package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sharedQuery "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/query"
)

// queryParams lee filtros de la query string. Un parámetro ausente o vacío deja
// el campo a nil. Números y booleanos mal formados se ignoran; los ids mal
// formados sí son un error (400), que se guarda en err.
type queryParams struct {
	c   *gin.Context
	err error
}

func newQueryParams(c *gin.Context) *queryParams {
	return &queryParams{c: c}
}

func (q *queryParams) str(name string) *string {
	v := strings.TrimSpace(q.c.Query(name))
	if v == "" {
		return nil
	}
	return &v
}

func (q *queryParams) boolean(name string) *bool {
	v, err := strconv.ParseBool(q.c.Query(name))
	if err != nil {
		return nil
	}
	return &v
}

func (q *queryParams) integer(name string) *int {
	v, err := strconv.Atoi(q.c.Query(name))
	if err != nil {
		return nil
	}
	return &v
}

func (q *queryParams) id(name string) *uuid.UUID {
	raw := strings.TrimSpace(q.c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := uuid.Parse(raw)
	if err != nil {
		q.fail(name, raw)
		return nil
	}
	return &v
}

// list acepta "?tags=a&tags=b" y "?tags=a,b".
func (q *queryParams) list(name string) []string {
	var out []string
	for _, raw := range q.c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (q *queryParams) ids(name string) []uuid.UUID {
	var out []uuid.UUID
	for _, raw := range q.list(name) {
		v, err := uuid.Parse(raw)
		if err != nil {
			q.fail(name, raw)
			return nil
		}
		out = append(out, v)
	}
	return out
}

// DefaultPageSize se aplica cuando la petición no trae pageSize. pageSize=0
// explícito pide el listado completo.
const DefaultPageSize = 20

// page lee pageNumber, pageSize, sortBy y sortDescending. Sin normalizar: eso
// lo hace la especificación.
func (q *queryParams) page() sharedQuery.PageRequest {
	req := sharedQuery.PageRequest{SortBy: q.c.Query("sortBy"), PageNumber: 1, PageSize: DefaultPageSize}
	if v := q.integer("pageNumber"); v != nil {
		req.PageNumber = *v
	}
	if v := q.integer("pageSize"); v != nil {
		req.PageSize = *v
	}
	if v := q.boolean("sortDescending"); v != nil {
		req.SortDescending = *v
	}
	return req
}

func (q *queryParams) fail(name, raw string) {
	if q.err == nil {
		q.err = fmt.Errorf("invalid %s: %q", name, raw)
	}
}
