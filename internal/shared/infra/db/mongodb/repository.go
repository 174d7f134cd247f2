package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	sharedUtils "github.com/kast7n/PurrfectMatchPublic-sub003/shared/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository es un SpecRepository sobre una colección de MongoDB. D es el
// documento BSON; decode lo convierte a la entidad de dominio.
// Las relaciones van embebidas en el documento, así que los includes no hacen nada
// y "Relacion.columna" se traduce a la ruta "relacion.columna".
type Repository[T any, D any] struct {
	coll   *mongo.Collection
	decode func(*D) *T
}

func NewRepository[T any, D any](coll *mongo.Collection, decode func(*D) *T) *Repository[T, D] {
	return &Repository[T, D]{coll: coll, decode: decode}
}

// ------------------ SpecRepository ------------------

func (r *Repository[T, D]) List(ctx context.Context, spec sharedDomain.Specification[T]) ([]*T, error) {
	pipeline, err := ListPipeline(spec)
	if err != nil {
		return nil, r.fail("list", err)
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, r.fail("list", err)
	}
	defer cursor.Close(ctx)

	out := []*T{}
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			return nil, r.fail("list", err)
		}
		out = append(out, r.decode(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, r.fail("list", err)
	}
	return out, nil
}

func (r *Repository[T, D]) Count(ctx context.Context, spec sharedDomain.Specification[T]) (int64, error) {
	filter, err := FilterFor(spec.Criteria)
	if err != nil {
		return 0, r.fail("count", err)
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, r.fail("count", err)
	}
	return total, nil
}

func (r *Repository[T, D]) fail(op string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", sharedDomain.ErrQueryFailed, r.coll.Name(), op, err)
}

// ------------------ Traducción ------------------

// FilterFor traduce el criterio a un filtro de MongoDB. Varias condiciones se
// combinan con $and para que dos rangos sobre el mismo campo no se pisen.
func FilterFor[T any](criteria sharedDomain.Predicate[T]) (bson.D, error) {
	if !criteria.Translatable() {
		return nil, fmt.Errorf("predicate has no MongoDB translation")
	}

	conds := criteria.ToConditions()
	parts := make(bson.A, 0, len(conds))
	for _, c := range conds {
		part, err := conditionFor(c)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	switch len(parts) {
	case 0:
		return bson.D{}, nil
	case 1:
		return parts[0].(bson.D), nil
	default:
		return bson.D{{Key: "$and", Value: parts}}, nil
	}
}

// sortKeyField guarda la copia en minúsculas de la columna de orden.
const sortKeyField = "_sortKey"

// ListPipeline arma la agregación de List: filtro, orden y ventana. Con una clave
// de orden sin distinción de mayúsculas se ordena por $toLower de la columna.
func ListPipeline[T any](spec sharedDomain.Specification[T]) (mongo.Pipeline, error) {
	filter, err := FilterFor(spec.Criteria)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: filter}}}
	if spec.OrderKey != nil && spec.OrderKey.CaseInsensitive {
		lower := bson.D{{Key: "$toLower", Value: "$" + FieldPath(spec.OrderKey.Field)}}
		pipeline = append(pipeline, bson.D{{Key: "$addFields", Value: bson.D{{Key: sortKeyField, Value: lower}}}})
	}
	if sort := SortFor(spec); len(sort) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}
	if spec.PagingEnabled {
		pipeline = append(pipeline,
			bson.D{{Key: "$skip", Value: int64(spec.Skip)}},
			bson.D{{Key: "$limit", Value: int64(spec.Take)}},
		)
	}
	return pipeline, nil
}

// SortFor traduce la clave de orden, con _id como desempate.
func SortFor[T any](spec sharedDomain.Specification[T]) bson.D {
	if spec.OrderKey == nil {
		return nil
	}
	dir := sharedUtils.Ternary(spec.Descending, -1, 1)
	key := FieldPath(spec.OrderKey.Field)
	if spec.OrderKey.CaseInsensitive {
		key = sortKeyField
	}
	sort := bson.D{{Key: key, Value: dir}}
	if key != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: 1})
	}
	return sort
}

func conditionFor(c sharedDomain.Criterion) (bson.D, error) {
	field := FieldPath(c.Field)
	value := normalize(c.Value)

	var expr bson.M
	switch c.Op {
	case sharedDomain.OpEq:
		expr = bson.M{"$eq": value}
	case sharedDomain.OpNeq:
		expr = bson.M{"$ne": value}
	case sharedDomain.OpGt:
		expr = bson.M{"$gt": value}
	case sharedDomain.OpGte:
		expr = bson.M{"$gte": value}
	case sharedDomain.OpLt:
		expr = bson.M{"$lt": value}
	case sharedDomain.OpLte:
		expr = bson.M{"$lte": value}
	case sharedDomain.OpILike:
		// Para ILIKE, se busca el texto literal con la opción 'i'.
		expr = bson.M{"$regex": regexp.QuoteMeta(fmt.Sprint(value)), "$options": "i"}
	case sharedDomain.OpIn:
		expr = bson.M{"$in": value}
	case sharedDomain.OpNotNull:
		expr = bson.M{"$ne": nil}
	default:
		return nil, fmt.Errorf("unknown operator %q", c.Op)
	}
	return bson.D{{Key: field, Value: expr}}, nil
}

// FieldPath convierte "Shelter.city" en "shelter.city" y "shelter_id" en "shelterId".
// "id" en la raíz es "_id".
func FieldPath(field string) string {
	if field == "id" {
		return "_id"
	}
	parts := strings.Split(field, ".")
	for i, p := range parts {
		parts[i] = camel(p)
	}
	return strings.Join(parts, ".")
}

func camel(s string) string {
	var b strings.Builder
	upper := false
	for i, r := range s {
		switch {
		case r == '_':
			upper = true
		case i == 0:
			b.WriteRune(unicode.ToLower(r))
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalize guarda los UUID como texto, igual que los documentos.
func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case uuid.UUID:
		return x.String()
	case []uuid.UUID:
		out := make([]string, len(x))
		for i, id := range x {
			out[i] = id.String()
		}
		return out
	default:
		return v
	}
}
