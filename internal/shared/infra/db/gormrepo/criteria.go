package gormrepo

import (
	"errors"
	"fmt"
	"strings"

	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var (
	ErrUntranslatable  = errors.New("predicate has no SQL translation")
	ErrUnknownRelation = errors.New("unknown relation")
	ErrUnknownOperator = errors.New("unknown operator")
)

// conditionFor traduce una condición neutral a una expresión de gorm.
// "Relacion.columna" se convierte en EXISTS sobre la tabla relacionada.
func conditionFor(sch *schema.Schema, c sharedDomain.Criterion) (clause.Expression, error) {
	relName := c.Relation()
	if relName == "" {
		sql, vars, err := comparison(clause.Column{Table: clause.CurrentTable, Name: c.Column()}, c)
		if err != nil {
			return nil, err
		}
		return clause.Expr{SQL: sql, Vars: vars}, nil
	}

	rel, ok := sch.Relationships.Relations[relName]
	if !ok || rel.FieldSchema == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownRelation, sch.Name, relName)
	}

	alias := "rel_" + strings.ToLower(relName)
	var (
		joins []string
		vars  = []interface{}{clause.Table{Name: rel.FieldSchema.Table, Alias: alias}}
	)
	for _, ref := range rel.References {
		if ref.PrimaryKey == nil || ref.ForeignKey == nil {
			continue
		}
		if ref.OwnPrimaryKey {
			// has one / has many: la FK está en la tabla relacionada.
			joins = append(joins, "? = ?")
			vars = append(vars,
				clause.Column{Table: alias, Name: ref.ForeignKey.DBName},
				clause.Column{Table: clause.CurrentTable, Name: ref.PrimaryKey.DBName})
		} else {
			// belongs to: la FK está en la tabla actual.
			joins = append(joins, "? = ?")
			vars = append(vars,
				clause.Column{Table: alias, Name: ref.PrimaryKey.DBName},
				clause.Column{Table: clause.CurrentTable, Name: ref.ForeignKey.DBName})
		}
	}
	if len(joins) == 0 {
		return nil, fmt.Errorf("%w: %s.%s has no references", ErrUnknownRelation, sch.Name, relName)
	}

	cond, condVars, err := comparison(clause.Column{Table: alias, Name: c.Column()}, c)
	if err != nil {
		return nil, err
	}
	vars = append(vars, condVars...)

	sql := "EXISTS (SELECT 1 FROM ? WHERE " + strings.Join(joins, " AND ") + " AND " + cond + ")"
	return clause.Expr{SQL: sql, Vars: vars}, nil
}

// comparison construye "col <op> valor" con placeholders de gorm.
func comparison(col clause.Column, c sharedDomain.Criterion) (string, []interface{}, error) {
	switch c.Op {
	case sharedDomain.OpEq, sharedDomain.OpNeq, sharedDomain.OpGt, sharedDomain.OpGte, sharedDomain.OpLt, sharedDomain.OpLte:
		return "? " + string(c.Op) + " ?", []interface{}{col, c.Value}, nil
	case sharedDomain.OpILike:
		return `LOWER(COALESCE(?, '')) LIKE ? ESCAPE '\'`, []interface{}{col, likePattern(c.Value)}, nil
	case sharedDomain.OpIn:
		return "? IN ?", []interface{}{col, c.Value}, nil
	case sharedDomain.OpNotNull:
		return "? IS NOT NULL", []interface{}{col}, nil
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownOperator, c.Op)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern convierte el texto buscado en "%texto%" con comodines escapados.
func likePattern(v interface{}) string {
	return "%" + likeEscaper.Replace(strings.ToLower(fmt.Sprint(v))) + "%"
}
