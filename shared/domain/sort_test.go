package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type dated struct {
	Name string
	Age  int
	At   time.Time
}

var datedSorts = SortTable[dated]{
	"name":      ByText("name", func(d *dated) string { return d.Name }),
	"age":       By("age", func(d *dated) int { return d.Age }),
	"createdat": ByTime("created_at", func(d *dated) time.Time { return d.At }),
}

var datedDefault = SortDefault{Key: "createdat", Descending: true}

func TestSortTable_Apply(t *testing.T) {
	t.Run("vacío aplica el orden por defecto", func(t *testing.T) {
		spec := NewSpecification(True[dated]())
		datedSorts.Apply(spec, "", false, datedDefault)

		assert.Equal(t, "created_at", spec.OrderKey.Field)
		assert.True(t, spec.Descending)
	})

	t.Run("clave conocida sin distinguir mayúsculas", func(t *testing.T) {
		spec := NewSpecification(True[dated]())
		datedSorts.Apply(spec, "  Name ", true, datedDefault)

		assert.Equal(t, "name", spec.OrderKey.Field)
		assert.True(t, spec.Descending)
	})

	t.Run("clave desconocida se ignora", func(t *testing.T) {
		spec := NewSpecification(True[dated]())
		datedSorts.Apply(spec, "color", true, datedDefault)

		assert.False(t, spec.HasOrder())
	})
}

func TestComparators(t *testing.T) {
	now := time.Now()
	a := &dated{Name: "alpha", Age: 3, At: now}
	b := &dated{Name: "Beta", Age: 1, At: now.Add(time.Hour)}

	assert.Negative(t, datedSorts["name"].Compare(a, b))
	assert.Positive(t, datedSorts["age"].Compare(a, b))
	assert.Negative(t, datedSorts["createdat"].Compare(a, b))
	assert.Zero(t, datedSorts["age"].Compare(a, a))
}
