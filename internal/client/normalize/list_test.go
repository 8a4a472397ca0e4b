package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrap_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantLen   int
		wantTotal float64
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2, 2},
		{"articles envelope", `{"articles":[{"id":1}],"meta":{"total":40,"page":1}}`, 1, 40},
		{"data envelope with pagination", `{"data":[{"id":1},{"id":2},{"id":3}],"pagination":{"total":3}}`, 3, 3},
		{"nested data", `{"data":{"threads":[{"id":1}],"total":9}}`, 1, 9},
		{"top level total", `{"users":[{"id":1}],"total":7}`, 1, 7},
		{"no list", `{"message":"ok"}`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Unwrap(decode(t, tt.doc))
			assert.Len(t, p.Items, tt.wantLen)
			assert.Equal(t, tt.wantTotal, p.Meta["total"])
		})
	}
}

func TestEntity(t *testing.T) {
	doc := decode(t, `{"article":{"id":5,"title":"x"}}`)
	got := Entity(doc, "article")
	assert.Equal(t, map[string]any{"id": 5.0, "title": "x"}, got)

	plain := decode(t, `{"id":5}`)
	assert.Equal(t, plain, Entity(plain, "article"))
}

func TestSlice(t *testing.T) {
	n := New(origin)
	items, meta := Slice(decode(t, `{"categories":["NBA",{"name":"WNBA","id":2}]}`), n.Category)
	require.Len(t, items, 2)
	assert.Equal(t, "NBA", items[0].Name)
	assert.Equal(t, "wnba", items[1].Slug)
	assert.Equal(t, 2.0, meta["total"])
}
