package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/courtside/internal/client/models"
)

func TestTokenAndIdentity_LoginResponse(t *testing.T) {
	doc := decode(t, `{"token":"t1","user":{"id":1,"username":"a","is_admin":true}}`)

	assert.Equal(t, "t1", Token(doc))
	u, ok := New(origin).Identity(doc)
	assert.True(t, ok)
	assert.Equal(t, models.ID("1"), u.ID)
	assert.True(t, u.IsAdmin)
}

func TestTokenAndIdentity_Envelopes(t *testing.T) {
	n := New(origin)

	doc := decode(t, `{"data":{"access_token":"t2","user":{"id":"u2","username":"b"}}}`)
	assert.Equal(t, "t2", Token(doc))
	u, ok := n.Identity(doc)
	assert.True(t, ok)
	assert.Equal(t, "b", u.Username)

	bare := decode(t, `{"id":3,"username":"c"}`)
	assert.Empty(t, Token(bare))
	u, ok = n.Identity(bare)
	assert.True(t, ok)
	assert.Equal(t, models.ID("3"), u.ID)
}

func TestIdentity_Missing(t *testing.T) {
	n := New(origin)
	for _, doc := range []any{nil, "x", map[string]any{"token": "t"}, map[string]any{"user": map[string]any{}}} {
		_, ok := n.Identity(doc)
		assert.False(t, ok)
	}
}
