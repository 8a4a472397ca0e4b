package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/courtside/internal/common"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSessionStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteSessionStore(openTestDB(t))

	u := &models.User{ID: "7", Username: "mj23", Email: "mj@example.com", IsAdmin: true}
	require.NoError(t, s.Save(ctx, "tok-1", u))

	token, got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, u, got)
}

func TestSessionStore_LoadEmpty(t *testing.T) {
	s := NewSQLiteSessionStore(openTestDB(t))

	token, u, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, u)
}

func TestSessionStore_UpdateTokenKeepsUser(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteSessionStore(openTestDB(t))

	require.NoError(t, s.Save(ctx, "old", &models.User{ID: "1", Username: "a"}))
	require.NoError(t, s.UpdateToken(ctx, "new"))

	token, u, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", token)
	require.NotNil(t, u)
	assert.Equal(t, "a", u.Username)
}

func TestSessionStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteSessionStore(openTestDB(t))

	require.NoError(t, s.Save(ctx, "tok", &models.User{ID: "1"}))
	require.NoError(t, s.Clear(ctx))

	token, u, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, u)
}

func TestSessionStore_CorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewSQLiteSessionStore(db)

	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, common.MetadataKeyToken, []byte("tok")))
	require.NoError(t, repo.Set(ctx, common.MetadataKeyUser, []byte("{not json")))

	_, _, err := s.Load(ctx)
	require.ErrorContains(t, err, "decode user snapshot")
}

func TestSessionStore_SaveOnClosedDB(t *testing.T) {
	db := openTestDB(t)
	s := NewSQLiteSessionStore(db)
	require.NoError(t, db.Close())

	err := s.Save(context.Background(), "tok", &models.User{ID: "1"})
	require.ErrorContains(t, err, "begin tx")
}
