package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/courtside/internal/common"
	"github.com/dmitrijs2005/courtside/internal/dbx"
)

// SessionStore persists the session token and the user snapshot.
type SessionStore interface {
	// Load returns the persisted token and user. A missing token yields "".
	// A snapshot that cannot be decoded is reported as an error.
	Load(ctx context.Context) (token string, user *models.User, err error)
	// Save writes token and user together or not at all.
	Save(ctx context.Context, token string, user *models.User) error
	UpdateToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

func (s *SQLiteSessionStore) Load(ctx context.Context) (string, *models.User, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	rawToken, err := repo.Get(ctx, common.MetadataKeyToken)
	if err != nil {
		return "", nil, err
	}
	rawUser, err := repo.Get(ctx, common.MetadataKeyUser)
	if err != nil {
		return "", nil, err
	}

	var user *models.User
	if len(rawUser) > 0 {
		user = &models.User{}
		if err := json.Unmarshal(rawUser, user); err != nil {
			return "", nil, fmt.Errorf("decode user snapshot: %w", err)
		}
	}
	return string(rawToken), user, nil
}

func (s *SQLiteSessionStore) Save(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.MetadataKeyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.MetadataKeyUser, data)
	})
}

func (s *SQLiteSessionStore) UpdateToken(ctx context.Context, token string) error {
	return metadata.NewSQLiteRepository(s.db).Set(ctx, common.MetadataKeyToken, []byte(token))
}

func (s *SQLiteSessionStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, common.MetadataKeyToken, common.MetadataKeyUser)
}
