package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophfav/internal/common"
	"github.com/dmitrijs2005/gophfav/internal/dbx"
	"github.com/dmitrijs2005/gophfav/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresRepository stores users in the users table (see migrations).
// Favourites live in a TEXT[] column and are read back as JSON so that no
// driver-specific array scanning is needed.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, password_hash)
         VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrDuplicateUser
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if user.Favourites == nil {
		user.Favourites = []string{}
	}
	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, password_hash, to_json(favourites), created_at FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	var favourites []byte
	err := r.db.QueryRowContext(ctx, query, userName).Scan(&user.ID, &user.UserName, &user.PasswordHash, &favourites, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if user.Favourites, err = decodeFavourites(favourites); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) GetFavourites(ctx context.Context, userID string) ([]string, error) {
	query :=
		`SELECT to_json(favourites) FROM users
		 WHERE id = $1
		 `

	if !validID(userID) {
		return nil, common.ErrorNotFound
	}
	return r.queryFavourites(ctx, query, userID)
}

func (r *PostgresRepository) AddFavourite(ctx context.Context, userID, itemID string, limit int) ([]string, error) {
	query :=
		`UPDATE users
		 SET favourites = CASE WHEN $2 = ANY(favourites) THEN favourites ELSE array_append(favourites, $2) END
		 WHERE id = $1 AND ($2 = ANY(favourites) OR cardinality(favourites) < $3)
		 RETURNING to_json(favourites)
		 `

	if !validID(userID) {
		return nil, common.ErrorNotFound
	}

	favourites, err := r.queryFavourites(ctx, query, userID, itemID, limit)
	if !errors.Is(err, common.ErrorNotFound) {
		return favourites, err
	}

	// nothing matched: either the user is gone or the set is full
	exists, err := r.exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrFavouritesLimit
	}
	return nil, common.ErrorNotFound
}

func (r *PostgresRepository) RemoveFavourite(ctx context.Context, userID, itemID string) ([]string, error) {
	query :=
		`UPDATE users
		 SET favourites = array_remove(favourites, $2)
		 WHERE id = $1
		 RETURNING to_json(favourites)
		 `

	if !validID(userID) {
		return nil, common.ErrorNotFound
	}
	return r.queryFavourites(ctx, query, userID, itemID)
}

func (r *PostgresRepository) exists(ctx context.Context, userID string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) queryFavourites(ctx context.Context, query string, args ...any) ([]string, error) {
	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return decodeFavourites(raw)
}

// validID reports whether id can name a row. Ids come from signed tokens, so
// a token minted by another backend simply matches nothing.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func decodeFavourites(raw []byte) ([]string, error) {
	favourites := []string{}
	if len(raw) == 0 {
		return favourites, nil
	}
	if err := json.Unmarshal(raw, &favourites); err != nil {
		return nil, fmt.Errorf("db error: decoding favourites: %w", err)
	}
	if favourites == nil {
		favourites = []string{}
	}
	return favourites, nil
}
