package preference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/lmskit/internal/platform/db"
	"github.com/jmoiron/sqlx"
)

var _ Store = (*Repository)(nil)

var ErrQueryFailed = errors.New("preference repository: query failed")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(conn *sqlx.DB) *Repository {
	return &Repository{db: conn}
}

const QueryPreferenceGet = `
SELECT value FROM user_preferences
WHERE user_id = $1 AND key = $2
LIMIT 1
`

func (r *Repository) Get(ctx context.Context, userID, key string) (string, error) {
	var value string
	if err := sqlx.GetContext(ctx, db.QuerierFromContext(ctx, r.db), &value, QueryPreferenceGet, userID, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: get %s for user %s: %v", ErrQueryFailed, key, userID, err)
	}
	return value, nil
}

const QueryPreferenceSet = `
INSERT INTO user_preferences (user_id, key, value)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value
`

func (r *Repository) Set(ctx context.Context, userID, key, value string) error {
	if _, err := db.QuerierFromContext(ctx, r.db).ExecContext(ctx, QueryPreferenceSet, userID, key, value); err != nil {
		return fmt.Errorf("%w: set %s for user %s: %v", ErrQueryFailed, key, userID, err)
	}
	return nil
}

const QueryPreferenceDelete = "DELETE FROM user_preferences WHERE user_id = $1 AND key = $2"

// Delete removes the preference. Deleting a missing key is not an error.
func (r *Repository) Delete(ctx context.Context, userID, key string) error {
	if _, err := db.QuerierFromContext(ctx, r.db).ExecContext(ctx, QueryPreferenceDelete, userID, key); err != nil {
		return fmt.Errorf("%w: delete %s for user %s: %v", ErrQueryFailed, key, userID, err)
	}
	return nil
}
