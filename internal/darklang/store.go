package darklang

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ConfigStore reads and appends dark language configuration rows.
// Current returns a disabled zero Config when no row exists.
type ConfigStore interface {
	Current(ctx context.Context) (Config, error)
	Save(ctx context.Context, cfg Config) (Config, error)
}

var _ ConfigStore = (*Repository)(nil)

var ErrQueryFailed = errors.New("darklang repository: query failed")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(conn *sqlx.DB) *Repository {
	return &Repository{db: conn}
}

const QueryConfigCurrent = `
SELECT id, enabled, released_languages, changed_by, change_date
FROM darklang_config
ORDER BY change_date DESC, id DESC
LIMIT 1
`

func (r *Repository) Current(ctx context.Context) (Config, error) {
	var cfg Config
	if err := r.db.GetContext(ctx, &cfg, QueryConfigCurrent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("%w: current config: %v", ErrQueryFailed, err)
	}
	return cfg, nil
}

const QueryConfigSave = `
INSERT INTO darklang_config (enabled, released_languages, changed_by)
VALUES ($1, $2, $3)
RETURNING id, enabled, released_languages, changed_by, change_date
`

func (r *Repository) Save(ctx context.Context, cfg Config) (Config, error) {
	var saved Config
	if err := r.db.GetContext(ctx, &saved, QueryConfigSave, cfg.Enabled, cfg.ReleasedLanguages, cfg.ChangedBy); err != nil {
		return Config{}, fmt.Errorf("%w: save config by %s: %v", ErrQueryFailed, cfg.ChangedBy, err)
	}
	return saved, nil
}
