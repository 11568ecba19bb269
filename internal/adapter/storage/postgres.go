package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
)

var _ port.ProfileStorage = (*ProfilesRepository)(nil)

type sqldb interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Close() error
}

// ProfilesRepository persists session profiles in PostgreSQL, so the
// assistant survives process restarts when a database is configured.
type ProfilesRepository struct {
	sqldb sqldb
}

func NewProfilesRepository(ctx context.Context, dsn string) (ProfilesRepository, error) {
	const op = "ProfilesRepository"
	log := slog.With("op", op)

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return ProfilesRepository{}, fmt.Errorf("%s: invalid dsn: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, _ := sql.Open("pgx", connStr)

	r := ProfilesRepository{db}
	if err := db.PingContext(ctx); err != nil {
		return ProfilesRepository{}, fmt.Errorf(
			"%s: database is unavailable: %w", op, err,
		)
	}
	log.Info("database is available")
	return r, nil
}

func (r ProfilesRepository) Profile(
	ctx context.Context, session string,
) (domain.Profile, error) {
	const op = "ProfilesRepository.Profile"

	if err := ctx.Err(); err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT name, is_new_user, conversation_count
		FROM chat_sessions
		WHERE session_id = $1;`

	var p domain.Profile
	err := r.sqldb.QueryRowContext(ctx, query, session).Scan(
		&p.Name, &p.IsNewUser, &p.ConversationCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewProfile(), nil
		}
		return domain.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProfilesRepository) SaveProfile(
	ctx context.Context, session string, p domain.Profile,
) error {
	const op = "ProfilesRepository.SaveProfile"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO chat_sessions (
			session_id, name, is_new_user, conversation_count, updated_at
		)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (session_id) DO UPDATE SET
			name = EXCLUDED.name,
			is_new_user = EXCLUDED.is_new_user,
			conversation_count = EXCLUDED.conversation_count,
			updated_at = now();`

	_, err := r.sqldb.ExecContext(
		ctx, query, session, p.Name, p.IsNewUser, p.ConversationCount,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (r ProfilesRepository) ResetProfile(
	ctx context.Context, session string,
) error {
	const op = "ProfilesRepository.ResetProfile"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM chat_sessions WHERE session_id = $1;`
	if _, err := r.sqldb.ExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r ProfilesRepository) Close() {
	const op = "ProfilesRepository.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")
	if err := r.sqldb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}
