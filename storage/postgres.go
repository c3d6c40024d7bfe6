package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Supp140106/scribe/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

func (pgr *PostgresRepo) Close() {
	pgr.pool.Close()
}

func wrapErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
}

// UpsertUser records the identity the provider vouched for, keeping name and avatar fresh.
func (pgr *PostgresRepo) UpsertUser(ctx context.Context, user domain.User) error {
	_, err := pgr.pool.Exec(ctx, `
		INSERT INTO users(id, display_name, avatar_url) VALUES($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET display_name = EXCLUDED.display_name, avatar_url = EXCLUDED.avatar_url, updated_at = now()`,
		user.Id, user.DisplayName, user.AvatarURL)
	if err != nil {
		return wrapErr(err)
	}
	return nil
}

func (pgr *PostgresRepo) GetUserById(ctx context.Context, id string) (domain.User, error) {
	user := domain.User{Id: id}

	row := pgr.pool.QueryRow(ctx, "SELECT display_name, avatar_url FROM users WHERE id = $1", id)

	err := row.Scan(&user.DisplayName, &user.AvatarURL)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, wrapErr(err)
	}

	return user, nil
}

// RecordMatch writes every pairwise outcome of a finished game in one COPY.
func (pgr *PostgresRepo) RecordMatch(ctx context.Context, outcomes []domain.MatchOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	_, err := pgr.pool.CopyFrom(ctx,
		pgx.Identifier{"match_history"},
		[]string{"subject_user_id", "opponent_user_id", "opponent_name", "subject_score", "opponent_score", "result", "played_at", "room_id"},
		pgx.CopyFromSlice(len(outcomes), func(i int) ([]any, error) {
			o := outcomes[i]
			return []any{o.SubjectUserId, o.OpponentUserId, o.OpponentName, o.SubjectScore, o.OpponentScore, string(o.Result), o.Timestamp, o.RoomId}, nil
		}),
	)
	if err != nil {
		return wrapErr(err)
	}
	return nil
}

// ListMatchHistory returns the newest outcomes first.
func (pgr *PostgresRepo) ListMatchHistory(ctx context.Context, userId string, limit int) ([]domain.MatchOutcome, error) {
	rows, err := pgr.pool.Query(ctx, `
		SELECT subject_user_id, opponent_user_id, opponent_name, subject_score, opponent_score, result, played_at, room_id
		FROM match_history
		WHERE subject_user_id = $1
		ORDER BY played_at DESC, id DESC
		LIMIT $2`, userId, limit)
	if err != nil {
		return nil, wrapErr(err)
	}

	outcomes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MatchOutcome, error) {
		var o domain.MatchOutcome
		var result string
		err := row.Scan(&o.SubjectUserId, &o.OpponentUserId, &o.OpponentName, &o.SubjectScore, &o.OpponentScore, &result, &o.Timestamp, &o.RoomId)
		o.Result = domain.MatchResult(result)
		return o, err
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return outcomes, nil
}
