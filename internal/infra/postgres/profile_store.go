package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"millionaire-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ProfileStore reads and writes player-profile JSONB documents in Postgres.
type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

func (s *ProfileStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM profiles WHERE user_id=$1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	var profile domain.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	if profile.Jokers == nil {
		profile.Jokers = make(map[domain.JokerType]int)
	}
	return &profile, nil
}

func (s *ProfileStore) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, data) VALUES ($1, $2::jsonb)
		 ON CONFLICT (user_id) DO UPDATE SET data=EXCLUDED.data`,
		profile.UserID, raw)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *ProfileStore) ListPlayers(ctx context.Context) ([]*domain.Profile, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM profiles WHERE data->>'role'=$1`, string(domain.RoleStudent))
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []*domain.Profile
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		var profile domain.Profile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
		players = append(players, &profile)
	}
	return players, rows.Err()
}
