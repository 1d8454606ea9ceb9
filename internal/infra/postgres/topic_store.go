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

// TopicStore reads quiz-topic JSONB documents from Postgres.
type TopicStore struct {
	pool *pgxpool.Pool
}

func NewTopicStore(pool *pgxpool.Pool) *TopicStore {
	return &TopicStore{pool: pool}
}

func (s *TopicStore) GetTopic(ctx context.Context, topicID string) (domain.Topic, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM quiz_topics WHERE id=$1`, topicID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Topic{}, domain.ErrTopicNotFound
	}
	if err != nil {
		return domain.Topic{}, fmt.Errorf("load topic: %w", err)
	}
	var topic domain.Topic
	if err := json.Unmarshal(raw, &topic); err != nil {
		return domain.Topic{}, fmt.Errorf("unmarshal topic: %w", err)
	}
	return topic, nil
}

func (s *TopicStore) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM quiz_topics ORDER BY data->>'name'`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.Topic
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		var topic domain.Topic
		if err := json.Unmarshal(raw, &topic); err != nil {
			return nil, fmt.Errorf("unmarshal topic: %w", err)
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}
