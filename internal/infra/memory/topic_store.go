package memory

import (
	"context"
	"sort"
	"sync"

	"millionaire-quiz-service/internal/domain"
)

// TopicStore is an in-memory implementation of app.TopicRepository.
type TopicStore struct {
	mu     sync.RWMutex
	topics map[string]domain.Topic
}

func NewTopicStore(topics map[string]domain.Topic) *TopicStore {
	if topics == nil {
		topics = make(map[string]domain.Topic)
	}
	return &TopicStore{topics: topics}
}

func (s *TopicStore) GetTopic(_ context.Context, topicID string) (domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	topic, ok := s.topics[topicID]
	if !ok {
		return domain.Topic{}, domain.ErrTopicNotFound
	}
	return topic, nil
}

func (s *TopicStore) ListTopics(_ context.Context) ([]domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	topics := make([]domain.Topic, 0, len(s.topics))
	for _, topic := range s.topics {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

// PutTopic adds or replaces a topic (tests/demo seeding).
func (s *TopicStore) PutTopic(topic domain.Topic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[topic.ID] = topic
}
