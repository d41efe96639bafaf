package service

import (
	"context"
	"encoding/json"
	"time"

	"medprep/internal/cache"
	"medprep/internal/domain"
)

// ResultHandoffService is the one-shot slot that carries a completed
// assessment's answer map to the results view. Take consumes the slot
// atomically; a second Take for the same id misses.
type ResultHandoffService interface {
	Put(ctx context.Context, id string, answers map[string]int) error
	Take(ctx context.Context, id string) (map[string]int, error)
}

type resultHandoffService struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewResultHandoffService creates a new instance of resultHandoffService
func NewResultHandoffService(c domain.Cache, ttl time.Duration) ResultHandoffService {
	return &resultHandoffService{cache: c, ttl: ttl}
}

func handoffKey(id string) string {
	return cache.GenerateCacheKey("assessment", "results", id)
}

func (s *resultHandoffService) Put(ctx context.Context, id string, answers map[string]int) error {
	encoded, err := json.Marshal(answers)
	if err != nil {
		return domain.NewInternalError("failed to encode assessment answers", err)
	}
	if err := s.cache.Set(ctx, handoffKey(id), string(encoded), s.ttl); err != nil {
		return domain.NewStorageError("failed to store assessment results", err)
	}
	return nil
}

func (s *resultHandoffService) Take(ctx context.Context, id string) (map[string]int, error) {
	val, err := s.cache.GetDel(ctx, handoffKey(id))
	if err != nil {
		if err == domain.ErrCacheMiss {
			return nil, domain.NewNotFoundError("no pending results for id " + id)
		}
		return nil, domain.NewStorageError("failed to read assessment results", err)
	}

	var answers map[string]int
	if err := json.Unmarshal([]byte(val), &answers); err != nil {
		return nil, domain.NewInternalError("failed to decode assessment answers", err)
	}
	return answers, nil
}
