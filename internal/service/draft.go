package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kitchenbuddy/backend/internal/importer"
)

const draftTTL = 24 * time.Hour

// ImportDraft is an imported recipe draft held in Redis until the user
// confirms or discards it. Nothing is persisted to the database.
type ImportDraft struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	importer.RecipeDraft
}

// DraftService stores import drafts in Redis with a bounded lifetime.
type DraftService struct {
	redis *redis.Client
}

func NewDraftService(client *redis.Client) *DraftService {
	return &DraftService{redis: client}
}

func draftKey(id string) string {
	return fmt.Sprintf("recipe:import:draft:%s", id)
}

// SaveDraft assigns the draft an id and stores it for 24 hours.
func (s *DraftService) SaveDraft(ctx context.Context, draft *importer.RecipeDraft) (*ImportDraft, error) {
	stored := &ImportDraft{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now(),
		RecipeDraft: *draft,
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(stored.ID), data, draftTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to save draft to Redis: %w", err)
	}

	return stored, nil
}

// GetDraft retrieves a stored draft by id.
func (s *DraftService) GetDraft(ctx context.Context, id string) (*ImportDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft ImportDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// DeleteDraft removes a stored draft.
func (s *DraftService) DeleteDraft(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}
