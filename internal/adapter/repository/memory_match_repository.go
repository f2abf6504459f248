package repository

import (
	"context"
	"time"

	"bizmatch/internal/domain/entity"
	"bizmatch/internal/domain/repository"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/utils"
)

type memoryMatchRepository struct {
	table *memoryTable[entity.MatchRecord]
}

func NewMemoryMatchRepository() repository.MatchRepository {
	return &memoryMatchRepository{
		table: newMemoryTable(func(m *entity.MatchRecord) *entity.MatchRecord {
			out := *m
			out.Reasons = copyStrings(m.Reasons)
			return &out
		}),
	}
}

func (r *memoryMatchRepository) Create(ctx context.Context, match *entity.MatchRecord) error {
	if match.ID == "" {
		match.ID = utils.NewID("match")
	}
	now := time.Now()
	match.CreatedAt = now
	match.UpdatedAt = now
	return r.table.insert(match.ID, match)
}

func (r *memoryMatchRepository) GetByID(ctx context.Context, id string) (*entity.MatchRecord, error) {
	match, ok := r.table.get(id)
	if !ok {
		return nil, errors.NotFound("Match", nil)
	}
	return match, nil
}

func (r *memoryMatchRepository) ListByRequesterID(ctx context.Context, requesterID string) ([]*entity.MatchRecord, error) {
	return r.table.filter(func(m *entity.MatchRecord) bool { return m.RequesterID == requesterID }), nil
}

func (r *memoryMatchRepository) Update(ctx context.Context, match *entity.MatchRecord) error {
	match.UpdatedAt = time.Now()
	if !r.table.replace(match.ID, match) {
		return errors.NotFound("Match", nil)
	}
	return nil
}
