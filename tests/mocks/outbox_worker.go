package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	"github.com/stretchr/testify/mock"
)

// MockOutboxRepository simula el repo de outbox
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]sharedDomain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher simula un publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockQueryLogRepository simula el almacén analítico
type MockQueryLogRepository struct {
	mock.Mock
}

func (m *MockQueryLogRepository) LogBatch(ctx context.Context, entries []sharedDomain.QueryLogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockQueryLogRepository) GetEntityStats(ctx context.Context, start, end time.Time) ([]sharedDomain.EntityQueryStats, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]sharedDomain.EntityQueryStats), args.Error(1)
}

var _ sharedDomain.QueryLogRepository = (*MockQueryLogRepository)(nil)
