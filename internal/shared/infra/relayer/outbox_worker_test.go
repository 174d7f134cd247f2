package relayer

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
	sharedEvents "github.com/kast7n/PurrfectMatchPublic-sub003/shared/events"
	sharedBus "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/bus"
	"github.com/kast7n/PurrfectMatchPublic-sub003/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestOutboxWorker_ProcessBatch_Success(t *testing.T) {
	// ARRANGE
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	eventID := uuid.New()
	petID := uuid.New()
	testEvent := sharedDomain.OutboxEvent{
		ID:          eventID,
		AggregateID: petID.String(),
		EventType:   catalogDomain.PetCreated,
		Payload:     map[string]interface{}{"id": petID.String(), "name": "Rex"},
	}

	registry := map[string]sharedEvents.EventMetadata{
		catalogDomain.PetCreated: {
			Type:  reflect.TypeOf(sharedEvents.PetSnapshot{}),
			Topic: catalogDomain.PetTopic,
		},
	}

	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{testEvent}, nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e sharedEvents.Envelope) bool {
		var snap sharedEvents.PetSnapshot
		if err := json.Unmarshal(e.Data, &snap); err != nil {
			return false
		}
		return e.Type == catalogDomain.PetCreated && e.PartitionKey() == petID.String() && snap.Name == "Rex"
	})).Return(nil).Once()
	repo.On("MarkOutboxProcessed", mock.Anything, eventID).Return(nil).Once()

	worker := NewOutboxWorker(repo, publisher, registry, 0, 10, zap.NewNop())

	// ACT
	published := worker.ProcessBatch(context.Background())

	// ASSERT
	assert.Equal(t, 1, published)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOutboxWorker_ProcessBatch_PublisherFails(t *testing.T) {
	// ARRANGE
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	testEvent := sharedDomain.OutboxEvent{ID: uuid.New(), EventType: catalogDomain.PetDeleted, Payload: map[string]interface{}{"id": "x"}}
	registry := catalogDomain.NewEventRegistry()

	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{testEvent}, nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("kafka is down")).Once()

	worker := NewOutboxWorker(repo, publisher, registry, 0, 10, zap.NewNop())

	// ACT
	worker.ProcessBatch(context.Background())

	// ASSERT
	publisher.AssertCalled(t, "Publish", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkOutboxProcessed", mock.Anything, mock.Anything)
}

func TestOutboxWorker_ProcessBatch_UnknownEventType(t *testing.T) {
	// ARRANGE
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	testEvent := sharedDomain.OutboxEvent{ID: uuid.New(), EventType: "unregistered.event", Payload: map[string]interface{}{}}
	registry := make(map[string]sharedEvents.EventMetadata)

	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{testEvent}, nil).Once()

	worker := NewOutboxWorker(repo, publisher, registry, 0, 10, zap.NewNop())

	// ACT
	worker.ProcessBatch(context.Background())

	// ASSERT
	repo.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkOutboxProcessed", mock.Anything, mock.Anything)
}

func TestOutboxWorker_ProcessBatch_FetchFails(t *testing.T) {
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	repo.On("FetchPendingOutbox", mock.Anything, 5).Return([]sharedDomain.OutboxEvent(nil), errors.New("db down")).Once()

	worker := NewOutboxWorker(repo, publisher, catalogDomain.NewEventRegistry(), 0, 5, zap.NewNop())
	worker.ProcessBatch(context.Background())

	repo.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	assert.Empty(t, publisher.Calls)
}

func TestOutboxWorker_ProcessBatch_StopsAtFirstPublishFailure(t *testing.T) {
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	petID := uuid.New().String()
	created := sharedDomain.NewOutboxEvent(catalogDomain.PetTopic, petID, catalogDomain.PetCreated, map[string]interface{}{"id": petID, "name": "Rex"})
	adopted := sharedDomain.NewOutboxEvent(catalogDomain.PetTopic, petID, catalogDomain.PetAdopted, map[string]interface{}{"id": petID, "isAdopted": true})

	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{created, adopted}, nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("kafka is down")).Once()

	worker := NewOutboxWorker(repo, publisher, catalogDomain.NewEventRegistry(), 0, 10, zap.NewNop())

	published := worker.ProcessBatch(context.Background())

	assert.Zero(t, published)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
	repo.AssertNotCalled(t, "MarkOutboxProcessed", mock.Anything, mock.Anything)
}

func TestOutboxWorker_ProcessBatch_SkipsInvalidEventAndContinues(t *testing.T) {
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	bad := sharedDomain.NewOutboxEvent(catalogDomain.PetTopic, "x", catalogDomain.PetCreated, map[string]interface{}{"id": 42})
	good := sharedDomain.NewOutboxEvent(catalogDomain.PetTopic, "y", catalogDomain.PetDeleted, map[string]interface{}{"id": "y"})

	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{bad, good}, nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e sharedEvents.Envelope) bool {
		return e.Type == catalogDomain.PetDeleted && e.PartitionKey() == "y"
	})).Return(nil).Once()
	repo.On("MarkOutboxProcessed", mock.Anything, good.ID).Return(nil).Once()

	worker := NewOutboxWorker(repo, publisher, catalogDomain.NewEventRegistry(), 0, 10, zap.NewNop())

	assert.Equal(t, 1, worker.ProcessBatch(context.Background()))
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

// Verificación estática de que los mocks cumplen las interfaces.
var _ sharedDomain.OutboxRepository = (*mocks.MockOutboxRepository)(nil)
var _ sharedBus.EventPublisher = (*mocks.MockPublisher)(nil)
