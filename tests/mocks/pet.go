package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/db/memory"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
)

// InMemoryPetRepo es un repositorio de escritura de mascotas sobre memory.Store.
// Store sirve también como SpecRepository para los listados.
type InMemoryPetRepo struct {
	Store     *memory.Store[catalogDomain.Pet]
	Outbox    []sharedDomain.OutboxEvent
	FailWrite error
	mu        sync.Mutex
}

var _ catalogDomain.PetRepository = (*InMemoryPetRepo)(nil)

func NewInMemoryPetRepo(pets ...*catalogDomain.Pet) *InMemoryPetRepo {
	return &InMemoryPetRepo{Store: memory.NewStore("pet", pets...)}
}

func (r *InMemoryPetRepo) Create(ctx context.Context, p *catalogDomain.Pet, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrite != nil {
		return r.FailWrite
	}
	cp := *p
	r.Store.Add(&cp)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryPetRepo) Update(ctx context.Context, p *catalogDomain.Pet, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrite != nil {
		return r.FailWrite
	}
	items := r.Store.Snapshot()
	for i, existing := range items {
		if existing.ID == p.ID {
			cp := *p
			items[i] = &cp
			r.Store.Replace(items)
			r.Outbox = append(r.Outbox, evt)
			return nil
		}
	}
	return catalogDomain.ErrPetNotFound
}

func (r *InMemoryPetRepo) GetByID(ctx context.Context, id uuid.UUID) (*catalogDomain.Pet, error) {
	for _, p := range r.Store.Snapshot() {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, catalogDomain.ErrPetNotFound
}

// EventTypes devuelve los tipos de evento registrados en el outbox, en orden.
func (r *InMemoryPetRepo) EventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Outbox))
	for _, e := range r.Outbox {
		out = append(out, e.EventType)
	}
	return out
}
