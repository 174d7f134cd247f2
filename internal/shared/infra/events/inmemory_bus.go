package events

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/kast7n/PurrfectMatchPublic-sub003/shared/platform/bus"
)

// message es lo que recibe cada suscriptor: clave y payload serializado, como en Kafka.
type message struct {
	key     string
	payload []byte
}

// InMemoryEventBus implementa un bus de eventos para UN solo topic.
type InMemoryEventBus struct {
	subscribers []chan message
	mu          sync.RWMutex
	once        sync.Once
	closed      bool
	topic       string
}

// Verifica en tiempo de compilación que cumple la interfaz
var _ sharedBus.EventPublisher = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus crea un bus de eventos para un topic específico.
func NewInMemoryEventBus(topic string) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make([]chan message, 0),
		topic:       topic,
	}
}

func (b *InMemoryEventBus) Topic() string {
	return b.topic
}

// Publish envía un evento a todos los suscriptores de este bus.
// Un suscriptor con el buffer lleno pierde el mensaje.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message{payload: payload}
	if keyer, ok := event.(sharedBus.Keyer); ok {
		msg.key = keyer.PartitionKey()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, sub := range b.subscribers {
		select {
		case sub <- msg:
		default:
		}
	}
	return nil
}

// Subscribe entrega los mensajes del bus al handler hasta que se cancele ctx o se cierre el bus.
func (b *InMemoryEventBus) Subscribe(ctx context.Context, bufferSize int, handler sharedBus.MessageHandler) {
	b.mu.Lock()
	sub := make(chan message, bufferSize)
	b.subscribers = append(b.subscribers, sub)
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub:
				if !ok {
					return
				}
				handler.HandleMessage(ctx, msg.key, msg.payload)
			}
		}
	}()
}

// Close cierra los canales de los suscriptores.
func (b *InMemoryEventBus) Close() {
	b.once.Do(func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.closed = true
		for _, sub := range b.subscribers {
			close(sub)
		}
	})
}
