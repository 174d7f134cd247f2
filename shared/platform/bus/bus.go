package bus

import "context"

// Keyer da la clave de partición de un evento (el id del agregado), así los
// eventos de una misma mascota llegan en orden.
type Keyer interface {
	PartitionKey() string
}

// EventPublisher publica un evento ya serializable. El topic lo fija el adapter.
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// MessageHandler recibe cada mensaje consumido, con su clave y el payload crudo.
// Los errores se registran dentro: un mensaje malo no detiene al consumidor.
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}
