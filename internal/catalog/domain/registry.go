package domain

import (
	"reflect"

	sharedEvents "github.com/kast7n/PurrfectMatchPublic-sub003/shared/events"
)

// Las constantes de los tipos de evento se definen aquí, como valores string.
const (
	PetCreated = "pet.created"
	PetAdopted = "pet.adopted"
	PetDeleted = "pet.deleted"
)

const PetTopic = "pet"

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		PetCreated: {
			Type:  reflect.TypeOf(sharedEvents.PetSnapshot{}),
			Topic: PetTopic,
		},
		PetAdopted: {
			Type:  reflect.TypeOf(sharedEvents.PetSnapshot{}),
			Topic: PetTopic,
		},
		PetDeleted: {
			Type:  reflect.TypeOf(sharedEvents.AggregateRef{}),
			Topic: PetTopic,
		},
	}
}
