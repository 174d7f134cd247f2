package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type ref struct {
	ID string `json:"id"`
}

func TestUnmarshalAndHandle(t *testing.T) {
	tests := []struct {
		name    string
		data    json.RawMessage
		handled bool
		wantID  string
	}{
		{"payload válido", json.RawMessage(`{"id":"abc"}`), true, "abc"},
		{"json roto", json.RawMessage(`{"id":`), false, ""},
		{"sin datos", nil, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			ok := UnmarshalAndHandle(zap.NewNop(), "pet.deleted", tt.data, func(r ref) { got = r.ID })
			assert.Equal(t, tt.handled, ok)
			assert.Equal(t, tt.wantID, got)
		})
	}
}
