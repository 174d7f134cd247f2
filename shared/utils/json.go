package utils

import (
	"encoding/json"

	"go.uber.org/zap"
)

// UnmarshalAndHandle decodifica el payload de un evento como T y se lo pasa al
// handler. Un payload que no encaja se registra y se descarta (devuelve false).
func UnmarshalAndHandle[T any](log *zap.Logger, eventType string, data json.RawMessage, handler func(T)) bool {
	if len(data) == 0 {
		log.Warn("Event without data", zap.String("type", eventType))
		return false
	}
	var evt T
	if err := json.Unmarshal(data, &evt); err != nil {
		log.Warn("Failed to unmarshal event data", zap.String("type", eventType), zap.Error(err))
		return false
	}
	handler(evt)
	return true
}
