package events

import (
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
)

// NewJSONWriter returns a handler writing each event as one JSON line to w.
// Write failures are logged and the event is dropped.
func NewJSONWriter(w io.Writer, logger *zerolog.Logger) Handler {
	enc := json.NewEncoder(w)
	return func(ev Event) {
		if err := enc.Encode(ev); err != nil {
			logger.Warn().Err(err).Str("event_id", ev.ID.String()).Msg("failed to write event")
		}
	}
}
