package trigger

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/randalmurphal/trigger/pkg/trigger/config"
)

// Event is a triggered event: a parsed name plus a data payload.
//
// Events are immutable once built. Data is shared read-only between every
// subscriber of a dispatch; a subscriber must not modify it.
type Event struct {
	id        string
	eventName EventName
	data      map[string]any
	timestamp time.Time
}

// NewEvent builds an event from a raw name and payload. The payload is copied
// if it is a map[string]any or a config.Config; anything else, nil included,
// becomes an empty map.
func NewEvent(raw string, data any) *Event {
	return &Event{
		id:        uuid.NewString(),
		eventName: NewEventName(raw),
		data:      normalizeData(data),
		timestamp: time.Now(),
	}
}

// WrapEvent returns v unchanged if it is already an *Event, ignoring data.
// Otherwise v is normalized with NameOf and a new event is built.
func WrapEvent(v any, data any) *Event {
	if evt, ok := v.(*Event); ok && evt != nil {
		return evt
	}
	return NewEvent(NameOf(v), data)
}

func normalizeData(data any) map[string]any {
	switch d := data.(type) {
	case map[string]any:
		if d == nil {
			return make(map[string]any)
		}
		return maps.Clone(d)
	case config.Config:
		return maps.Clone(d.Raw())
	default:
		return make(map[string]any)
	}
}

// ID returns a unique identifier for this event, used to correlate logs
// and spans of one dispatch.
func (e *Event) ID() string {
	return e.id
}

// EventName returns the parsed name.
func (e *Event) EventName() EventName {
	return e.eventName
}

// Name returns the base event name.
func (e *Event) Name() string {
	return e.eventName.Name()
}

// Namespace returns the namespace, or "" if there is none.
func (e *Event) Namespace() string {
	return e.eventName.Namespace()
}

// FullName returns the canonical "name[:namespace]" form.
func (e *Event) FullName() string {
	return e.eventName.FullName()
}

// Timestamp returns when the event was built.
func (e *Event) Timestamp() time.Time {
	return e.timestamp
}

// Data returns the payload. It is never nil. Callers must not modify it.
func (e *Event) Data() map[string]any {
	return e.data
}

// Get returns the payload value for key, or nil.
func (e *Event) Get(key string) any {
	return e.data[key]
}

// Lookup returns the payload value for key and whether it was present.
func (e *Event) Lookup(key string) (any, bool) {
	v, ok := e.data[key]
	return v, ok
}

// Values returns a typed read view over the payload.
//
//	name := evt.Values().String("name", "stranger")
func (e *Event) Values() config.Config {
	return config.New(e.data)
}
