package trigger

import (
	"context"
	"fmt"
)

// Subscriber receives triggered events. It is the only thing a Client ever
// calls: inline closures and class-based handlers both satisfy it.
//
// The returned value is discarded by Trigger; it is only visible to code that
// calls Receive directly. A returned error aborts the rest of the dispatch.
type Subscriber interface {
	Receive(ctx context.Context, evt *Event) (any, error)
}

// SubscriberFunc adapts a function to the Subscriber interface.
//
// Func values are not comparable in Go, so Subscribe stores a SubscriberFunc
// wrapped in an *InlineSubscriber and returns that wrapper.
type SubscriberFunc func(ctx context.Context, evt *Event) (any, error)

// Receive calls f.
func (f SubscriberFunc) Receive(ctx context.Context, evt *Event) (any, error) {
	return f(ctx, evt)
}

// InlineSubscriber is a closure-backed Subscriber with pointer identity, so
// it can be compared against the results of SubscribersFor.
type InlineSubscriber struct {
	fn SubscriberFunc
}

// NewInlineSubscriber wraps fn.
func NewInlineSubscriber(fn SubscriberFunc) *InlineSubscriber {
	return &InlineSubscriber{fn: fn}
}

// Receive calls the wrapped closure and returns its result.
func (s *InlineSubscriber) Receive(ctx context.Context, evt *Event) (any, error) {
	return s.fn(ctx, evt)
}

func (s *InlineSubscriber) valid() bool {
	return s != nil && s.fn != nil
}

// Performer is the instance side of a class-based handler: a value bound to
// one event that does its work in Perform.
type Performer interface {
	Perform(ctx context.Context) (any, error)
}

// Base is embedded by class-based handlers. It holds the bound event and
// provides a Perform that fails with ErrNotImplemented, so a handler that
// forgets to declare its own Perform fails loudly.
//
//	type GreetInFrench struct {
//	    trigger.Base
//	}
//
//	func (g *GreetInFrench) Perform(ctx context.Context) (any, error) {
//	    return "Bonjour, " + nameField.From(g.Event()), nil
//	}
type Base struct {
	event *Event
}

// NewBase returns a Base bound to evt.
func NewBase(evt *Event) Base {
	return Base{event: evt}
}

// Bind attaches evt. For uses it to bind freshly allocated handlers.
func (b *Base) Bind(evt *Event) {
	b.event = evt
}

// Event returns the bound event.
func (b *Base) Event() *Event {
	return b.event
}

// Get returns the bound event's payload value for key, or nil.
func (b *Base) Get(key string) any {
	if b.event == nil {
		return nil
	}
	return b.event.Get(key)
}

// Perform fails with ErrNotImplemented.
func (b *Base) Perform(context.Context) (any, error) {
	return nil, ErrNotImplemented
}

// ClassSubscriber is a Subscriber that builds a fresh Performer for every
// event it receives and returns the Performer's result.
type ClassSubscriber struct {
	name  string
	newFn func(evt *Event) Performer
}

// Class returns a ClassSubscriber whose instances are built by newFn. The
// name labels the handler in logs, metrics and spans; an empty name falls
// back to "class".
//
//	audit := trigger.Class("audit", func(evt *trigger.Event) trigger.Performer {
//	    return &AuditEntry{Base: trigger.NewBase(evt), sink: sink}
//	})
func Class(name string, newFn func(evt *Event) Performer) *ClassSubscriber {
	if name == "" {
		name = "class"
	}
	return &ClassSubscriber{name: name, newFn: newFn}
}

// For returns a ClassSubscriber for handler type T. Each Receive allocates a
// new T, binds the event through its embedded Base, and calls Perform.
//
//	subscriber := trigger.For[GreetInFrench]()
func For[T any, P interface {
	*T
	Performer
	Bind(*Event)
}]() *ClassSubscriber {
	return &ClassSubscriber{
		name: fmt.Sprintf("%T", P(nil)),
		newFn: func(evt *Event) Performer {
			p := P(new(T))
			p.Bind(evt)
			return p
		},
	}
}

// Receive builds an instance bound to evt, runs Perform, and returns its
// result.
func (c *ClassSubscriber) Receive(ctx context.Context, evt *Event) (any, error) {
	instance := c.newFn(evt)
	if instance == nil {
		return nil, ErrInvalidSubscriber
	}
	return instance.Perform(ctx)
}

// ReceiveRaw is Receive for callers holding a raw name instead of an event.
// An *Event passed as raw is used as is and data is ignored.
func (c *ClassSubscriber) ReceiveRaw(ctx context.Context, raw any, data any) (any, error) {
	return c.Receive(ctx, WrapEvent(raw, data))
}

// String returns the handler type name.
func (c *ClassSubscriber) String() string {
	return c.name
}

func (c *ClassSubscriber) valid() bool {
	return c != nil && c.newFn != nil
}

// Field declares a typed accessor for one payload key. Declaring fields next
// to a handler type documents what the handler reads from its event.
//
//	var nameField = trigger.Field[string]("name")
//
//	name := nameField.From(evt)
type Field[T any] string

// Key returns the payload key.
func (f Field[T]) Key() string {
	return string(f)
}

// Lookup returns the value under the key if it is present and of type T.
func (f Field[T]) Lookup(evt *Event) (T, bool) {
	var zero T
	if evt == nil {
		return zero, false
	}
	v, ok := evt.Lookup(string(f))
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// From returns the value under the key, or T's zero value.
func (f Field[T]) From(evt *Event) T {
	v, _ := f.Lookup(evt)
	return v
}

// Receives declares untyped fields for keys, for handlers that only need
// pass-through access.
func Receives(keys ...string) []Field[any] {
	fields := make([]Field[any], len(keys))
	for i, k := range keys {
		fields[i] = Field[any](k)
	}
	return fields
}

// validator is implemented by the package's own Subscriber types so Subscribe
// can reject zero or nil-backed values.
type validator interface {
	valid() bool
}

// subscriberName returns a label for logs, metrics and spans.
func subscriberName(s Subscriber) string {
	if named, ok := s.(fmt.Stringer); ok {
		return named.String()
	}
	return fmt.Sprintf("%T", s)
}
