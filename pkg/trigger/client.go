package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/randalmurphal/trigger/pkg/trigger/observability"
	"github.com/randalmurphal/trigger/pkg/trigger/registry"
	"go.opentelemetry.io/otel/attribute"
)

// entry is one registration: a subscriber and the namespace it was
// registered under ("" for none).
type entry struct {
	namespace  string
	subscriber Subscriber
}

// Client owns a subscriber registry and dispatches events to it.
//
// Hosts either hold a *Client or embed one to gain Subscribe, Trigger and
// Publish. Each Client is independent; there is no package-level default.
//
// A Client is safe for concurrent use, but delivery order is only defined
// among subscriptions made before a Trigger call starts.
type Client struct {
	name        string
	subscribers *registry.Registry[string, entry]
	enabled     atomic.Bool

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	publish PublishFunc
}

// New creates an enabled Client with an empty registry.
func New(opts ...Option) *Client {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Client{
		name:        cfg.name,
		subscribers: registry.New[string, entry](),
		logger:      observability.EnrichLogger(cfg.logger, cfg.name),
		metrics:     cfg.resolveMetrics(),
		spans:       cfg.resolveSpans(),
	}
	c.enabled.Store(cfg.enabled)
	c.publish = ChainPublish(c.Trigger, cfg.middleware...)
	return c
}

// Name returns the label given with WithName.
func (c *Client) Name() string {
	return c.name
}

// SubscribeOption configures a single subscription.
type SubscribeOption func(*entry)

// InNamespace registers the subscriber under namespace, overriding any
// namespace in the event name. An empty namespace leaves the parsed one.
func InNamespace(namespace string) SubscribeOption {
	return func(e *entry) {
		if namespace != "" {
			e.namespace = namespace
		}
	}
}

// Subscribe registers sub for the event name, which may carry a namespace
// ("greet:spanish"). It returns the stored subscriber; a SubscriberFunc is
// stored as an *InlineSubscriber so the result can be compared by identity.
//
// A nil subscriber fails with ErrInvalidSubscriber.
func (c *Client) Subscribe(name string, sub Subscriber, opts ...SubscribeOption) (Subscriber, error) {
	if fn, ok := sub.(SubscriberFunc); ok {
		if fn == nil {
			return nil, ErrInvalidSubscriber
		}
		sub = NewInlineSubscriber(fn)
	}
	if sub == nil {
		return nil, ErrInvalidSubscriber
	}
	if v, ok := sub.(validator); ok && !v.valid() {
		return nil, ErrInvalidSubscriber
	}

	base, namespace := ParseName(name)
	e := entry{namespace: namespace, subscriber: sub}
	for _, opt := range opts {
		opt(&e)
	}

	c.subscribers.Append(base, e)

	observability.LogSubscribe(c.logger, base, e.namespace, subscriberName(sub))
	c.metrics.RecordSubscribe(context.Background(), base)
	return sub, nil
}

// SubscribeFunc registers fn as an inline subscriber and returns its wrapper.
func (c *Client) SubscribeFunc(name string, fn SubscriberFunc, opts ...SubscribeOption) (*InlineSubscriber, error) {
	if fn == nil {
		return nil, ErrInvalidSubscriber
	}
	inline := NewInlineSubscriber(fn)
	if _, err := c.Subscribe(name, inline, opts...); err != nil {
		return nil, err
	}
	return inline, nil
}

// MustSubscribe is Subscribe that panics on error. It suits package-level
// wiring where a nil handler is a programming mistake.
func (c *Client) MustSubscribe(name string, sub Subscriber, opts ...SubscribeOption) Subscriber {
	stored, err := c.Subscribe(name, sub, opts...)
	if err != nil {
		panic(fmt.Sprintf("trigger: subscribe %q: %v", name, err))
	}
	return stored
}

// SubscribersFor returns the subscribers that a trigger of name would reach,
// in registration order.
//
// A name without a namespace matches every subscriber of its base name,
// namespaced ones included. A name with a namespace matches only subscribers
// registered under exactly that namespace. Unknown names yield an empty
// slice.
func (c *Client) SubscribersFor(name string) []Subscriber {
	base, namespace := ParseName(name)
	entries := c.subscribers.Get(base)

	out := make([]Subscriber, 0, len(entries))
	for _, e := range entries {
		if namespace == "" || e.namespace == namespace {
			out = append(out, e.subscriber)
		}
	}
	return out
}

// Has reports whether a trigger of name would reach at least one
// subscriber. It follows the same namespace rule as SubscribersFor.
func (c *Client) Has(name string) bool {
	base, namespace := ParseName(name)
	if namespace == "" {
		return c.subscribers.Has(base)
	}
	return len(c.SubscribersFor(name)) > 0
}

// Count returns the number of registrations across all names.
func (c *Client) Count() int {
	return c.subscribers.Count()
}

// Names returns the base names that have subscribers, in first-subscribed
// order.
func (c *Client) Names() []string {
	return c.subscribers.Keys()
}

// BuildEvent constructs the event that Trigger delivers.
func (c *Client) BuildEvent(name string, data any) *Event {
	return NewEvent(name, data)
}

// Trigger delivers an event to every matching subscriber, synchronously and
// in registration order, on the caller's goroutine.
//
// When the client is disabled Trigger does nothing and returns nil. The first
// subscriber error is returned unchanged and stops delivery to the remaining
// subscribers; earlier subscribers are not rolled back. Panics are not
// recovered.
func (c *Client) Trigger(ctx context.Context, name string, data any) error {
	if !c.Enabled() {
		c.suppress(ctx, name)
		return nil
	}
	return c.dispatch(ctx, c.BuildEvent(name, data))
}

// Dispatch delivers an already built event. It honours the enable gate the
// same way Trigger does.
func (c *Client) Dispatch(ctx context.Context, evt *Event) error {
	if evt == nil {
		return nil
	}
	if !c.Enabled() {
		c.suppress(ctx, evt.FullName())
		return nil
	}
	return c.dispatch(ctx, evt)
}

// Publish is the public entry point for emitting events. By default it is
// exactly Trigger; middleware installed with WithPublishMiddleware runs
// around it.
func (c *Client) Publish(ctx context.Context, name string, data any) error {
	return c.publish(ctx, name, data)
}

// suppress records a trigger dropped by the enable gate. The span event lands
// on whatever span the caller has open.
func (c *Client) suppress(ctx context.Context, name string) {
	observability.LogSuppressed(c.logger, name)
	c.metrics.RecordSuppressed(ctx, name)
	c.spans.AddSpanEvent(ctx, "trigger.suppressed", attribute.String("event.name", name))
}

func (c *Client) dispatch(ctx context.Context, evt *Event) (dispatchErr error) {
	fullName := evt.FullName()
	subs := c.SubscribersFor(fullName)

	c.metrics.RecordTrigger(ctx, fullName, len(subs))
	observability.LogTrigger(c.logger, evt.ID(), fullName, len(subs))

	ctx, span := c.spans.StartDispatchSpan(ctx, fullName, evt.ID(), len(subs))
	defer func() {
		c.spans.EndSpanWithError(span, dispatchErr)
	}()

	done := observability.TimedOperation()
	for i, sub := range subs {
		if err := c.deliver(ctx, evt, i, sub); err != nil {
			observability.LogHandlerError(c.logger, evt.ID(), fullName, i, subscriberName(sub), err)
			c.spans.AddSpanEvent(ctx, "subscriber.failed",
				attribute.Int("handler.index", i),
				attribute.Int("handler.skipped", len(subs)-i-1),
			)
			return err
		}
	}

	observability.LogDelivered(c.logger, evt.ID(), fullName, len(subs), done())
	return nil
}

func (c *Client) deliver(ctx context.Context, evt *Event, index int, sub Subscriber) error {
	fullName := evt.FullName()
	ctx, span := c.spans.StartHandlerSpan(ctx, fullName, index, subscriberName(sub))

	start := time.Now()
	_, err := sub.Receive(ctx, evt)
	c.metrics.RecordHandler(ctx, fullName, time.Since(start), err)

	c.spans.EndSpanWithError(span, err)
	return err
}

// Enabled reports whether Trigger currently delivers events.
func (c *Client) Enabled() bool {
	return c.enabled.Load()
}

// Disabled reports whether Trigger currently drops events.
func (c *Client) Disabled() bool {
	return !c.enabled.Load()
}

// Enable turns delivery on.
func (c *Client) Enable() {
	c.setEnabled(true)
}

// Disable turns delivery off. Trigger and Publish become silent no-ops.
func (c *Client) Disable() {
	c.setEnabled(false)
}

// EnableWithin enables delivery, runs fn, then restores the state the client
// had before the call. The restore happens even if fn returns an error or
// panics, and regardless of any Enable or Disable calls made inside fn.
func (c *Client) EnableWithin(fn func() error) error {
	previous := c.enabled.Swap(true)
	if !previous {
		observability.LogStateChange(c.logger, true)
	}
	defer c.setEnabled(previous)

	if fn == nil {
		return nil
	}
	return fn()
}

func (c *Client) setEnabled(enabled bool) {
	if c.enabled.Swap(enabled) != enabled {
		observability.LogStateChange(c.logger, enabled)
	}
}
