// Package trigger provides in-process publish/subscribe with namespaced event
// names.
//
// # Overview
//
// A Client holds an ordered registry of subscribers keyed by event name.
// Trigger builds an Event and calls every matching subscriber synchronously,
// in registration order, on the caller's goroutine.
//
//	client := trigger.New()
//
//	client.SubscribeFunc("greet", func(ctx context.Context, evt *trigger.Event) (any, error) {
//	    fmt.Println("Hello,", evt.Get("name"))
//	    return nil, nil
//	})
//
//	client.Trigger(ctx, "greet", map[string]any{"name": "Chris"})
//
// # Event Names
//
// An event name is "name" or "name:namespace". Only the first ":" separates;
// an empty namespace ("greet:") is the same as none.
//
// Matching is asymmetric:
//
//   - "greet" reaches every greet subscriber, including namespaced ones
//   - "greet:spanish" reaches only subscribers registered as greet:spanish
//
// # Subscribers
//
// Anything with Receive(ctx, *Event) (any, error) is a Subscriber. Two forms
// are provided:
//
//   - inline: a SubscriberFunc, stored as an *InlineSubscriber
//   - class-based: a type embedding Base with a Perform method, registered
//     with For[T]() or Class(name, newFn); each event gets a fresh instance
//
//	type GreetInFrench struct {
//	    trigger.Base
//	}
//
//	func (g *GreetInFrench) Perform(ctx context.Context) (any, error) {
//	    return "Bonjour, " + nameField.From(g.Event()), nil
//	}
//
//	client.Subscribe("greet:french", trigger.For[GreetInFrench]())
//
// # Enable Gate
//
// Disable turns Trigger and Publish into silent no-ops. EnableWithin forces
// delivery on for the duration of a callback and restores the prior state
// afterwards, even on error or panic.
//
// # Publish
//
// Publish defaults to Trigger. Hosts change it either with
// WithPublishMiddleware or by embedding *Client and declaring their own
// Publish that calls c.Client.Publish.
//
// # Errors
//
// A subscriber error stops delivery and is returned unchanged from Trigger.
// ErrInvalidSubscriber and ErrNotImplemented are the package's own errors.
//
// # Observability
//
// WithLogger, WithMetrics and WithTracing enable slog logging and
// OpenTelemetry metrics and spans for every dispatch. All are off by default.
package trigger
