package trigger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/randalmurphal/trigger/pkg/trigger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nameField = trigger.Field[string]("name")

type greetSubscriber struct {
	trigger.Base
}

func (g *greetSubscriber) Perform(context.Context) (any, error) {
	return "Hello, " + nameField.From(g.Event()), nil
}

// unfinishedSubscriber relies on Base.Perform.
type unfinishedSubscriber struct {
	trigger.Base
}

// countingSubscriber records every instance Perform runs on.
type countingSubscriber struct {
	trigger.Base
}

var performedOn []*countingSubscriber

func (c *countingSubscriber) Perform(context.Context) (any, error) {
	performedOn = append(performedOn, c)
	return c.Event().FullName(), nil
}

func TestInlineSubscriber_ReturnsValue(t *testing.T) {
	sub := trigger.NewInlineSubscriber(func(_ context.Context, evt *trigger.Event) (any, error) {
		return "Hello, " + nameField.From(evt), nil
	})

	got, err := sub.Receive(context.Background(), trigger.NewEvent("greet", map[string]any{"name": "Chris"}))
	require.NoError(t, err)
	assert.Equal(t, "Hello, Chris", got)
}

func TestInlineSubscriber_NilEvent(t *testing.T) {
	sub := trigger.NewInlineSubscriber(func(context.Context, *trigger.Event) (any, error) {
		return "Hello", nil
	})

	got, err := sub.Receive(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)
}

func TestSubscriberFunc(t *testing.T) {
	var fn trigger.SubscriberFunc = func(context.Context, *trigger.Event) (any, error) {
		return 1, errors.New("boom")
	}

	got, err := fn.Receive(context.Background(), trigger.NewEvent("x", nil))
	assert.Equal(t, 1, got)
	assert.EqualError(t, err, "boom")
}

func TestFor_PerformReturnsResult(t *testing.T) {
	sub := trigger.For[greetSubscriber]()

	got, err := sub.Receive(context.Background(), trigger.NewEvent("greet", map[string]any{"name": "Chris"}))
	require.NoError(t, err)
	assert.Equal(t, "Hello, Chris", got)
}

func TestFor_NotImplemented(t *testing.T) {
	sub := trigger.For[unfinishedSubscriber]()

	got, err := sub.Receive(context.Background(), trigger.NewEvent("greet", nil))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, trigger.ErrNotImplemented)
}

func TestFor_FreshInstancePerEvent(t *testing.T) {
	performedOn = nil
	sub := trigger.For[countingSubscriber]()

	first, err := sub.Receive(context.Background(), trigger.NewEvent("a", nil))
	require.NoError(t, err)
	second, err := sub.Receive(context.Background(), trigger.NewEvent("b:ns", nil))
	require.NoError(t, err)

	assert.Equal(t, "a", first)
	assert.Equal(t, "b:ns", second)
	require.Len(t, performedOn, 2)
	assert.NotSame(t, performedOn[0], performedOn[1])
}

func TestFor_String(t *testing.T) {
	assert.Equal(t, "*trigger_test.greetSubscriber", trigger.For[greetSubscriber]().String())
}

func TestClass_ConstructsWithEventThenPerforms(t *testing.T) {
	var steps []string
	var bound *trigger.Event

	sub := trigger.Class("steps", func(evt *trigger.Event) trigger.Performer {
		steps = append(steps, "construct")
		bound = evt
		return performerFunc(func(context.Context) (any, error) {
			steps = append(steps, "perform")
			return "done", nil
		})
	})

	evt := trigger.NewEvent("greet", nil)
	got, err := sub.Receive(context.Background(), evt)
	require.NoError(t, err)

	assert.Equal(t, "done", got)
	assert.Equal(t, []string{"construct", "perform"}, steps)
	assert.Same(t, evt, bound)
}

func TestClass_String(t *testing.T) {
	build := func(*trigger.Event) trigger.Performer { return performerFunc(nil) }

	assert.Equal(t, "audit", trigger.Class("audit", build).String())
	assert.Equal(t, "class", trigger.Class("", build).String())
}

func TestClass_NilInstance(t *testing.T) {
	sub := trigger.Class("empty", func(*trigger.Event) trigger.Performer { return nil })

	_, err := sub.Receive(context.Background(), trigger.NewEvent("greet", nil))
	assert.ErrorIs(t, err, trigger.ErrInvalidSubscriber)
}

func TestClass_ReceiveRaw(t *testing.T) {
	sub := trigger.For[greetSubscriber]()

	got, err := sub.ReceiveRaw(context.Background(), "greet", map[string]any{"name": "Chris"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Chris", got)

	evt := trigger.NewEvent("greet", map[string]any{"name": "Ana"})
	got, err = sub.ReceiveRaw(context.Background(), evt, map[string]any{"name": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Ana", got)
}

func TestBase(t *testing.T) {
	evt := trigger.NewEvent("greet", map[string]any{"name": "Chris"})
	b := trigger.NewBase(evt)

	assert.Same(t, evt, b.Event())
	assert.Equal(t, "Chris", b.Get("name"))

	var empty trigger.Base
	assert.Nil(t, empty.Get("name"))
	_, err := empty.Perform(context.Background())
	assert.ErrorIs(t, err, trigger.ErrNotImplemented)
}

func TestField(t *testing.T) {
	evt := trigger.NewEvent("order", map[string]any{"qty": 3, "name": "Chris"})

	qty := trigger.Field[int]("qty")
	assert.Equal(t, "qty", qty.Key())
	assert.Equal(t, 3, qty.From(evt))

	v, ok := trigger.Field[int]("name").Lookup(evt)
	assert.False(t, ok, "wrong type is not found")
	assert.Zero(t, v)

	_, ok = trigger.Field[string]("missing").Lookup(evt)
	assert.False(t, ok)

	assert.Equal(t, "", nameField.From(nil))
}

func TestReceives(t *testing.T) {
	evt := trigger.NewEvent("order", map[string]any{"qty": 3, "name": "Chris"})

	fields := trigger.Receives("qty", "name")
	require.Len(t, fields, 2)
	assert.Equal(t, 3, fields[0].From(evt))
	assert.Equal(t, "Chris", fields[1].From(evt))
}

type performerFunc func(context.Context) (any, error)

func (f performerFunc) Perform(ctx context.Context) (any, error) {
	return f(ctx)
}
