package trigger

import (
	"fmt"
	"strings"
)

// NamespaceSeparator splits an event name from its namespace.
const NamespaceSeparator = ":"

// EventName is a parsed event name: a base name and an optional namespace.
// The zero namespace ("") means the name has no namespace.
type EventName struct {
	name      string
	namespace string
}

// ParseName splits raw on the first separator. The left side is the name and
// the right side is the namespace. A missing or empty right side yields an
// empty namespace, so "greet" and "greet:" parse the same way. ParseName
// never fails.
func ParseName(raw string) (name, namespace string) {
	name, namespace, _ = strings.Cut(raw, NamespaceSeparator)
	return name, namespace
}

// NewEventName parses raw into an EventName.
func NewEventName(raw string) EventName {
	name, namespace := ParseName(raw)
	return EventName{name: name, namespace: namespace}
}

// Name returns the base name.
func (n EventName) Name() string {
	return n.name
}

// Namespace returns the namespace, or "" if there is none.
func (n EventName) Namespace() string {
	return n.namespace
}

// HasNamespace reports whether the name carries a namespace.
func (n EventName) HasNamespace() bool {
	return n.namespace != ""
}

// FullName renders the canonical "name" or "name:namespace" form.
// ParseName(n.FullName()) always yields n's name and namespace again.
func (n EventName) FullName() string {
	return FullName(n.name, n.namespace)
}

// String implements fmt.Stringer.
func (n EventName) String() string {
	return n.FullName()
}

// FullName joins name and namespace. An empty namespace yields name alone.
func FullName(name, namespace string) string {
	if namespace == "" {
		return name
	}
	return name + NamespaceSeparator + namespace
}

// NameOf normalizes anything name-like to its raw string form. Strings,
// EventName values and fmt.Stringer implementations all map to the text they
// print; any other value is formatted with fmt.Sprint. ClassSubscriber uses it
// to accept either a raw name or an event.
func NameOf(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case EventName:
		return n.FullName()
	case fmt.Stringer:
		return n.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(n)
	}
}
