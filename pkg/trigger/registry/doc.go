// Package registry provides a thread-safe ordered multimap.
//
// Each key holds a list of values kept in insertion order. Reads return
// copies, so callers may iterate a result while other goroutines (or the
// iterating code itself) append new values.
//
//	r := registry.New[string, int]()
//	r.Append("greet", 1)
//	r.Append("greet", 2)
//	r.Get("greet") // [1 2]
package registry
