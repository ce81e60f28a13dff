// Package input routes key messages to the component instance that owns them.
//
// Every component builds its own Router of key bindings and registers it on a
// shared Mux. The Mux forwards a key message only to the focused router, so
// several components can bind the same keys without stepping on each other.
// A component unregisters its router on teardown.
package input
