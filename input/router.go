package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler reacts to a matched key.
type Handler func(msg tea.KeyMsg) tea.Cmd

// Interceptor sees every key before the bindings. It reports whether it
// consumed the key.
type Interceptor func(msg tea.KeyMsg) (tea.Cmd, bool)

type route struct {
	binding key.Binding
	handler Handler
}

// Router is the key dispatch table of one component instance.
type Router struct {
	id     string
	before []Interceptor
	routes []route
}

func NewRouter(id string) *Router {
	return &Router{id: id}
}

func (r *Router) ID() string { return r.id }

// Bind appends a route. Routes are tried in the order they were bound and the
// first enabled binding matching the key wins.
func (r *Router) Bind(b key.Binding, h Handler) {
	if h == nil {
		return
	}
	r.routes = append(r.routes, route{binding: b, handler: h})
}

// Intercept installs fn ahead of every binding.
func (r *Router) Intercept(fn Interceptor) {
	if fn == nil {
		return
	}
	r.before = append(r.before, fn)
}

// Dispatch runs the interceptors and then the first matching route.
func (r *Router) Dispatch(msg tea.KeyMsg) (tea.Cmd, bool) {
	for _, fn := range r.before {
		if cmd, ok := fn(msg); ok {
			return cmd, true
		}
	}
	for _, rt := range r.routes {
		if key.Matches(msg, rt.binding) {
			return rt.handler(msg), true
		}
	}
	return nil, false
}

// Bindings lists the bound keys, enabled or not, in bind order.
func (r *Router) Bindings() []key.Binding {
	out := make([]key.Binding, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, rt.binding)
	}
	return out
}

func (r *Router) Len() int { return len(r.routes) }
