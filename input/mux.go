package input

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	ErrDuplicateRouter = errors.New("input: router already registered")
	ErrNilRouter       = errors.New("input: nil router")
)

// Mux holds the routers of every mounted component. The first router
// registered receives focus.
type Mux struct {
	routers map[string]*Router
	order   []string
	focused string
}

func NewMux() *Mux {
	return &Mux{routers: make(map[string]*Router)}
}

// Register mounts r under its ID.
func (m *Mux) Register(r *Router) error {
	if r == nil {
		return ErrNilRouter
	}
	if _, ok := m.routers[r.id]; ok {
		return ErrDuplicateRouter
	}
	m.routers[r.id] = r
	m.order = append(m.order, r.id)
	if m.focused == "" {
		m.focused = r.id
	}
	return nil
}

// Unregister removes the router with id. When it held focus, focus moves to
// the earliest remaining router.
func (m *Mux) Unregister(id string) {
	if _, ok := m.routers[id]; !ok {
		return
	}
	delete(m.routers, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.focused == id {
		m.focused = ""
		if len(m.order) > 0 {
			m.focused = m.order[0]
		}
	}
}

// Focus gives key focus to the router with id.
func (m *Mux) Focus(id string) bool {
	if _, ok := m.routers[id]; !ok {
		return false
	}
	m.focused = id
	return true
}

// Focused returns the ID of the focused router, or "" when none is mounted.
func (m *Mux) Focused() string { return m.focused }

func (m *Mux) Router(id string) (*Router, bool) {
	r, ok := m.routers[id]
	return r, ok
}

// Dispatch forwards msg to the focused router.
func (m *Mux) Dispatch(msg tea.KeyMsg) (tea.Cmd, bool) {
	r, ok := m.routers[m.focused]
	if !ok {
		return nil, false
	}
	return r.Dispatch(msg)
}

func (m *Mux) Len() int { return len(m.routers) }
