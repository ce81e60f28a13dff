package grid

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Window is a half-open range [Start, End) of display positions.
type Window struct {
	Start, End int
}

func (w Window) Len() int { return w.End - w.Start }

func (w Window) Contains(pos int) bool { return pos >= w.Start && pos < w.End }

type windowData interface {
	RowCount() int
}

// pageMsg continues the page chain at start. It is dropped when gen is stale
// or the chain already moved past start.
type pageMsg struct {
	gen   uint64
	start int
}

// Virtualizer tracks how many rows are loaded and which of them are
// materialized. Rows load in pages, strictly in order, one tea.Cmd per page;
// the materialized window is a block-aligned cluster around the scroll
// offset, clamped to the loaded rows.
type Virtualizer struct {
	data windowData
	log  *slog.Logger

	enabled         bool
	pageSize        int
	rowsInBlock     int
	blocksInCluster int

	gen     uint64
	loaded  int
	running bool

	offset int
	height int
	// target is a position awaiting load, -1 when none.
	target int

	win       Window
	listeners []func(Window)
}

func newVirtualizer(data windowData, log *slog.Logger, enabled bool, pageSize int) *Virtualizer {
	return &Virtualizer{
		data:            data,
		log:             log,
		enabled:         enabled,
		pageSize:        pageSize,
		rowsInBlock:     defaultRowsInBlock,
		blocksInCluster: defaultBlocksInCluster,
		target:          -1,
	}
}

// Subscribe registers fn for window changes. Listeners run in registration
// order.
func (v *Virtualizer) Subscribe(fn func(Window)) {
	v.listeners = append(v.listeners, fn)
}

func (v *Virtualizer) Window() Window { return v.win }
func (v *Virtualizer) Loaded() int { return v.loaded }
func (v *Virtualizer) Offset() int { return v.offset }
func (v *Virtualizer) Height() int { return v.height }

// Loading reports whether a page step is scheduled.
func (v *Virtualizer) Loading() bool { return v.running }

// Start begins a full render. Pending steps of an earlier chain become no-ops.
// The first page is materialized before Start returns; the returned command
// loads the next one.
func (v *Virtualizer) Start() tea.Cmd {
	v.gen++
	v.loaded = 0
	v.offset = 0
	v.target = -1
	v.running = false
	v.win = Window{}

	n := v.data.RowCount()
	if !v.enabled {
		v.loaded = n
		v.log.Debug("dataAppended", "rows", n)
		v.refresh(true)
		return nil
	}
	v.loaded = min(v.pageSize, n)
	v.log.Debug("dataAppended", "rows", v.loaded)
	v.refresh(true)
	return v.next()
}

// Extend picks up rows appended to the data model.
func (v *Virtualizer) Extend() tea.Cmd {
	if !v.enabled {
		v.loaded = v.data.RowCount()
		v.refresh(false)
		return nil
	}
	if v.running {
		return nil
	}
	return v.next()
}

// Stop abandons the chain.
func (v *Virtualizer) Stop() {
	v.gen++
	v.running = false
}

func (v *Virtualizer) next() tea.Cmd {
	if v.loaded >= v.data.RowCount() {
		v.running = false
		return nil
	}
	v.running = true
	msg := pageMsg{gen: v.gen, start: v.loaded}
	return func() tea.Msg { return msg }
}

func (v *Virtualizer) handlePage(msg pageMsg) tea.Cmd {
	if msg.gen != v.gen || msg.start != v.loaded {
		return nil
	}
	n := min(v.pageSize, v.data.RowCount()-v.loaded)
	if n <= 0 {
		v.running = false
		return nil
	}
	v.loaded += n
	v.log.Debug("dataAppended", "rows", n, "loaded", v.loaded)
	if v.target >= 0 && v.target < v.loaded {
		v.reveal(v.target)
		v.target = -1
	}
	v.refresh(false)
	return v.next()
}

// SetHeight sets the number of body lines on screen.
func (v *Virtualizer) SetHeight(h int) {
	v.height = max(h, 0)
	v.rowsInBlock = max(defaultRowsInBlock, v.height)
	v.offset = v.clampOffset(v.offset)
	v.refresh(false)
}

// ScrollTo brings pos on screen. A position past the loaded rows is
// remembered and revealed when its page arrives.
func (v *Virtualizer) ScrollTo(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos >= v.loaded {
		if pos < v.data.RowCount() {
			v.target = pos
		}
		return
	}
	v.target = -1
	v.reveal(pos)
	v.refresh(false)
}

// ScrollBy moves the offset by delta lines.
func (v *Virtualizer) ScrollBy(delta int) {
	v.offset = v.clampOffset(v.offset + delta)
	v.refresh(false)
}

// Invalidate rebuilds the window even when its bounds did not move, for
// example after the display order changed.
func (v *Virtualizer) Invalidate() {
	v.refresh(true)
}

func (v *Virtualizer) reveal(pos int) {
	h := max(v.height, 1)
	if pos < v.offset {
		v.offset = pos
	} else if pos >= v.offset+h {
		v.offset = pos - h + 1
	}
	v.offset = v.clampOffset(v.offset)
}

func (v *Virtualizer) clampOffset(off int) int {
	hi := max(v.loaded-max(v.height, 1), 0)
	return min(max(off, 0), hi)
}

func (v *Virtualizer) compute() Window {
	if !v.enabled {
		return Window{Start: 0, End: v.loaded}
	}
	block := v.rowsInBlock
	start := max((v.offset/block)*block-block, 0)
	end := min(start+block*v.blocksInCluster, v.loaded)
	return Window{Start: start, End: end}
}

func (v *Virtualizer) refresh(force bool) {
	w := v.compute()
	if !force && w == v.win {
		return
	}
	v.win = w
	v.log.Debug("window changed", "start", w.Start, "end", w.End)
	for _, fn := range v.listeners {
		fn(w)
	}
}
