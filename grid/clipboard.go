package grid

import "github.com/atotto/clipboard"

// Clipboard is the host clipboard. Write failures are logged and never change
// grid state.
type Clipboard interface {
	WriteText(s string) error
}

// SystemClipboard uses the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }
