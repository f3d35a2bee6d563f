package cli

import (
	"strings"

	"github.com/murmurapp/murmur/pkg/buffer"
)

// LogWriter implements io.Writer and captures log output for TUI display.
// It keeps the most recent lines in a ring and notifies via a channel.
type LogWriter struct {
	buf *buffer.Ring[string]
	ch  chan string
}

// NewLogWriter creates a log writer keeping the last maxLines lines.
func NewLogWriter(maxLines int) *LogWriter {
	return &LogWriter{
		buf: buffer.NewRing[string](maxLines),
		ch:  make(chan string, 100),
	}
}

// Write implements io.Writer. Multi-line input is split on newlines.
func (w *LogWriter) Write(p []byte) (n int, err error) {
	text := strings.TrimRight(string(p), "\n")
	for _, line := range strings.Split(text, "\n") {
		w.buf.Push(line)

		// Non-blocking send to channel
		select {
		case w.ch <- line:
		default:
		}
	}
	return len(p), nil
}

// Lines returns the buffered lines, oldest first.
func (w *LogWriter) Lines() []string {
	return w.buf.Snapshot()
}

// Channel returns the notification channel for new lines.
func (w *LogWriter) Channel() <-chan string {
	return w.ch
}
