package clipboard

import (
	"errors"
	"io"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// ErrUnavailable is returned when no clipboard mechanism is usable.
var ErrUnavailable = errors.New("clipboard unavailable")

// Clipboard writes text to a clipboard.
type Clipboard interface {
	Copy(text string) error
}

// System writes to the OS clipboard. When OSC52 is enabled, terminals
// without a native clipboard tool (for example over SSH) receive the
// text as an OSC52 escape sequence instead.
type System struct {
	osc52 bool
	out   *termenv.Output
}

// NewSystem returns a system clipboard. out receives OSC52 sequences and
// is usually os.Stdout.
func NewSystem(out io.Writer, osc52 bool) *System {
	return &System{osc52: osc52, out: termenv.NewOutput(out)}
}

// Copy writes text to the clipboard.
func (s *System) Copy(text string) error {
	if !clipboard.Unsupported {
		err := clipboard.WriteAll(text)
		if err == nil || !s.osc52 {
			return err
		}
	}
	if !s.osc52 {
		return ErrUnavailable
	}
	s.out.Copy(text)
	return nil
}

// Name describes the sink for logs and traces.
func (s *System) Name() string {
	if s.osc52 {
		return "system+osc52"
	}
	return "system"
}

// Memory records copies. It is safe for concurrent use because clipboard
// writes run off the update loop.
type Memory struct {
	mu     sync.Mutex
	writes []string
	err    error
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory { return &Memory{} }

// FailWith makes subsequent copies fail with err.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Copy records text, or returns the configured failure.
func (m *Memory) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.writes = append(m.writes, text)
	return nil
}

// Writes returns every recorded copy in order.
func (m *Memory) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}

// Last returns the most recent copy.
func (m *Memory) Last() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return "", false
	}
	return m.writes[len(m.writes)-1], true
}

// Name describes the sink for logs and traces.
func (m *Memory) Name() string { return "memory" }
