package menu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var ErrNotTerminal = errors.New("input is not an interactive terminal")

const (
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	clearScreen    = "\x1b[H\x1b[2J"

	cursorMarker = "> "
	blankMarker  = "  "
)

type readResult struct {
	chunk []byte
	keys  []key
	err   error
}

// Terminal is a Session on a raw-mode TTY. Input is read one chunk at a time
// and only while NextEvent is waiting. Bytes of a chunk that follow the key
// the menu stopped on are kept and handed back by Remaining.
type Terminal struct {
	in  io.Reader
	out io.Writer

	fd       int
	oldState *term.State

	titleStyle     lipgloss.Style
	highlightStyle lipgloss.Style

	requests chan struct{}
	results  chan readResult
	reading  bool
	closed   bool

	chunk []byte
	keys  []key
	next  int

	closeOnce sync.Once
}

// OpenTerminal puts in into raw mode and takes over out with the alternate
// screen. Close restores both.
func OpenTerminal(in *os.File, out io.Writer) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}

	t := newTerminal(in, out)
	t.fd = fd
	t.oldState = oldState

	if _, err := io.WriteString(out, enterAltScreen+hideCursor); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("prepare screen: %w", err)
	}
	return t, nil
}

// StdioOpener opens the process terminal on stdin/stdout.
func StdioOpener() (Session, error) {
	return OpenTerminal(os.Stdin, os.Stdout)
}

func newTerminal(in io.Reader, out io.Writer) *Terminal {
	renderer := lipgloss.NewRenderer(out)

	t := &Terminal{
		in:             in,
		out:            out,
		fd:             -1,
		titleStyle:     renderer.NewStyle().Bold(true),
		highlightStyle: renderer.NewStyle().Reverse(true),
		requests:       make(chan struct{}, 1),
		results:        make(chan readResult, 1),
	}
	go t.readLoop()
	return t
}

func (t *Terminal) readLoop() {
	buf := make([]byte, 64)
	for range t.requests {
		n, err := t.in.Read(buf)
		chunk := append([]byte(nil), buf[:n]...)
		t.results <- readResult{chunk: chunk, keys: scanKeys(chunk), err: err}
	}
}

// Render redraws the whole menu: bold title on the first row, then one row
// per option with the highlighted one marked and reversed.
func (t *Terminal) Render(title string, state State) error {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(t.titleStyle.Render(title))
	b.WriteString("\r\n")

	for i, option := range state.Options {
		if i == state.Highlighted {
			b.WriteString(t.highlightStyle.Render(cursorMarker + option))
		} else {
			b.WriteString(blankMarker + option)
		}
		b.WriteString("\r\n")
	}

	_, err := io.WriteString(t.out, b.String())
	return err
}

func (t *Terminal) NextEvent(ctx context.Context) (Event, error) {
	for t.next >= len(t.keys) {
		if t.closed {
			return EventIgnore, errors.New("terminal is closed")
		}
		if err := ctx.Err(); err != nil {
			return EventIgnore, err
		}

		if !t.reading {
			t.requests <- struct{}{}
			t.reading = true
		}

		select {
		case <-ctx.Done():
			return EventIgnore, ctx.Err()
		case res := <-t.results:
			t.reading = false
			t.chunk, t.keys, t.next = res.chunk, res.keys, 0
			if len(t.keys) == 0 && res.err != nil {
				if errors.Is(res.err, io.EOF) {
					return EventIgnore, fmt.Errorf("read terminal input: %w", io.ErrUnexpectedEOF)
				}
				return EventIgnore, fmt.Errorf("read terminal input: %w", res.err)
			}
		}
	}

	k := t.keys[t.next]
	t.next++
	return k.event, nil
}

// Remaining returns the input that was read but not consumed as events, with
// raw-mode carriage returns turned back into newlines. It stays valid after
// Close.
func (t *Terminal) Remaining() []byte {
	if t.next >= len(t.keys) {
		return nil
	}
	start := 0
	if t.next > 0 {
		start = t.keys[t.next-1].end
	}

	rest := bytes.ReplaceAll(t.chunk[start:], []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(rest, []byte("\r"), []byte("\n"))
}

// Close leaves the alternate screen and restores the terminal mode that was
// active before OpenTerminal. Safe to call more than once.
func (t *Terminal) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.closed = true
		close(t.requests)
		_, werr := io.WriteString(t.out, showCursor+leaveAltScreen)
		if t.oldState != nil {
			err = term.Restore(t.fd, t.oldState)
		}
		if err == nil {
			err = werr
		}
	})
	return err
}

// key is one decoded event and the offset just past its bytes in the chunk.
type key struct {
	event Event
	end   int
}

// scanKeys turns a chunk of raw terminal input into keys. Arrow keys come
// as CSI (ESC [ A) or SS3 (ESC O A) sequences; CSI parameters such as the
// modifier in ESC [ 1 ; 5 A are skipped. CR LF is a single confirm.
func scanKeys(b []byte) []key {
	keys := make([]key, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == 0x1b && i+1 < len(b) && b[i+1] == '[':
			j := i + 2
			for j < len(b) && b[j] >= 0x20 && b[j] <= 0x3f {
				j++
			}
			if j >= len(b) {
				keys = append(keys, key{EventIgnore, j})
				i = j
				continue
			}
			keys = append(keys, key{arrowEvent(b[j]), j + 1})
			i = j + 1
		case c == 0x1b && i+2 < len(b) && b[i+1] == 'O':
			keys = append(keys, key{arrowEvent(b[i+2]), i + 3})
			i += 3
		case c == '\r' && i+1 < len(b) && b[i+1] == '\n':
			keys = append(keys, key{EventConfirm, i + 2})
			i += 2
		case c == '\r' || c == '\n':
			keys = append(keys, key{EventConfirm, i + 1})
			i++
		case c == 0x03 || c == 0x04: // Ctrl-C, Ctrl-D
			keys = append(keys, key{EventInterrupt, i + 1})
			i++
		default:
			keys = append(keys, key{EventIgnore, i + 1})
			i++
		}
	}
	return keys
}

func arrowEvent(final byte) Event {
	switch final {
	case 'A':
		return EventMoveUp
	case 'B':
		return EventMoveDown
	default:
		return EventIgnore
	}
}

var (
	_ Session   = (*Terminal)(nil)
	_ Remainder = (*Terminal)(nil)
)
