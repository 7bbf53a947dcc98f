// Package menu implements a single-choice arrow-key selection menu.
//
// The selection logic is a small state machine over a highlighted index and
// is driven through the Screen interface, so it runs the same against a real
// terminal (see Terminal) and against scripted input in tests.
package menu

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrEmptyOptions = errors.New("menu has no options")
	ErrInterrupted  = errors.New("menu interrupted")
)

// Event is a decoded user input.
type Event int

const (
	EventIgnore Event = iota
	EventMoveUp
	EventMoveDown
	EventConfirm
	EventInterrupt
)

func (e Event) String() string {
	switch e {
	case EventMoveUp:
		return "up"
	case EventMoveDown:
		return "down"
	case EventConfirm:
		return "confirm"
	case EventInterrupt:
		return "interrupt"
	default:
		return "ignore"
	}
}

// Renderer draws the full menu for the given state.
type Renderer interface {
	Render(title string, state State) error
}

// InputSource blocks until the next input event arrives or ctx is done.
type InputSource interface {
	NextEvent(ctx context.Context) (Event, error)
}

type Screen interface {
	Renderer
	InputSource
}

// Session is a Screen that holds the terminal until closed.
type Session interface {
	Screen
	Close() error
}

// Remainder is implemented by sessions that may read input past the key that
// ended the menu. Remaining returns those bytes so the caller can still use
// them.
type Remainder interface {
	Remaining() []byte
}

// Opener acquires a Session. Menu.Run calls it only after the options have
// been validated.
type Opener func() (Session, error)

type Menu struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Menu {
	return &Menu{logger: logger}
}

// Run acquires a session, lets the user pick one of options, and releases
// the session on every return path, including panics.
func (m *Menu) Run(ctx context.Context, open Opener, title string, options []string) (index int, err error) {
	state, err := NewState(options)
	if err != nil {
		return -1, err
	}

	session, err := open()
	if err != nil {
		return -1, fmt.Errorf("open menu session: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			m.logger.Error("Failed to release menu session", zap.Error(cerr))
			if err == nil {
				index, err = -1, fmt.Errorf("release menu session: %w", cerr)
			}
		}
	}()

	return m.loop(ctx, session, title, state)
}

// Select runs the menu on an already acquired screen.
func (m *Menu) Select(ctx context.Context, screen Screen, title string, options []string) (int, error) {
	state, err := NewState(options)
	if err != nil {
		return -1, err
	}
	return m.loop(ctx, screen, title, state)
}

func (m *Menu) loop(ctx context.Context, screen Screen, title string, state State) (int, error) {
	for {
		if err := screen.Render(title, state); err != nil {
			return -1, fmt.Errorf("render menu: %w", err)
		}

		event, err := screen.NextEvent(ctx)
		if err != nil {
			return -1, err
		}

		m.logger.Debug("Menu input",
			zap.Stringer("event", event),
			zap.Int("highlighted", state.Highlighted))

		if event == EventInterrupt {
			return -1, ErrInterrupted
		}
		if state.Apply(event) {
			m.logger.Info("Menu option confirmed",
				zap.Int("index", state.Highlighted),
				zap.String("label", state.Options[state.Highlighted]))
			return state.Highlighted, nil
		}
	}
}

// SelectItem runs the menu over items, labelling each with label, and
// returns the index of the confirmed item.
func SelectItem[T any](ctx context.Context, m *Menu, open Opener, title string, items []T, label func(T) string) (int, error) {
	options := make([]string, len(items))
	for i, item := range items {
		options[i] = label(item)
	}
	return m.Run(ctx, open, title, options)
}
