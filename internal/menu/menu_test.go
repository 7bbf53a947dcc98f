package menu

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedScreen replays events and records every frame it was asked to draw.
type scriptedScreen struct {
	events []Event
	frames []State
	closed int
	err    error
}

func (s *scriptedScreen) Render(_ string, state State) error {
	s.frames = append(s.frames, State{Options: state.Options, Highlighted: state.Highlighted})
	return nil
}

func (s *scriptedScreen) NextEvent(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return EventIgnore, err
	}
	if len(s.events) == 0 {
		if s.err != nil {
			return EventIgnore, s.err
		}
		return EventIgnore, errors.New("script exhausted")
	}
	e := s.events[0]
	s.events = s.events[1:]
	return e, nil
}

func (s *scriptedScreen) Close() error {
	s.closed++
	return nil
}

func opener(s *scriptedScreen) Opener {
	return func() (Session, error) { return s, nil }
}

func repeat(e Event, n int) []Event {
	out := make([]Event, n)
	for i := range out {
		out[i] = e
	}
	return out
}

var spools = []string{"PLA (Black)", "PETG (Clear)", "TPU (Red)", "ASA (Grey)"}

func TestSelect_ConfirmImmediately(t *testing.T) {
	screen := &scriptedScreen{events: []Event{EventConfirm}}

	idx, err := New(zap.NewNop()).Select(context.Background(), screen, "Pick", spools)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	require.Len(t, screen.frames, 1)
	assert.Equal(t, 0, screen.frames[0].Highlighted, "first frame is drawn before any input")
}

func TestSelect_Navigation(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   int
	}{
		{"up at top stays at top", append(repeat(EventMoveUp, 5), EventConfirm), 0},
		{"down twice", []Event{EventMoveDown, EventMoveDown, EventConfirm}, 2},
		{"down past bottom clamps", append(repeat(EventMoveDown, 10), EventConfirm), len(spools) - 1},
		{"bottom then up", append(repeat(EventMoveDown, 10), EventMoveUp, EventConfirm), len(spools) - 2},
		{"other keys ignored", []Event{EventMoveDown, EventIgnore, EventIgnore, EventConfirm}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := &scriptedScreen{events: tt.events}

			idx, err := New(zap.NewNop()).Select(context.Background(), screen, "Pick", spools)
			require.NoError(t, err)
			assert.Equal(t, tt.want, idx)
			assert.Len(t, screen.frames, len(tt.events), "one redraw per input including ignored ones")
		})
	}
}

func TestSelect_HighlightAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 1; n <= 6; n++ {
		options := make([]string, n)
		for i := range options {
			options[i] = string(rune('a' + i))
		}

		events := make([]Event, 0, 201)
		for i := 0; i < 200; i++ {
			if rng.Intn(2) == 0 {
				events = append(events, EventMoveUp)
			} else {
				events = append(events, EventMoveDown)
			}
		}
		events = append(events, EventConfirm)

		screen := &scriptedScreen{events: events}
		idx, err := New(zap.NewNop()).Select(context.Background(), screen, "Pick", options)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, n)

		for _, frame := range screen.frames {
			assert.GreaterOrEqual(t, frame.Highlighted, 0)
			assert.Less(t, frame.Highlighted, n)
		}
	}
}

func TestSelect_SingleOption(t *testing.T) {
	screen := &scriptedScreen{events: []Event{EventMoveDown, EventMoveUp, EventMoveDown, EventConfirm}}

	idx, err := New(zap.NewNop()).Select(context.Background(), screen, "Pick", []string{"only"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestSelect_EmptyOptions(t *testing.T) {
	screen := &scriptedScreen{events: []Event{EventConfirm}}

	idx, err := New(zap.NewNop()).Select(context.Background(), screen, "Pick", nil)
	assert.ErrorIs(t, err, ErrEmptyOptions)
	assert.Equal(t, -1, idx)
	assert.Empty(t, screen.frames)
}

func TestSelect_Interrupt(t *testing.T) {
	screen := &scriptedScreen{events: []Event{EventMoveDown, EventInterrupt}}

	idx, err := New(zap.NewNop()).Select(context.Background(), screen, "Pick", spools)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Equal(t, -1, idx)
}

func TestSelect_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	screen := &scriptedScreen{events: []Event{EventConfirm}}
	_, err := New(zap.NewNop()).Select(ctx, screen, "Pick", spools)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ReleasesSession(t *testing.T) {
	readErr := errors.New("tty gone")

	tests := []struct {
		name    string
		screen  *scriptedScreen
		wantErr error
		wantIdx int
	}{
		{"confirmed", &scriptedScreen{events: []Event{EventMoveDown, EventConfirm}}, nil, 1},
		{"interrupted", &scriptedScreen{events: []Event{EventInterrupt}}, ErrInterrupted, -1},
		{"input error", &scriptedScreen{err: readErr}, readErr, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := New(zap.NewNop()).Run(context.Background(), opener(tt.screen), "Pick", spools)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantIdx, idx)
			assert.Equal(t, 1, tt.screen.closed)
		})
	}
}

func TestRun_EmptyOptionsNeverOpens(t *testing.T) {
	opened := false
	open := func() (Session, error) {
		opened = true
		return &scriptedScreen{}, nil
	}

	_, err := New(zap.NewNop()).Run(context.Background(), open, "Pick", []string{})
	assert.ErrorIs(t, err, ErrEmptyOptions)
	assert.False(t, opened)
}

func TestRun_OpenFails(t *testing.T) {
	open := func() (Session, error) { return nil, ErrNotTerminal }

	_, err := New(zap.NewNop()).Run(context.Background(), open, "Pick", spools)
	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestSelectItem_Labels(t *testing.T) {
	type spool struct {
		kind  string
		grams int
	}
	items := []spool{{"PLA", 1000}, {"PETG", 750}}
	screen := &scriptedScreen{events: []Event{EventMoveDown, EventConfirm}}

	idx, err := SelectItem(context.Background(), New(zap.NewNop()), opener(screen), "Pick", items,
		func(s spool) string { return s.kind })
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []string{"PLA", "PETG"}, screen.frames[0].Options)
}

func TestState_Apply(t *testing.T) {
	state, err := NewState([]string{"a", "b", "c"})
	require.NoError(t, err)

	assert.False(t, state.Apply(EventMoveUp))
	assert.Equal(t, 0, state.Highlighted)

	assert.False(t, state.Apply(EventMoveDown))
	assert.False(t, state.Apply(EventMoveDown))
	assert.False(t, state.Apply(EventMoveDown))
	assert.Equal(t, 2, state.Highlighted)

	assert.False(t, state.Apply(EventIgnore))
	assert.Equal(t, 2, state.Highlighted)

	assert.True(t, state.Apply(EventConfirm))
	assert.Equal(t, 2, state.Highlighted)

	_, err = NewState(nil)
	assert.ErrorIs(t, err, ErrEmptyOptions)
}
