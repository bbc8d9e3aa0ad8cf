package session

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/geometry"
	"github.com/vancomm/minefield/internal/mines"
)

var Log = logrus.New()

type Outcome int

const (
	Playing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// [Outcome] implements [encoding.TextMarshaler]
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Options selects the board of a new game. A non-empty Preset wins over the
// explicit dimensions; the preset "random" picks them at random.
type Options struct {
	Preset    string `schema:"preset"`
	Rows      int    `schema:"rows"`
	Cols      int    `schema:"cols"`
	MineCount int    `schema:"mines"`
}

func (o Options) configure(f *mines.Field) error {
	switch strings.ToLower(o.Preset) {
	case "":
		return f.Configure(o.Rows, o.Cols, o.MineCount)
	case "random":
		return f.ConfigureRandom()
	default:
		return f.ConfigureByPreset(o.Preset)
	}
}

// Session is one game: a field plus the win/loss policy the field leaves
// to its owner. Revealing a mine loses; revealing every safe cell wins.
// Moves after the game has ended are ignored.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu       sync.Mutex
	field    *mines.Field
	layout   geometry.Layout
	outcome  Outcome
	endedAt  time.Time
	lastSeen time.Time
}

// New configures and generates a field drawing from r.
func New(opts Options, r *rand.Rand) (*Session, error) {
	field := mines.NewField(r)
	if err := opts.configure(field); err != nil {
		return nil, err
	}
	if err := field.Generate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.New(),
		StartedAt: now,
		field:     field,
		layout:    geometry.Default,
		lastSeen:  now,
	}
	Log.WithFields(logrus.Fields{
		"session": s.ID,
		"seed":    field.Seed(),
	}).Debug("new session")
	return s, nil
}

// Field exposes the board for read-only inspection in tests and tools.
func (s *Session) Field() *mines.Field {
	return s.field
}

func (s *Session) Layout() geometry.Layout {
	return s.layout
}

func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

func (s *Session) Reveal(row, col int) {
	s.move(func(f *mines.Field) {
		f.Reveal(row, col)
		if f.CellDisplayState(row, col) == mines.RevealedMine {
			s.end(Lost)
		}
	})
}

func (s *Session) Flag(row, col int) {
	s.move(func(f *mines.Field) { f.Flag(row, col) })
}

func (s *Session) Question(row, col int) {
	s.move(func(f *mines.Field) { f.MarkQuestion(row, col) })
}

func (s *Session) Toggle(row, col int) {
	s.move(func(f *mines.Field) { f.Toggle(row, col) })
}

func (s *Session) Clear(row, col int) {
	s.move(func(f *mines.Field) { f.Clear(row, col) })
}

// Press handles a pointer press at canvas pixel (x, y): the primary button
// reveals, the secondary one cycles the marks. Presses outside the board do
// nothing.
func (s *Session) Press(button geometry.Button, x, y float64) {
	row, col, ok := s.layout.Cell(x, y, s.field.Rows, s.field.Cols)
	if !ok {
		return
	}
	switch button {
	case geometry.Primary:
		s.Reveal(row, col)
	case geometry.Secondary:
		s.Toggle(row, col)
	}
}

// Forfeit ends a running game as lost.
func (s *Session) Forfeit() {
	s.move(func(*mines.Field) { s.end(Lost) })
}

func (s *Session) move(fn func(f *mines.Field)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	if s.outcome != Playing {
		return
	}
	fn(s.field)
	if s.outcome == Playing && s.field.Revealed() == s.field.Size()-s.field.MineCount {
		s.end(Won)
	}
}

// end must be called with mu held.
func (s *Session) end(o Outcome) {
	s.outcome = o
	s.endedAt = time.Now().UTC()
	switch o {
	case Lost:
		s.field.RevealMines()
	case Won:
		for row := range s.field.Rows {
			for col := range s.field.Cols {
				if s.field.IsMine(row, col) {
					s.field.Flag(row, col)
				}
			}
		}
	}
	Log.WithFields(logrus.Fields{
		"session":  s.ID,
		"outcome":  o,
		"duration": s.endedAt.Sub(s.StartedAt).String(),
	}).Info("game over")
}

func (s *Session) idle(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

type View struct {
	SessionID string     `json:"session_id"`
	Grid      mines.Grid `json:"grid"`
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	MineCount int        `json:"mine_count"`
	Flags     int        `json:"flags"`
	Outcome   Outcome    `json:"outcome"`
	TileSize  int        `json:"tile_size"`
	StartedAt int64      `json:"started_at"`
	EndedAt   *int64     `json:"ended_at,omitempty"`
}

func (s *Session) View() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	var endedAt *int64
	if !s.endedAt.IsZero() {
		e := s.endedAt.UnixMilli()
		endedAt = &e
	}
	return &View{
		SessionID: s.ID.String(),
		Grid:      s.field.Display(),
		Rows:      s.field.Rows,
		Cols:      s.field.Cols,
		MineCount: s.field.MineCount,
		Flags:     s.field.Flags(),
		Outcome:   s.outcome,
		TileSize:  s.layout.TileSize(s.field.Rows, s.field.Cols),
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
}

func (s *Session) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf(
		"%s %s flags %d/%d\n%s",
		s.field.Seed(), s.outcome, s.field.Flags(), s.field.MineCount,
		s.field.Display().ToString(s.field.Cols),
	)
}
