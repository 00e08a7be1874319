package core

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/coder/quartz"
)

// Outcome describes the result of one placement request.
type Outcome struct {
	Placed   bool        // False when the shape did not fit; nothing changed
	Piece    Placed      // The committed piece when Placed is true
	Tiles    int         // Tiles occupied by the placement
	Clear    ClearResult // The clear wave that followed
	Points   int         // Tile points plus line bonus gained
	Spawned  bool        // A new wave was offered after this placement
	GameOver bool        // The oracle found no legal move afterwards
}

// Option configures a Session.
type Option func(*Session)

// WithSeed seeds the wave generator.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithClock sets the clock used to measure play time.
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithListener registers an event listener.
func WithListener(l Listener) Option {
	return func(s *Session) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

// Session owns one run of the puzzle: the board, the offered wave, the score
// and the lifecycle state. A placement is fully resolved (occupy, clear,
// score, respawn, game-over check) before the call returns.
//
// A Session is not safe for concurrent use.
type Session struct {
	cfg       Config
	board     *Board
	placer    *Placer
	lines     *LineClearer
	spawner   *Spawner
	score     *ScoreKeeper
	machine   *StateMachine
	offered   []Piece
	listeners []Listener

	rng   *rand.Rand
	clock quartz.Clock

	played    time.Duration // Play time banked before the current stretch
	playingAt time.Time     // Start of the current Playing stretch
}

// NewSession creates a session over the given shape catalog. When the
// configured initial state is Playing the first wave is offered immediately.
func NewSession(cfg Config, shapes []*Shape, opts ...Option) (*Session, error) {
	if len(shapes) == 0 {
		return nil, ErrEmptyCatalog
	}

	cfg = cfg.normalized()
	s := &Session{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}

	s.board = NewBoard(cfg.Columns, cfg.Rows)
	s.placer = NewPlacer(s.board)
	s.lines = NewLineClearer()
	s.spawner = NewSpawner(shapes, s.rng)
	s.score = NewScoreKeeper(cfg.ScoreRules())
	s.machine = NewStateMachine(StateMenu, s.onStateChange)

	if cfg.InitialState == StatePlaying {
		s.machine.force(StatePlaying)
		s.beginRun()
	}
	return s, nil
}

// Config returns the normalized configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Board returns the board. Callers must treat it as read-only.
func (s *Session) Board() *Board {
	return s.board
}

// Subscribe registers an additional listener.
func (s *Session) Subscribe(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

func (s *Session) emit(e Event) {
	for _, l := range s.listeners {
		l(e)
	}
}

func (s *Session) onStateChange(from, to State) {
	now := s.clock.Now()
	if from == StatePlaying {
		s.played += now.Sub(s.playingAt)
	}
	if to == StatePlaying {
		s.playingAt = now
	}
	s.emit(StateChanged{From: from, To: to})
}

// --- Commands ---

// Start leaves the menu and begins a new run.
func (s *Session) Start() error {
	if err := s.machine.Start(); err != nil {
		return err
	}
	s.beginRun()
	return nil
}

// Pause suspends play.
func (s *Session) Pause() error {
	return s.machine.Pause()
}

// Resume continues a paused run.
func (s *Session) Resume() error {
	return s.machine.Resume()
}

// TogglePause flips between Playing and Paused.
func (s *Session) TogglePause() error {
	return s.machine.Toggle()
}

// ChangeState requests a transition. Menu to Playing starts a new run;
// Playing to GameOver ends the current one.
func (s *Session) ChangeState(to State) error {
	switch {
	case s.machine.Current() == StateMenu && to == StatePlaying:
		return s.Start()
	case to == StateGameOver:
		if err := s.machine.End(); err != nil {
			return err
		}
		s.emit(GameOver{FinalScore: s.score.Total()})
		return nil
	default:
		return s.machine.Transition(to)
	}
}

// Restart clears the board and score and re-enters Playing from any state.
func (s *Session) Restart() {
	s.machine.force(StatePlaying)
	s.beginRun()
}

func (s *Session) beginRun() {
	s.board.Clear()
	s.placer.Reset()
	s.score.Reset()
	s.offered = nil
	s.played = 0
	s.playingAt = s.clock.Now()
	s.emit(ScoreChanged{Total: 0, Streak: 0})
	s.spawnWave(s.cfg.ShapesPerWave)
	s.checkOracle()
}

// Place commits the offered piece in slot at anchor and resolves the
// resulting clear wave. A shape that does not fit is reported through
// Outcome.Placed, not as an error.
func (s *Session) Place(slot int, anchor Coord) (Outcome, error) {
	if err := s.requirePlaying("place"); err != nil {
		return Outcome{}, err
	}
	piece, err := s.slot(slot)
	if err != nil {
		return Outcome{}, err
	}
	u, ok := piece.(Unplaced)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: slot %d", ErrSlotConsumed, slot)
	}

	placed, ok := s.placer.Place(u, anchor)
	if !ok {
		return Outcome{}, nil
	}
	s.offered[slot] = placed

	out := Outcome{
		Placed: true,
		Piece:  placed,
		Tiles:  placed.Shape().Size(),
	}
	out.Points = s.score.OnPlacement(out.Tiles)

	out.Clear = s.lines.Resolve(s.board)
	if !out.Clear.Empty() {
		s.emit(LinesCleared{
			Cells:   out.Clear.Cells,
			Rows:    out.Clear.Rows,
			Columns: out.Clear.Columns,
		})
	}
	out.Points += s.score.OnWave(out.Clear.Lines())
	s.emit(ScoreChanged{Total: s.score.Total(), Streak: s.score.Streak()})

	if s.waveConsumed() {
		s.spawnWave(s.cfg.ShapesPerWave)
		out.Spawned = true
	}
	out.GameOver = s.checkOracle()
	return out, nil
}

// Remove withdraws the placed piece in slot back to the offer tray. Only
// cells the piece still owns are freed. The placement's tile points are
// taken back; any line bonus it triggered is kept.
func (s *Session) Remove(slot int) error {
	if err := s.requirePlaying("remove"); err != nil {
		return err
	}
	piece, err := s.slot(slot)
	if err != nil {
		return err
	}
	pl, ok := piece.(Placed)
	if !ok {
		return fmt.Errorf("%w: slot %d", ErrSlotNotPlaced, slot)
	}
	s.offered[slot] = s.placer.Remove(pl)
	s.score.OnRemoval(pl.Shape().Size())
	s.emit(ScoreChanged{Total: s.score.Total(), Streak: s.score.Streak()})
	s.checkOracle()
	return nil
}

// Spawn offers a new wave of count pieces. Fails while any offered piece is
// still waiting to be placed.
func (s *Session) Spawn(count int) ([]Unplaced, error) {
	if err := s.requirePlaying("spawn"); err != nil {
		return nil, err
	}
	if !s.waveConsumed() {
		return nil, ErrWaveInProgress
	}
	wave := s.spawnWave(clamp(count, MinShapesPerWave, MaxShapesPerWave))
	s.checkOracle()
	return wave, nil
}

func (s *Session) spawnWave(count int) []Unplaced {
	wave := s.spawner.Spawn(count)
	s.offered = make([]Piece, len(wave))
	for i, u := range wave {
		s.offered[i] = u
	}
	s.emit(WaveSpawned{Pieces: wave})
	return wave
}

// checkOracle ends the run when no offered piece fits anywhere. Returns
// true when the game ended.
func (s *Session) checkOracle() bool {
	if s.machine.Current() != StatePlaying || s.CanSpawn() {
		return false
	}
	if err := s.machine.End(); err != nil {
		return false
	}
	s.emit(GameOver{FinalScore: s.score.Total()})
	return true
}

func (s *Session) requirePlaying(action string) error {
	if st := s.machine.Current(); st != StatePlaying {
		return fmt.Errorf("%w: cannot %s while %s", ErrInvalidState, action, st)
	}
	return nil
}

func (s *Session) slot(i int) (Piece, error) {
	if i < 0 || i >= len(s.offered) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchSlot, i)
	}
	return s.offered[i], nil
}

func (s *Session) waveConsumed() bool {
	for _, p := range s.offered {
		if !IsPlaced(p) {
			return false
		}
	}
	return true
}

// --- Queries ---

// IsValidPosition reports whether c lies on the board.
func (s *Session) IsValidPosition(c Coord) bool {
	return s.board.IsValid(c)
}

// IsOccupied reports whether c is occupied. Off-board cells count as occupied.
func (s *Session) IsOccupied(c Coord) bool {
	return s.board.IsOccupied(c)
}

// CanPlace reports whether the unplaced piece in slot fits at anchor.
func (s *Session) CanPlace(slot int, anchor Coord) bool {
	p, err := s.slot(slot)
	if err != nil || IsPlaced(p) {
		return false
	}
	return s.placer.CanPlace(p.Shape(), anchor)
}

// Feedback classifies a hover over anchor with the piece in slot.
func (s *Session) Feedback(slot int, anchor Coord, previewing bool) Feedback {
	p, err := s.slot(slot)
	if err != nil || IsPlaced(p) {
		return FeedbackInvalid
	}
	return s.placer.Feedback(p.Shape(), anchor, previewing)
}

// OccupiedPositions returns the occupied cells in row-major order.
func (s *Session) OccupiedPositions() []Coord {
	return s.board.Occupied()
}

// Offered returns a copy of the current wave.
func (s *Session) Offered() []Piece {
	out := make([]Piece, len(s.offered))
	copy(out, s.offered)
	return out
}

// Pending returns the shapes of the offered pieces not yet placed.
func (s *Session) Pending() []*Shape {
	var out []*Shape
	for _, p := range s.offered {
		if !IsPlaced(p) {
			out = append(out, p.Shape())
		}
	}
	return out
}

// CanSpawn reports whether any pending piece fits anywhere on the board.
func (s *Session) CanSpawn() bool {
	return HasAnyLegalMove(s.Pending(), s.board)
}

// Score returns the running total.
func (s *Session) Score() int {
	return s.score.Total()
}

// Streak returns the combo streak.
func (s *Session) Streak() int {
	return s.score.Streak()
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.machine.Current()
}

// Elapsed returns the time spent in Playing during the current run.
func (s *Session) Elapsed() time.Duration {
	if s.machine.Current() == StatePlaying {
		return s.played + s.clock.Since(s.playingAt)
	}
	return s.played
}
