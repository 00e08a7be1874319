package core

// Event is emitted by a Session after a state change. The set is closed:
// StateChanged, LinesCleared, ScoreChanged, GameOver and WaveSpawned.
type Event interface {
	isEvent()
}

// Listener receives events synchronously, in emission order.
type Listener func(Event)

// StateChanged reports a lifecycle transition.
type StateChanged struct {
	From, To State
}

// LinesCleared reports one clear wave.
type LinesCleared struct {
	Cells   []Coord
	Rows    []int
	Columns []int
}

// ScoreChanged reports the new total and streak.
type ScoreChanged struct {
	Total  int
	Streak int
}

// GameOver reports the end of a run.
type GameOver struct {
	FinalScore int
}

// WaveSpawned reports a fresh offer wave.
type WaveSpawned struct {
	Pieces []Unplaced
}

func (StateChanged) isEvent() {}
func (LinesCleared) isEvent() {}
func (ScoreChanged) isEvent() {}
func (GameOver) isEvent()     {}
func (WaveSpawned) isEvent()  {}
