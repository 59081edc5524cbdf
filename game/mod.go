package game

// Symbol is the one-character mark a player places on the board.
type Symbol byte

// Empty marks an unplayed cell.
const Empty Symbol = '_'

func (s Symbol) String() string {
	return string(s)
}

// Coord addresses a cell as (column, row), i.e. board[Y][X].
type Coord struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Outcome of a board as seen by an observing player.
type Outcome int

const (
	None Outcome = iota
	Win
	Lose
	Draw
)

func (o Outcome) String() string {
	switch o {
	case None:
		return "none"
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Invert returns the same outcome seen by the opponent.
func (o Outcome) Invert() Outcome {
	switch o {
	case Win:
		return Lose
	case Lose:
		return Win
	}
	return o
}
