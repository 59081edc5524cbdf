package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOccupied    = errors.New("cell is occupied")
	ErrOutOfBounds = errors.New("cell is out of bounds")
)

// Board is a fixed-shape grid of symbols. Copies made with Clone never share
// cells with the source.
type Board struct {
	width  int
	height int
	cells  []Symbol
}

// NewBoard returns an empty width x height board.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid board shape %dx%d", width, height))
	}
	cells := make([]Symbol, width*height)
	for i := range cells {
		cells[i] = Empty
	}
	return &Board{width: width, height: height, cells: cells}
}

// ParseBoard builds a board from rows of symbols, top row first. All rows
// must have the same length.
func ParseBoard(rows ...string) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("board has no cells")
	}
	b := NewBoard(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != b.width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(row), b.width)
		}
		for x := 0; x < len(row); x++ {
			b.cells[y*b.width+x] = Symbol(row[x])
		}
	}
	return b, nil
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) Contains(c Coord) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

func (b *Board) At(c Coord) Symbol {
	return b.cells[c.Y*b.width+c.X]
}

// Set writes a symbol without any checks.
func (b *Board) Set(c Coord, s Symbol) {
	b.cells[c.Y*b.width+c.X] = s
}

// Place puts a symbol on an empty cell.
func (b *Board) Place(c Coord, s Symbol) error {
	if !b.Contains(c) {
		return fmt.Errorf("place %v: %w", c, ErrOutOfBounds)
	}
	if b.At(c) != Empty {
		return fmt.Errorf("place %v: %w", c, ErrOccupied)
	}
	b.Set(c, s)
	return nil
}

// Empties lists the unplayed cells in row-major order.
func (b *Board) Empties() []Coord {
	empties := make([]Coord, 0, len(b.cells))
	for i, s := range b.cells {
		if s == Empty {
			empties = append(empties, Coord{X: i % b.width, Y: i / b.width})
		}
	}
	return empties
}

func (b *Board) Full() bool {
	for _, s := range b.cells {
		if s == Empty {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Symbol, len(b.cells))
	copy(cells, b.cells)
	return &Board{width: b.width, height: b.height, cells: cells}
}

func (b *Board) Equal(other *Board) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the board as one string per row, top row first.
func (b *Board) Rows() []string {
	rows := make([]string, b.height)
	for y := 0; y < b.height; y++ {
		row := make([]byte, b.width)
		for x := 0; x < b.width; x++ {
			row[x] = byte(b.At(Coord{X: x, Y: y}))
		}
		rows[y] = string(row)
	}
	return rows
}

func (b *Board) String() string {
	return strings.Join(b.Rows(), "/")
}
