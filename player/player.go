package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tictactoe/game"
	"tictactoe/searcher"
	"tictactoe/searcher/agent"
)

// ErrQuit is returned when the human gives up the game.
var ErrQuit = errors.New("player quit")

// Human is a console agent. Boards of at most 26 cells are played by letter,
// 'a' being the top-left cell in row-major order; larger boards by "x y".
type Human struct {
	self     *game.Player
	in       *bufio.Scanner
	renderer *Renderer
}

func NewHuman(self *game.Player, in io.Reader, renderer *Renderer) *Human {
	return &Human{self: self, in: bufio.NewScanner(in), renderer: renderer}
}

func (h *Human) readLine() (string, error) {
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", fmt.Errorf("failed to read input: %w", io.ErrUnexpectedEOF)
	}
	return strings.TrimSpace(h.in.Text()), nil
}

// ChooseSymbol lets the human pick X or O for the coin flip winner; anything
// else defaults to X.
func (h *Human) ChooseSymbol() (game.Symbol, error) {
	h.renderer.Printf("Player %d, choose a symbol: X, O", h.self.Index)
	line, err := h.readLine()
	if err != nil {
		return 0, err
	}
	switch strings.ToUpper(line) {
	case "X":
		return 'X', nil
	case "O":
		return 'O', nil
	}
	h.renderer.Printf("Invalid symbol. Defaulted to X")
	return 'X', nil
}

func (h *Human) FindMove(g searcher.Game) (agent.Decision, error) {
	board := g.Board()
	for {
		h.renderer.Printf("Pick a position:")
		h.renderer.Printf("%s", legend(board))

		line, err := h.readLine()
		if err != nil {
			return agent.Decision{}, err
		}
		if line == "quit" {
			return agent.Decision{}, ErrQuit
		}

		move, ok := parseMove(line, board)
		if !ok || board.At(move) != game.Empty {
			h.renderer.Printf("Invalid choice. Try again...")
			continue
		}
		return agent.Decision{Move: move, Found: true}, nil
	}
}

func lettered(b *game.Board) bool {
	return b.Width()*b.Height() <= 26
}

func legend(b *game.Board) string {
	if !lettered(b) {
		return fmt.Sprintf("Enter a column (0-%d) and a row (0-%d) as \"x y\"", b.Width()-1, b.Height()-1)
	}
	rows := make([]string, b.Height())
	for y := range rows {
		cells := make([]string, b.Width())
		for x := range cells {
			cells[x] = " " + string(rune('a'+y*b.Width()+x)) + " "
		}
		rows[y] = "\t" + strings.Join(cells, "|")
	}
	sep := "\n\t" + strings.TrimSuffix(strings.Repeat("---+", b.Width()), "+") + "\n"
	return "\n" + strings.Join(rows, sep) + "\n"
}

// parseMove reads a letter on lettered boards and "x y" otherwise.
func parseMove(line string, b *game.Board) (game.Coord, bool) {
	if lettered(b) {
		if len(line) != 1 || line[0] < 'a' || int(line[0]-'a') >= b.Width()*b.Height() {
			return game.Coord{}, false
		}
		i := int(line[0] - 'a')
		return game.Coord{X: i % b.Width(), Y: i / b.Width()}, true
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return game.Coord{}, false
	}
	x, errX := strconv.Atoi(fields[0])
	y, errY := strconv.Atoi(fields[1])
	c := game.Coord{X: x, Y: y}
	if errX != nil || errY != nil || !b.Contains(c) {
		return game.Coord{}, false
	}
	return c, true
}
