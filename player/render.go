package player

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"tictactoe/game"
)

// ANSI colors of players 1 and 2.
var palette = [...]string{"9", "12"}

// Renderer draws boards as a grid of " X | _ | O " rows, coloring player
// symbols when the output supports it.
type Renderer struct {
	out    *termenv.Output
	colors map[game.Symbol]termenv.Color
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...), colors: map[game.Symbol]termenv.Color{}}
}

// Assign colors the symbols currently held by the players. Call it again
// after symbols change.
func (r *Renderer) Assign(players ...*game.Player) {
	clear(r.colors)
	for _, p := range players {
		r.colors[p.Symbol] = r.out.Color(palette[(p.Index-1)%len(palette)])
	}
}

func (r *Renderer) Render(b *game.Board) error {
	var sb strings.Builder
	sb.WriteString("\n")
	for y := 0; y < b.Height(); y++ {
		if y > 0 {
			sb.WriteString("\t" + strings.TrimSuffix(strings.Repeat("---+", b.Width()), "+") + "\n")
		}
		cells := make([]string, b.Width())
		for x := range cells {
			cells[x] = " " + r.symbol(b.At(game.Coord{X: x, Y: y})) + " "
		}
		sb.WriteString("\t" + strings.Join(cells, "|") + "\n")
	}
	_, err := fmt.Fprintln(r.out, sb.String())
	return err
}

func (r *Renderer) symbol(s game.Symbol) string {
	color, ok := r.colors[s]
	if !ok || s == game.Empty {
		return s.String()
	}
	return r.out.String(s.String()).Foreground(color).Bold().String()
}

// Printf writes a plain line to the renderer's output.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}
