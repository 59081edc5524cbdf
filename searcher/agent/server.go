package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"tictactoe/game"
)

// MoveRequest asks for a move on Board for the player using symbol Player.
// K defaults to the shorter board side.
type MoveRequest struct {
	Board    []string `json:"board"`
	Player   string   `json:"player"`
	Opponent string   `json:"opponent"`
	K        int      `json:"k,omitempty"`
}

type MoveResponse struct {
	Move     *game.Coord `json:"move,omitempty"`
	Found    bool        `json:"found"`
	Steps    int         `json:"steps"`
	Playouts int         `json:"playouts"`
}

var errGameOver = errors.New("game is already over")

// NewHandler serves POST /findmove. Every request gets its own agent from
// newAgent, searches are not shared between requests.
func NewHandler(newAgent func() Agent) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /findmove", func(w http.ResponseWriter, r *http.Request) {
		handleFindMove(w, r, newAgent())
	})
	return mux
}

// StartAgentServer serves agents on addr until the server fails.
func StartAgentServer(addr string, newAgent func() Agent) error {
	log.Info().Msgf("starting agent server on %s", addr)
	return http.ListenAndServe(addr, NewHandler(newAgent))
}

func handleFindMove(w http.ResponseWriter, r *http.Request, a Agent) {
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	g, err := req.game()
	if errors.Is(err, errGameOver) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	decision, err := a.FindMove(g)
	if err != nil {
		log.Error().Err(err).Msg("failed to find move")
		http.Error(w, "failed to find move: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := MoveResponse{Found: decision.Found, Steps: decision.Metric.Steps, Playouts: decision.Metric.Playouts}
	if decision.Found {
		resp.Move = &decision.Move
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
	}
}

// game rebuilds the position with the requesting player to move.
func (req MoveRequest) game() (*game.TicTacToe, error) {
	if len(req.Player) != 1 || len(req.Opponent) != 1 || req.Player == req.Opponent {
		return nil, fmt.Errorf("players need two distinct one-character symbols, got %q and %q", req.Player, req.Opponent)
	}
	player, opponent := game.Symbol(req.Player[0]), game.Symbol(req.Opponent[0])
	if player == game.Empty || opponent == game.Empty {
		return nil, fmt.Errorf("%q marks empty cells", game.Empty)
	}

	board, err := game.ParseBoard(req.Board...)
	if err != nil {
		return nil, err
	}
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			if s := board.At(game.Coord{X: x, Y: y}); s != game.Empty && s != player && s != opponent {
				return nil, fmt.Errorf("unknown symbol %q at [%d %d]", s, x, y)
			}
		}
	}

	k := req.K
	if k == 0 {
		k = min(board.Width(), board.Height())
	}
	if k < 0 || (k > board.Width() && k > board.Height()) {
		return nil, fmt.Errorf("cannot line up %d symbols on a %dx%d board", k, board.Width(), board.Height())
	}

	p, _ := game.NewPlayers(player, opponent)
	g := game.NewTicTacToe(p, p.Opponent(), board.Width(), board.Height(), k)
	g.SetBoard(board)
	if g.Check(p, board) != game.None {
		return nil, errGameOver
	}
	return g, nil
}
