package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"tictactoe/game"
	"tictactoe/searcher"
	"tictactoe/searcher/agent"
)

type remoteAgent struct {
	url    string
	k      int
	client *http.Client
}

// NewRemoteAgent returns an agent asking the agent server at baseURL for its
// moves. k is the line length of the game being played.
func NewRemoteAgent(baseURL string, k int, client *http.Client) agent.Agent {
	if client == nil {
		client = http.DefaultClient
	}
	return remoteAgent{url: baseURL + "/findmove", k: k, client: client}
}

// FindMove encodes the position in JSON and posts it to /findmove on the
// agent side.
func (a remoteAgent) FindMove(g searcher.Game) (agent.Decision, error) {
	current := g.Current()
	body, err := json.Marshal(agent.MoveRequest{
		Board:    g.Board().Rows(),
		Player:   current.Symbol.String(),
		Opponent: current.Opponent().Symbol.String(),
		K:        a.k,
	})
	if err != nil {
		return agent.Decision{}, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := a.client.Post(a.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return agent.Decision{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return agent.Decision{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var mr agent.MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return agent.Decision{}, fmt.Errorf("failed to decode move: %w", err)
	}
	if !mr.Found || mr.Move == nil {
		return agent.Decision{}, nil
	}

	decision := agent.Decision{Move: *mr.Move, Found: true}
	decision.Metric.Steps = mr.Steps
	decision.Metric.Playouts = mr.Playouts
	if b := g.Board(); !b.Contains(decision.Move) || b.At(decision.Move) != game.Empty {
		return agent.Decision{}, fmt.Errorf("agent returned unplayable move %v", decision.Move)
	}
	return decision, nil
}
