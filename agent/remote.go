package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"quoridor/env"
)

// RemoteAgent asks an agent server for each move.
type RemoteAgent struct {
	serverURL string
	client    *http.Client
	last      Report
}

func NewRemoteAgent(serverURL string) *RemoteAgent {
	return &RemoteAgent{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		client:    &http.Client{Timeout: 5 * time.Minute},
	}
}

func (a *RemoteAgent) Act(ctx context.Context, _ env.Observation, _ float64, info env.Info) (int, error) {
	data, err := json.Marshal(ActRequest{PGN: info.PGN})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.serverURL+"/act", bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("remote agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		return 0, fmt.Errorf("remote agent: %s: %s", resp.Status, body.Error)
	}
	var res ActResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return 0, fmt.Errorf("remote agent: decoding response: %w", err)
	}
	a.last = Report{Strategy: res.Strategy, Move: res.Move}
	return res.Action, nil
}

func (a *RemoteAgent) Report() Report {
	return a.last
}
