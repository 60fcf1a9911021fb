package game

import "quoridor/searcher"

// SearchState adapts a live game to the searcher.
type SearchState struct {
	*Quoridor
}

// LoadSearchState is the searcher.Loader for PGN tokens.
func LoadSearchState(token string) (searcher.State, error) {
	q, err := FromPGN(token)
	if err != nil {
		return nil, err
	}
	return SearchState{q}, nil
}

func (s SearchState) Player() int            { return s.CurrentPlayer().ID }
func (s SearchState) Terminal() bool         { return s.IsTerminated() }
func (s SearchState) PawnMoves() []string    { return s.LegalPawnMoves() }
func (s SearchState) Play(move string) error { return s.MakeMove(move) }
func (s SearchState) Clone() searcher.State  { return SearchState{s.Copy()} }
func (s SearchState) Token() string          { return s.PGN() }

// SearchEvaluate lifts an evaluation function to searcher states loaded by
// LoadSearchState.
func SearchEvaluate(evaluate Evaluate) searcher.Evaluate {
	return func(s searcher.State) float64 {
		return evaluate(s.(SearchState).Quoridor)
	}
}
