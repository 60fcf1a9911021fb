package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Trial summarizes a series of games between two agents.
type Trial struct {
	ID       uuid.UUID
	Agent1   string
	Agent2   string
	Games    []string // PGN of every game
	WinRate  float64  // player 1 wins over games played
	AvgTurns float64
	Time     time.Time
	Duration time.Duration
}

type GameRecord struct {
	ID     int
	Trial  uuid.UUID
	Agent1 string
	Agent2 string
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of dir named by the current timestamp.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteTrials(trials []Trial) error {
	header := []string{"id", "agent1", "agent2", "games", "win_rate", "avg_turns", "time", "duration", "pgns"}
	rows := make([][]string, 0, len(trials))
	for _, trial := range trials {
		rows = append(rows, []string{
			trial.ID.String(),
			trial.Agent1,
			trial.Agent2,
			strconv.Itoa(len(trial.Games)),
			strconv.FormatFloat(trial.WinRate, 'f', 4, 64),
			strconv.FormatFloat(trial.AvgTurns, 'f', 2, 64),
			trial.Time.Format(time.RFC3339),
			trial.Duration.String(),
			strings.Join(trial.Games, " "),
		})
	}
	return w.write("trials.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "trial", "agent1", "agent2", "starting_player", "winner", "total_moves", "start_time", "end_time", "duration", "pgn"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Trial.String(),
			record.Agent1,
			record.Agent2,
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			record.PGN,
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "strategy", "duration", "episodes", "full_playouts", "tree_size", "is_tree_reset"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Move,
			record.Strategy,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.TreeSize),
			strconv.FormatBool(record.IsTreeReset),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
