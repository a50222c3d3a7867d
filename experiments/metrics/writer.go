package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one tournament entrant.
type AgentConfig struct {
	ID        int
	Searcher  string // mtdf, alphabeta or random
	Depth     int
	Scorer    string
	TableBits int
	Seed      uint64
}

type GameRecord struct {
	ID    int
	White int // AgentConfig.ID
	Black int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates baseDir/name/<timestamp> to hold the experiment's files.
func NewWriter(baseDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	dir := filepath.Join(baseDir, name, timestamp)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: dir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "searcher", "depth", "scorer", "table_bits", "seed"}
	return w.write("agent_configs.csv", header, len(configs), func(i int) []string {
		config := configs[i]
		return []string{
			strconv.Itoa(config.ID),
			config.Searcher,
			strconv.Itoa(config.Depth),
			config.Scorer,
			strconv.Itoa(config.TableBits),
			strconv.FormatUint(config.Seed, 10),
		}
	})
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "white", "black", "starting_player", "winner", "reason", "start_time", "end_time", "duration", "total_moves"}
	return w.write("game_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.White),
			strconv.Itoa(record.Black),
			record.StartingPlayer,
			record.Winner,
			record.Reason,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		}
	})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "searcher", "depth", "reached", "duration", "nodes", "passes", "table_lookups", "table_hits", "score"}
	return w.write("move_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			record.Searcher,
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Reached),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Passes),
			strconv.Itoa(record.TableLookups),
			strconv.Itoa(record.TableHits),
			strconv.Itoa(record.Score),
		}
	})
}

func (w *Writer) write(name string, header []string, n int, row func(i int) []string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i := 0; i < n; i++ {
		err = writer.Write(row(i))
		if err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", name, i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
