// Command exerciseboundary computes American option early-exercise
// boundaries from a JSON request on stdin or a file, writing boundary
// samples as JSON to stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/meenmo/aolib/american"
	"github.com/meenmo/aolib/utils"
)

type boundaryInput struct {
	TaskID string `json:"task_id,omitempty"`
	// Maturities plus GridPoints build per-option grids from 0; an
	// explicit TauGrid overrides both.
	Maturities     []float64   `json:"maturities,omitempty"`
	GridPoints     int         `json:"grid_points,omitempty"`
	TauGrid        [][]float64 `json:"tau_grid,omitempty"`
	Strikes        []float64   `json:"strikes"`
	Rates          []float64   `json:"rates"`
	DividendYields []float64   `json:"dividend_yields"`
	Vols           []float64   `json:"vols"`
	MaxDepth       int         `json:"max_depth,omitempty"`
	Tolerance      float64     `json:"tolerance,omitempty"`
	QuadPoints     int         `json:"quad_points,omitempty"`
	Workers        int         `json:"workers,omitempty"`
}

type boundaryOutput struct {
	TaskID   string      `json:"task_id,omitempty"`
	TauGrid  [][]float64 `json:"tau_grid"`
	Boundary [][]float64 `json:"boundary"`
	Error    string      `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	verbose := flag.Bool("v", false, "Log progress to stderr")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: exerciseboundary -input <path>")
		fmt.Fprintln(os.Stderr, "Solve the American option early-exercise boundary for a batch of options.")
		return
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: exerciseboundary -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	hadError := false
	outputs := make([]boundaryOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in)
		if err != nil {
			hadError = true
			slog.Error("solve failed", "task_id", in.TaskID, "err", err)
			outputs = append(outputs, boundaryOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

func process(in boundaryInput) (*boundaryOutput, error) {
	tauGrid := in.TauGrid
	if tauGrid == nil {
		if len(in.Maturities) == 0 {
			return nil, fmt.Errorf("either tau_grid or maturities is required")
		}
		if in.GridPoints < 2 {
			return nil, fmt.Errorf("grid_points must be at least 2, got %d", in.GridPoints)
		}
		tauGrid = utils.MaturityGrid(in.Maturities, in.GridPoints)
	}

	maxDepth := in.MaxDepth
	if maxDepth == 0 {
		maxDepth = 20
	}
	tolerance := in.Tolerance
	if tolerance == 0 {
		tolerance = 1e-8
	}
	quadPoints := in.QuadPoints
	if quadPoints == 0 {
		quadPoints = 32
	}
	workers := in.Workers
	if workers == 0 {
		workers = 1
	}

	slog.Info("solving boundary",
		"task_id", in.TaskID,
		"options", len(tauGrid),
		"grid_points", len(tauGrid[0]),
		"max_depth", maxDepth,
		"quad_points", quadPoints,
		"workers", workers)

	boundary, err := american.ExerciseBoundaryParallel(
		tauGrid, in.Strikes, in.Rates, in.DividendYields, in.Vols,
		maxDepth, tolerance, quadPoints, workers)
	if err != nil {
		return nil, err
	}

	// Sample the returned boundary function back on the solve grid.
	query := make([][][]float64, len(tauGrid))
	for i := range tauGrid {
		query[i] = [][]float64{tauGrid[i]}
	}
	values := boundary(query)
	samples := make([][]float64, len(values))
	for i := range values {
		samples[i] = values[i][0]
	}

	return &boundaryOutput{
		TaskID:   in.TaskID,
		TauGrid:  tauGrid,
		Boundary: samples,
	}, nil
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func parseInputs(raw []byte) ([]boundaryInput, bool, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var inputs []boundaryInput
		if err := json.Unmarshal(raw, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var in boundaryInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, false, err
	}
	return []boundaryInput{in}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(boundaryOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
