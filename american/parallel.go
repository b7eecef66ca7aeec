package american

import (
	"fmt"
	"sync"
)

// ExerciseBoundaryParallel solves the option batch in contiguous row
// chunks, one goroutine per chunk. Rows are fully independent, so each
// row agrees with the serial ExerciseBoundary result to within the solve
// tolerance; the convergence check runs per chunk rather than over the
// whole batch, so iteration counts (and hence sub-tolerance digits) can
// differ. workers is capped at the number of option rows.
func ExerciseBoundaryParallel(tauGrid [][]float64, k, r, q, sigma []float64, maxDepth int, tolerance float64, quadPoints, workers int) (BoundaryFunc, error) {
	if workers < 1 {
		return nil, fmt.Errorf("ExerciseBoundaryParallel: workers must be positive, got %d", workers)
	}
	if err := validateInputs(tauGrid, k, r, q, sigma, maxDepth, tolerance, quadPoints); err != nil {
		return nil, err
	}

	m := len(tauGrid)
	if workers > m {
		workers = m
	}
	if workers == 1 {
		return ExerciseBoundary(tauGrid, k, r, q, sigma, maxDepth, tolerance, quadPoints)
	}

	type chunk struct {
		start, end int
		fn         BoundaryFunc
		err        error
	}
	chunks := make([]chunk, workers)
	base := m / workers
	extra := m % workers
	start := 0
	for c := range chunks {
		size := base
		if c < extra {
			size++
		}
		chunks[c].start = start
		chunks[c].end = start + size
		start += size
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for c := range chunks {
		go func(c int) {
			defer wg.Done()
			lo, hi := chunks[c].start, chunks[c].end
			chunks[c].fn, chunks[c].err = ExerciseBoundary(
				tauGrid[lo:hi], k[lo:hi], r[lo:hi], q[lo:hi], sigma[lo:hi],
				maxDepth, tolerance, quadPoints)
		}(c)
	}
	wg.Wait()

	for c := range chunks {
		if chunks[c].err != nil {
			return nil, fmt.Errorf("ExerciseBoundaryParallel: chunk %d: %w", c, chunks[c].err)
		}
	}

	// The combined function routes query rows to the chunk that solved
	// them. Queries must carry one row per option, as with the serial
	// solve.
	return func(tau [][][]float64) [][][]float64 {
		if len(tau) != m {
			panic(fmt.Sprintf("american: boundary query has %d rows for %d options", len(tau), m))
		}
		out := make([][][]float64, len(tau))
		for c := range chunks {
			lo, hi := chunks[c].start, chunks[c].end
			rows := chunks[c].fn(tau[lo:hi])
			copy(out[lo:hi], rows)
		}
		return out
	}, nil
}
