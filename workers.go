package nbsite

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one file is processed at a time.
	MinWorkers = 1

	// MaxAutoWorkers caps the automatic worker count; rendering is CPU-bound
	// and more workers only add memory pressure.
	MaxAutoWorkers = 16
)

// ResolveWorkers determines how many files a build processes in parallel.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxAutoWorkers {
		return MaxAutoWorkers
	}
	return n
}
