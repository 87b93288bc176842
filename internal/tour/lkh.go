package tour

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aeroinspect/tourplan/internal/logging"
)

// lkhScale converts fractional distances to the integer weights TSPLIB
// requires.
const lkhScale = 100.0

// LKHSequencer drives the LKH solver executable through its file-based
// interchange: a TSPLIB problem file with one synthetic depot node, a
// parameter file, and a tour result file. The invocation is one blocking
// round trip; concurrent sessions must use distinct working directories.
type LKHSequencer struct {
	Executable string
	WorkDir    string
	Runs       int // LKH restarts, default 3
}

// NewLKHSequencer creates the adapter for a solver binary and a private
// working directory.
func NewLKHSequencer(executable, workDir string) *LKHSequencer {
	return &LKHSequencer{Executable: executable, WorkDir: workDir, Runs: 3}
}

// Name returns the backend name.
func (l *LKHSequencer) Name() string { return "lkh" }

// Sequence serializes the matrix, invokes the solver, and parses the
// anchored visiting order back.
func (l *LKHSequencer) Sequence(m *DistanceMatrix) ([]int, error) {
	if err := os.MkdirAll(l.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare oracle workdir: %w", err)
	}

	problemPath := filepath.Join(l.WorkDir, "problem.tsp")
	paramPath := filepath.Join(l.WorkDir, "problem.par")
	resultPath := filepath.Join(l.WorkDir, "problem.tour")

	if err := os.WriteFile(problemPath, []byte(writeTSPLIB(m)), 0o644); err != nil {
		return nil, fmt.Errorf("write problem file: %w", err)
	}
	if err := os.WriteFile(paramPath, []byte(l.writeParams(problemPath, resultPath)), 0o644); err != nil {
		return nil, fmt.Errorf("write parameter file: %w", err)
	}

	log := logging.New("lkh")
	log.Debug("invoking solver", "executable", l.Executable, "problem", problemPath)

	// Single blocking external computation; no timeout beyond the oracle's
	// own.
	cmd := exec.Command(l.Executable, paramPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: solver failed: %v: %s", ErrNoSequence, err, strings.TrimSpace(string(out)))
	}

	f, err := os.Open(resultPath)
	if err != nil {
		return nil, fmt.Errorf("%w: no result file: %v", ErrNoSequence, err)
	}
	defer f.Close()

	nodes, err := parseTourFile(f)
	if err != nil {
		return nil, err
	}
	return anchorSequence(nodes, m.Len())
}

// writeTSPLIB renders the matrix plus the synthetic depot as a TSPLIB
// EXPLICIT FULL_MATRIX problem. The depot is the last node with zero
// distance to everything, which fixes the tour start without constraining
// the cycle.
func writeTSPLIB(m *DistanceMatrix) string {
	n := m.Len()
	var b strings.Builder

	fmt.Fprintf(&b, "NAME: problem\n")
	fmt.Fprintf(&b, "TYPE: TSP\n")
	fmt.Fprintf(&b, "COMMENT: inspection tour with synthetic depot\n")
	fmt.Fprintf(&b, "DIMENSION: %d\n", n+1)
	fmt.Fprintf(&b, "EDGE_WEIGHT_TYPE: EXPLICIT\n")
	fmt.Fprintf(&b, "EDGE_WEIGHT_FORMAT: FULL_MATRIX\n")
	fmt.Fprintf(&b, "EDGE_WEIGHT_SECTION\n")
	for i := 0; i <= n; i++ {
		row := make([]string, 0, n+1)
		for j := 0; j <= n; j++ {
			w := 0
			if i < n && j < n {
				w = int(math.Round(m.Distance(i, j) * lkhScale))
			}
			row = append(row, strconv.Itoa(w))
		}
		b.WriteString(strings.Join(row, " "))
		b.WriteByte('\n')
	}
	b.WriteString("EOF\n")
	return b.String()
}

// writeParams renders the LKH parameter file.
func (l *LKHSequencer) writeParams(problemPath, resultPath string) string {
	runs := l.Runs
	if runs <= 0 {
		runs = 3
	}
	var b strings.Builder
	fmt.Fprintf(&b, "PROBLEM_FILE = %s\n", problemPath)
	fmt.Fprintf(&b, "MOVE_TYPE = 5\n")
	fmt.Fprintf(&b, "PATCHING_C = 3\n")
	fmt.Fprintf(&b, "PATCHING_A = 2\n")
	fmt.Fprintf(&b, "RUNS = %d\n", runs)
	fmt.Fprintf(&b, "TOUR_FILE = %s\n", resultPath)
	return b.String()
}

// parseTourFile reads the TOUR_SECTION of an LKH result: one-based node
// indices, one per line, terminated by -1.
func parseTourFile(r io.Reader) ([]int, error) {
	var nodes []int
	inTour := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "TOUR_SECTION":
			inTour = true
		case !inTour || line == "":
			continue
		case line == "-1" || line == "EOF":
			return nodes, nil
		default:
			id, err := strconv.Atoi(line)
			if err != nil {
				return nil, fmt.Errorf("%w: bad tour line %q", ErrNoSequence, line)
			}
			nodes = append(nodes, id-1) // TSPLIB is one-based
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSequence, err)
	}
	return nodes, nil
}

// anchorSequence rotates the cyclic oracle output so it begins at the
// synthetic depot (sentinel index n), then strips the depot, leaving the
// anchored viewpoint order. An empty or anchor-less result is fatal.
func anchorSequence(nodes []int, n int) ([]int, error) {
	if len(nodes) == 0 {
		return nil, ErrNoSequence
	}

	anchor := -1
	for i, id := range nodes {
		if id == n {
			anchor = i
			break
		}
	}
	if anchor == -1 {
		return nil, ErrNoAnchor
	}

	rotated := append(append([]int{}, nodes[anchor:]...), nodes[:anchor]...)
	return rotated[1:], nil
}
