// Package mazefile reads and writes the plain-text maze format used by
// micromouse testers:
//
//	4
//	2,3,6,4
//	...
//
// The first line is the board dimension. Each following line describes one
// column x = 0..dim-1 and holds dim comma-separated open-side masks for
// y = 0..dim-1 (1 up, 2 right, 4 down, 8 left). Blank lines are ignored.
package mazefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvmaze/maze"
)

var (
	// ErrSyntax indicates a token that is not a non-negative integer in range.
	ErrSyntax = errors.New("mazefile: syntax error")
	// ErrShape indicates a row or column count that disagrees with the dimension.
	ErrShape = errors.New("mazefile: wrong number of rows or cells")
)

// Read parses a layout from r and validates its walls.
func Read(r io.Reader) (*maze.Layout, error) {
	sc := bufio.NewScanner(r)
	var (
		layout *maze.Layout
		dim    int
		x      int
		line   int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if layout == nil {
			d, err := strconv.Atoi(text)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: dimension %q", ErrSyntax, line, text)
			}
			g, err := maze.NewGrid(d)
			if err != nil {
				return nil, err
			}
			layout, dim = maze.NewLayout(g), d
			continue
		}
		if x >= dim {
			return nil, fmt.Errorf("%w: more than %d columns", ErrShape, dim)
		}
		fields := strings.Split(text, ",")
		if len(fields) != dim {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d", ErrShape, line, len(fields), dim)
		}
		for y, f := range fields {
			v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
			if err != nil || v > 15 {
				return nil, fmt.Errorf("%w: line %d cell %d: %q", ErrSyntax, line, y, f)
			}
			layout.SetMask(maze.Cell{X: x, Y: y}, uint8(v))
		}
		x++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, fmt.Errorf("%w: empty input", ErrShape)
	}
	if x != dim {
		return nil, fmt.Errorf("%w: %d columns, want %d", ErrShape, x, dim)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	return layout, nil
}

// Write renders l in the same format Read accepts.
func Write(w io.Writer, l *maze.Layout) error {
	bw := bufio.NewWriter(w)
	dim := l.Grid().Dim()
	fmt.Fprintf(bw, "%d\n", dim)
	for x := 0; x < dim; x++ {
		for y := 0; y < dim; y++ {
			if y > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(strconv.Itoa(int(l.Mask(maze.Cell{X: x, Y: y}))))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Load reads the layout stored at path.
func Load(path string) (*maze.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Save writes l to path, replacing any existing file.
func Save(path string, l *maze.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, l); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
