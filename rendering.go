package img2ascii

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Rendering is the text produced by a render: one string per output row,
// each holding the same number of glyphs. It is owned by the caller and
// never modified by this package after it is returned.
type Rendering []string

// Lines returns the rows of the rendering.
func (r Rendering) Lines() []string {
	return []string(r)
}

// Rows returns the number of lines.
func (r Rendering) Rows() int {
	return len(r)
}

// Columns returns the number of glyphs per line.
func (r Rendering) Columns() int {
	if len(r) == 0 {
		return 0
	}
	return utf8.RuneCountInString(r[0])
}

// String joins the lines with newlines, without a trailing newline.
func (r Rendering) String() string {
	return strings.Join(r, "\n")
}

// WriteTo writes every line followed by a newline.
func (r Rendering) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range r {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// SaveText writes the rendering to path as UTF-8 text, lines joined by
// newlines with none after the last. When path is empty a free name of the
// form ascii_art[_N].txt is picked in the current directory. It returns
// the path written.
func SaveText(path string, r Rendering) (string, error) {
	if path == "" {
		var err error
		path, err = NextFreeName(".", "ascii_art", ".txt")
		if err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(path, []byte(r.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// NextFreeName returns dir/base+ext if it does not exist, otherwise the
// first dir/base_N+ext (N = 1, 2, ...) that does not.
func NextFreeName(dir, base, ext string) (string, error) {
	candidate := filepath.Join(dir, base+ext)
	for i := 1; ; i++ {
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to stat %s: %w", candidate, err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}
}
