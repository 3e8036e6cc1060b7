package formats

import (
	"strings"
)

// ParseText parses a bare grid file. Lines starting with ';' are comments.
// The level ID is supplied by the caller, usually the file name.
func ParseText(id string, data []byte) (Level, error) {
	var b strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ";") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	layout, err := ParseGrid(b.String())
	if err != nil {
		return Level{}, err
	}
	return Level{ID: id, Name: id, Layout: layout}, nil
}
