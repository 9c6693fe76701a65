package formatter

import (
	"fmt"
	"go/format"
	"strings"
)

// Formatter is responsible for formatting generated Go code according to
// standard conventions.
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format takes Go code as a string and returns gofmt-formatted code.
func (f *Formatter) Format(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	formatted, err := format.Source([]byte(code))
	if err != nil {
		return "", fmt.Errorf("failed to parse Go code: %w", err)
	}
	return string(formatted), nil
}
