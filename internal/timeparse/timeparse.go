// Package timeparse resolves the timestamp formats accepted on the
// command line into a single time.Time, once, at the CLI boundary.
package timeparse

import (
	"fmt"
	"strings"
	"time"
)

var layouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse tries each accepted layout in order, interpreting the value in
// the local timezone, the same way an operator reading a wall clock would.
func Parse(value string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (accepted formats: %s)", value, strings.Join(layouts, ", "))
}
