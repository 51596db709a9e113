package util

import (
	"encoding/json"
	"fmt"
	"io"
)

// Result is the envelope printed for --json output.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// PrintJSON writes the provided value as indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// StructuredResult provides a consistent payload for JSON responses.
func StructuredResult(success bool, message string, data interface{}) Result {
	return Result{Success: success, Message: message, Data: data}
}

// PrintLines prints each string on a new line.
func PrintLines(w io.Writer, lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
