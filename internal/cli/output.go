package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Response is the standard JSON response shape for CLI output.
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// writeSuccess prints a result in the configured format: JSON as a
// Response envelope carrying data, text as the human-readable line.
func writeSuccess(w io.Writer, format, text string, data any) error {
	if format == "json" {
		return json.NewEncoder(w).Encode(Response{Status: "ok", Data: data})
	}
	fmt.Fprintln(w, text)
	return nil
}

// parseKeys converts command-line key arguments into store keys. With
// asJSON each argument is decoded as JSON (numbers kept exact via
// json.Number so integers survive); otherwise arguments are plain strings.
func parseKeys(args []string, asJSON bool) ([]any, error) {
	keys := make([]any, len(args))
	for i, arg := range args {
		if !asJSON {
			keys[i] = arg
			continue
		}
		dec := json.NewDecoder(bytes.NewReader([]byte(arg)))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("key %q is not valid JSON: %w", arg, err)
		}
		keys[i] = v
	}
	return keys, nil
}
