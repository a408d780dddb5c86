package llm

import (
	"errors"
	"strings"
)

// ErrNoJSON is returned when a reply carries no JSON object.
var ErrNoJSON = errors.New("llm: no json object in reply")

// ExtractJSON pulls the outermost JSON object out of a model reply, dropping
// markdown fences and any prose around it.
func ExtractJSON(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return "", ErrNoJSON
	}
	return reply[start : end+1], nil
}
