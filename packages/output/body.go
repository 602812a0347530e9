package output

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// BodyFormat selects how response bodies are printed.
type BodyFormat string

const (
	BodyJSON BodyFormat = "json"
	BodyRaw  BodyFormat = "raw"
	BodyHTML BodyFormat = "html"
)

func ParseBodyFormat(s string) (BodyFormat, error) {
	switch BodyFormat(strings.ToLower(s)) {
	case "", BodyJSON:
		return BodyJSON, nil
	case BodyRaw:
		return BodyRaw, nil
	case BodyHTML:
		return BodyHTML, nil
	default:
		return "", fmt.Errorf("unknown body format %q (expected json, raw or html)", s)
	}
}

// FormatBody renders body for display. In JSON mode a valid JSON body is
// indented, and coloured when colored is set; anything else is returned as
// is.
func FormatBody(body []byte, format BodyFormat, colored bool) string {
	if format != BodyJSON || !gjson.ValidBytes(body) {
		return string(body)
	}
	out := pretty.Pretty(body)
	if colored {
		out = pretty.Color(out, pretty.TerminalStyle)
	}
	return strings.TrimRight(string(out), "\n")
}
