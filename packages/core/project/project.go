package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Definition is a parsed project file. It is read-only for the runner.
type Definition struct {
	API      API       `json:"api"`
	Requests []Request `json:"requests"`

	// Path is the file the definition was loaded from, if any.
	Path string `json:"-"`
}

type API struct {
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
	// Scenarios maps a scenario name to an ordered list of request names.
	Scenarios map[string][]string `json:"scenarios,omitempty"`
}

type Request struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Path   string `json:"path"`
	// Headers is a JSON object with ${name} placeholders.
	Headers RawText `json:"headers,omitempty"`
	// Body is sent verbatim after placeholder rendering.
	Body    RawText  `json:"body,omitempty"`
	Scripts []Script `json:"scripts,omitempty"`
}

// Script runs before or after the request it is attached to.
type Script struct {
	Before      bool   `json:"before"`
	Script      string `json:"script"`
	Description string `json:"description,omitempty"`
}

// RawText holds text that may be written in a project file either as a
// string or as a structured value. Structured values are kept as their
// compact JSON encoding.
type RawText string

func (t *RawText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = RawText(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return fmt.Errorf("invalid structured value: %w", err)
	}
	*t = RawText(buf.String())
	return nil
}

func (t RawText) String() string { return string(t) }

// IsSet reports whether any text was given.
func (t RawText) IsSet() bool { return t != "" }

// FindRequest returns the first request with the given name.
func (d *Definition) FindRequest(name string) (*Request, bool) {
	for i := range d.Requests {
		if d.Requests[i].Name == name {
			return &d.Requests[i], true
		}
	}
	return nil, false
}

// Scenario returns the ordered request names of a scenario.
func (d *Definition) Scenario(name string) ([]string, bool) {
	seq, ok := d.API.Scenarios[name]
	return seq, ok
}

// ScenarioNames returns the scenario names in sorted order.
func (d *Definition) ScenarioNames() []string {
	names := make([]string, 0, len(d.API.Scenarios))
	for name := range d.API.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate reports semantic problems that the schema cannot express.
// The returned warnings do not prevent a run; resolution still fails fast
// when a broken route is used.
func Validate(d *Definition) []string {
	var warnings []string

	seen := make(map[string]bool, len(d.Requests))
	for _, r := range d.Requests {
		if seen[r.Name] {
			warnings = append(warnings, fmt.Sprintf("request %q is defined more than once; the first definition is used", r.Name))
		}
		seen[r.Name] = true
	}

	for _, name := range d.ScenarioNames() {
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("scenario %q is shadowed by the request of the same name", name))
		}
		for _, step := range d.API.Scenarios[name] {
			if !seen[step] {
				warnings = append(warnings, fmt.Sprintf("scenario %q references unknown request %q", name, step))
			}
		}
	}

	return warnings
}
