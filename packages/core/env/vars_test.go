package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergePrecedence(t *testing.T) {
	file := Vars{"A": "env", "B": "env"}
	global := Vars{"B": "global", "C": "global"}
	project := Vars{"C": "project", "D": "project"}
	caller := Vars{"D": "cli", "E": "cli"}

	merged := Merge(file, global, project, caller)

	assert.Equal(t, Vars{
		"A": "env",
		"B": "global",
		"C": "project",
		"D": "cli",
		"E": "cli",
	}, merged)
}

func TestMergeKeyInEveryLayer(t *testing.T) {
	tests := []struct {
		name     string
		file     Vars
		global   Vars
		project  Vars
		caller   Vars
		expected string
	}{
		{"caller wins", Vars{"k": "f"}, Vars{"k": "g"}, Vars{"k": "p"}, Vars{"k": "c"}, "c"},
		{"project wins without caller", Vars{"k": "f"}, Vars{"k": "g"}, Vars{"k": "p"}, nil, "p"},
		{"global wins over file", Vars{"k": "f"}, Vars{"k": "g"}, nil, nil, "g"},
		{"file alone", Vars{"k": "f"}, nil, nil, nil, "f"},
		{"caller over file only", Vars{"k": "f"}, nil, nil, Vars{"k": "c"}, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := Merge(tt.file, tt.global, tt.project, tt.caller)
			assert.Equal(t, tt.expected, merged["k"])
		})
	}
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	caller := Vars{"x": "1"}
	merged := Merge(nil, nil, nil, caller)
	merged["x"] = "2"

	assert.Equal(t, "1", caller["x"])
}
