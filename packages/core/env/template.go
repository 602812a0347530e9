package env

import "regexp"

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// Render replaces ${name} placeholders with values from vars.
// Inserted values are not scanned again; unknown names are left untouched.
func Render(template string, vars Vars) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := vars[name]; ok {
			return val
		}
		return match
	})
}

// Unresolved returns the placeholder names in template that vars cannot
// satisfy, in order of first appearance.
func Unresolved(template string, vars Vars) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		name := m[1]
		if _, ok := vars[name]; ok || seen[name] {
			continue
		}
		seen[name] = true
		missing = append(missing, name)
	}
	return missing
}
