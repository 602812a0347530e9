package env

// Reserved keys written after every HTTP call.
const (
	ResponseBodyKey   = "response_body"
	ResponseStatusKey = "response_status"
)

// Vars is the mutable working state of one run. It is passed by reference
// through the whole chain; later writers overwrite earlier ones.
type Vars map[string]string

// Merge combines the four variable layers into a fresh Vars.
// Precedence, lowest to highest: file < global < project < caller.
func Merge(file, global, project, caller Vars) Vars {
	merged := make(Vars, len(file)+len(global)+len(project)+len(caller))
	for _, layer := range []Vars{file, global, project, caller} {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}
