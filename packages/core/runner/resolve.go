package runner

import (
	"fmt"

	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
)

// Resolve turns a route into the ordered request names to execute. A request
// named route wins over a scenario of the same name.
func Resolve(def *project.Definition, route string) ([]string, error) {
	if _, ok := def.FindRequest(route); ok {
		return []string{route}, nil
	}
	if seq, ok := def.Scenario(route); ok {
		out := make([]string, len(seq))
		copy(out, seq)
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q is neither a request nor a scenario of %q", ErrUnknownRoute, route, def.API.Name)
}

// lookup finds every named request, failing on the first missing one.
func lookup(def *project.Definition, route string, names []string) ([]*project.Request, error) {
	requests := make([]*project.Request, len(names))
	for i, name := range names {
		req, ok := def.FindRequest(name)
		if !ok {
			return nil, fmt.Errorf("%w: scenario %q references %q", ErrMissingRequest, route, name)
		}
		requests[i] = req
	}
	return requests, nil
}
