package signal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seiskit/seiskit/errors"
	"github.com/seiskit/seiskit/trace"
)

// Transform is the call contract every predefined transform honors. It
// receives the packet being appended, the memory slots the registration
// owns, and the registration options, and returns the replacement sample
// array for the next pipeline stage.
type Transform func(tr *trace.Trace, mem []*Memory, opts Options) ([]float64, error)

type registration struct {
	fn    Transform
	arity int
}

// processes maps lower-case transform names to their implementation and
// declared memory arity.
var processes = map[string]registration{
	"scale":         {Scale, 0},
	"integrate":     {Integrate, 1},
	"differentiate": {Differentiate, 1},
	"boxcar":        {Boxcar, 1},
	"tauc":          {TauC, 2},
	"mwpintegral":   {MwpIntegral, 1},
}

// ProcessNames returns the sorted names of all predefined transforms.
func ProcessNames() []string {
	names := make([]string, 0, len(processes))
	for name := range processes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a transform name case-insensitively. An exact match wins;
// otherwise a prefix matching exactly one registered name resolves to that
// name ("int" resolves to "integrate"). A prefix matching several names is
// rejected rather than silently picking one. Returns the resolved canonical
// name, the transform and its declared memory arity.
func Lookup(name string) (string, Transform, int, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if reg, ok := processes[key]; ok {
		return key, reg.fn, reg.arity, nil
	}

	var matches []string
	for candidate := range processes {
		if strings.HasPrefix(candidate, key) {
			matches = append(matches, candidate)
		}
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return "", nil, 0, errors.Registration(name, "no matching process name")
	case 1:
		reg := processes[matches[0]]
		return matches[0], reg.fn, reg.arity, nil
	default:
		return "", nil, 0, errors.Registration(name,
			fmt.Sprintf("ambiguous prefix, matches: %s", strings.Join(matches, ", ")))
	}
}
