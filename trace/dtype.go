package trace

import (
	"strings"

	"github.com/seiskit/seiskit/errors"
)

// DType tags the numeric representation the samples were delivered in.
// Samples are always carried as float64 in memory; the tag preserves the
// wire-level precision so header compatibility checks stay meaningful.
type DType int

const (
	// DTypeFloat64 is the canonical double-precision representation.
	DTypeFloat64 DType = iota
	// DTypeFloat32 is the canonical single-precision representation.
	// Packets tagged with an endian-qualified single-precision wire format
	// are coerced to this before header comparison.
	DTypeFloat32
	// DTypeInt32 is the 32-bit integer representation common for raw
	// digitizer counts.
	DTypeInt32
)

// String returns the canonical tag name.
func (d DType) String() string {
	switch d {
	case DTypeFloat32:
		return "float32"
	case DTypeInt32:
		return "int32"
	default:
		return "float64"
	}
}

// ParseDType maps a wire-format tag to its canonical DType. Endian
// qualifiers are normalized away: ">f4", "<f4" and "f4" all map to
// DTypeFloat32.
func ParseDType(tag string) (DType, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "f8", ">f8", "<f8", "float64":
		return DTypeFloat64, nil
	case "f4", ">f4", "<f4", "float32":
		return DTypeFloat32, nil
	case "i4", ">i4", "<i4", "int32":
		return DTypeInt32, nil
	default:
		return DTypeFloat64, errors.Configuration("unknown dtype tag: " + tag)
	}
}

// quantize coerces v to the precision implied by the dtype tag.
func (d DType) quantize(v float64) float64 {
	switch d {
	case DTypeFloat32:
		return float64(float32(v))
	case DTypeInt32:
		return float64(int32(v))
	default:
		return v
	}
}
