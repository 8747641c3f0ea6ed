package trace

import (
	"github.com/seiskit/seiskit/errors"
)

// FillPolicy selects how Merge treats a timing gap between two fragments.
type FillPolicy int

const (
	// FillNone concatenates the sample buffers verbatim. A gap or overlap
	// between the fragments is left in the timing metadata; no samples are
	// fabricated and no overlapping samples are dropped.
	FillNone FillPolicy = iota
	// FillLatest pads a whole-sample gap with the last retained value
	// before concatenating. Overlapping samples from the newer fragment
	// replace the retained tail.
	FillLatest
)

// MergeOptions configures a Merge call.
type MergeOptions struct {
	// Fill selects the gap fill policy.
	Fill FillPolicy
	// SanityChecks verifies header compatibility before merging.
	SanityChecks bool
}

// Merge appends other onto t in place. With SanityChecks enabled the
// source identity, sampling rate, calibration factor and dtype of both
// fragments must match exactly; the first divergence fails the merge with
// a header mismatch error and t is left unchanged.
//
// Merge performs no interpolation under any policy. The streaming
// accumulator always calls it with FillNone and sanity checks on.
func (t *Trace) Merge(other *Trace, opts MergeOptions) error {
	if opts.SanityChecks {
		if t.Source != other.Source {
			return errors.HeaderMismatch("source", t.Source.String(), other.Source.String())
		}
		if t.SamplingRate != other.SamplingRate {
			return errors.HeaderMismatch("sampling_rate", t.SamplingRate, other.SamplingRate)
		}
		if t.Calib != other.Calib {
			return errors.HeaderMismatch("calib", t.Calib, other.Calib)
		}
		if t.DType != other.DType {
			return errors.HeaderMismatch("dtype", t.DType.String(), other.DType.String())
		}
	}

	if opts.Fill == FillLatest && len(t.Data) > 0 && len(other.Data) > 0 {
		diff := other.StartTime.Sub(t.EndTime()).Seconds()
		missing := int(diff*t.SamplingRate - 1.0 + 0.5)
		if missing > 0 {
			last := t.Data[len(t.Data)-1]
			for i := 0; i < missing; i++ {
				t.Data = append(t.Data, last)
			}
		} else if missing < 0 {
			keep := len(t.Data) + missing
			if keep < 0 {
				keep = 0
			}
			t.Data = t.Data[:keep]
		}
	}

	t.Data = append(t.Data, other.Data...)
	return nil
}
