package trace

import (
	"fmt"
	"math"
	"time"
)

// SourceID identifies the physical channel a series belongs to.
type SourceID struct {
	Network  string `yaml:"network" mapstructure:"network"`
	Station  string `yaml:"station" mapstructure:"station"`
	Location string `yaml:"location" mapstructure:"location"`
	Channel  string `yaml:"channel" mapstructure:"channel"`
}

// String renders the identity in the conventional dotted form,
// e.g. "BW.RJOB..EHZ".
func (id SourceID) String() string {
	return fmt.Sprintf("%s.%s.%s.%s", id.Network, id.Station, id.Location, id.Channel)
}

// Header carries the metadata of a series fragment.
type Header struct {
	// Source is the network/station/location/channel identity.
	Source SourceID
	// SamplingRate is the nominal sample rate in Hz. Must be positive.
	SamplingRate float64
	// Calib is the calibration factor applied downstream.
	Calib float64
	// DType tags the delivered numeric representation.
	DType DType
	// StartTime is the absolute timestamp of the first sample.
	StartTime time.Time
	// Processing accumulates human-readable provenance records.
	Processing []string
}

// Trace is a bounded fragment of a continuous series: a sample buffer plus
// its header. The zero value is an empty, unseeded trace.
type Trace struct {
	Header
	Data []float64
}

// New creates a Trace from a header and a sample buffer. The buffer is
// used directly, not copied.
func New(hdr Header, data []float64) *Trace {
	return &Trace{Header: hdr, Data: data}
}

// Len returns the number of samples.
func (t *Trace) Len() int { return len(t.Data) }

// Delta returns the nominal sample interval in seconds.
func (t *Trace) Delta() float64 {
	if t.SamplingRate <= 0 {
		return 0
	}
	return 1.0 / t.SamplingRate
}

// EndTime returns the timestamp of the last sample:
// start + (len-1)/sampling_rate. For an empty trace it equals StartTime.
func (t *Trace) EndTime() time.Time {
	if len(t.Data) <= 1 {
		return t.StartTime
	}
	return t.StartTime.Add(secondsToDuration(float64(len(t.Data)-1) * t.Delta()))
}

// Copy returns a deep copy of the trace.
func (t *Trace) Copy() *Trace {
	data := make([]float64, len(t.Data))
	copy(data, t.Data)
	hdr := t.Header
	if t.Processing != nil {
		hdr.Processing = make([]string, len(t.Processing))
		copy(hdr.Processing, t.Processing)
	}
	return &Trace{Header: hdr, Data: data}
}

// Equal reports whether two traces carry the same core header and the same
// samples. Processing provenance is not compared.
func (t *Trace) Equal(other *Trace) bool {
	if other == nil {
		return false
	}
	if t.Source != other.Source ||
		t.SamplingRate != other.SamplingRate ||
		t.Calib != other.Calib ||
		t.DType != other.DType ||
		!t.StartTime.Equal(other.StartTime) {
		return false
	}
	if len(t.Data) != len(other.Data) {
		return false
	}
	for i := range t.Data {
		if t.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

// AddProcessingInfo appends a provenance record to the header.
func (t *Trace) AddProcessingInfo(info string) {
	t.Processing = append(t.Processing, info)
}

// NormalizeDType coerces the sample values to the precision implied by the
// dtype tag. A single-precision packet delivered as float64 values is
// quantized so that header comparison against a single-precision buffer is
// exact.
func (t *Trace) NormalizeDType() {
	if t.DType == DTypeFloat64 {
		return
	}
	for i, v := range t.Data {
		t.Data[i] = t.DType.quantize(v)
	}
}

// Slice returns an independent copy of the samples whose timestamps fall
// within [start, end], using nearest-sample rounding at both boundaries.
// Boundaries outside the trace are clamped.
func (t *Trace) Slice(start, end time.Time) *Trace {
	if len(t.Data) == 0 || end.Before(start) {
		out := t.Copy()
		out.Data = nil
		return out
	}
	sr := t.SamplingRate
	i := int(math.Round(start.Sub(t.StartTime).Seconds() * sr))
	j := int(math.Round(end.Sub(t.StartTime).Seconds() * sr))
	if i < 0 {
		i = 0
	}
	if j > len(t.Data)-1 {
		j = len(t.Data) - 1
	}
	out := t.Copy()
	if i > j {
		out.Data = nil
		return out
	}
	out.Data = append([]float64(nil), t.Data[i:j+1]...)
	out.StartTime = t.StartTime.Add(secondsToDuration(float64(i) * t.Delta()))
	return out
}

// TrimToLast left-trims the trace in place so that only the most recent n
// samples remain, recomputing the start time from the trim offset. It never
// pads and never trims from the right; n >= Len() is a no-op.
func (t *Trace) TrimToLast(n int) {
	if n < 0 {
		n = 0
	}
	cut := len(t.Data) - n
	if cut <= 0 {
		return
	}
	t.StartTime = t.StartTime.Add(secondsToDuration(float64(cut) * t.Delta()))
	t.Data = append(t.Data[:0], t.Data[cut:]...)
}

// secondsToDuration converts float seconds to a time.Duration with
// nanosecond rounding.
func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
