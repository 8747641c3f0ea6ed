package signal

import (
	"fmt"
	"math"

	"github.com/seiskit/seiskit/errors"
	"github.com/seiskit/seiskit/trace"
)

// Scale multiplies every sample by the "factor" option (default 1.0).
// Stateless: owns no memory slots.
func Scale(tr *trace.Trace, _ []*Memory, opts Options) ([]float64, error) {
	factor := opts.Float("factor", 1.0)
	out := make([]float64, len(tr.Data))
	for i, v := range tr.Data {
		out[i] = v * factor
	}
	return out, nil
}

// Integrate computes the running time integral of the series. Memory slot 0
// carries the integral value across packets.
func Integrate(tr *trace.Trace, mem []*Memory, _ Options) ([]float64, error) {
	if err := requireMemory("integrate", mem, 1); err != nil {
		return nil, err
	}
	m := mem[0]
	if !m.OutputInitialized() {
		m.InitializeOutput(1, 0)
	}
	delta := tr.Delta()
	sum := m.Output[0]
	out := make([]float64, len(tr.Data))
	for i, v := range tr.Data {
		sum += v * delta
		out[i] = sum
	}
	m.Output[0] = sum
	return out, nil
}

// Differentiate computes the first-difference derivative of the series.
// Memory slot 0 carries the last input sample across packets so the first
// sample of a continuation packet differentiates against real history.
func Differentiate(tr *trace.Trace, mem []*Memory, _ Options) ([]float64, error) {
	if err := requireMemory("differentiate", mem, 1); err != nil {
		return nil, err
	}
	if len(tr.Data) == 0 {
		return []float64{}, nil
	}
	m := mem[0]
	if !m.InputInitialized() {
		// seed with the first sample so the leading derivative is zero
		// instead of a fabricated step
		m.InitializeInput(1, tr.Data[0])
	}
	sr := tr.SamplingRate
	prev := m.Input[0]
	out := make([]float64, len(tr.Data))
	for i, v := range tr.Data {
		out[i] = (v - prev) * sr
		prev = v
	}
	m.Input[0] = prev
	return out, nil
}

// Boxcar computes a boxcar (moving window) average over "width" samples.
// Memory slot 0 retains the trailing width-1 input samples across packets.
func Boxcar(tr *trace.Trace, mem []*Memory, opts Options) ([]float64, error) {
	if err := requireMemory("boxcar", mem, 1); err != nil {
		return nil, err
	}
	width, err := opts.RequireInt("width")
	if err != nil {
		return nil, err
	}
	if width < 1 {
		return nil, errors.New(errors.ErrCodeRegistration,
			fmt.Sprintf("boxcar width must be >= 1 (got %d)", width))
	}
	if len(tr.Data) == 0 {
		return []float64{}, nil
	}
	m := mem[0]
	if !m.InputInitialized() {
		// seed with the first value to avoid a spurious onset transient
		m.InitializeInput(width-1, tr.Data[0])
	}

	buf := make([]float64, 0, len(m.Input)+len(tr.Data))
	buf = append(buf, m.Input...)
	buf = append(buf, tr.Data...)

	out := make([]float64, len(tr.Data))
	sum := 0.0
	for i := 0; i < width; i++ {
		sum += buf[i]
	}
	out[0] = sum / float64(width)
	for i := 1; i < len(out); i++ {
		sum += buf[i+width-1] - buf[i-1]
		out[i] = sum / float64(width)
	}

	m.UpdateInput(tr.Data)
	return out, nil
}

// TauC estimates the bandwidth-limited dominant period over a sliding
// window of "width" samples:
//
//	tau_c = 2*pi * sqrt(sum(x^2) / sum(x'^2))
//
// Memory slot 0 retains the trailing raw samples of the window; slot 1
// retains the trailing derivative samples plus the previous raw sample so
// the derivative stays continuous across packets.
func TauC(tr *trace.Trace, mem []*Memory, opts Options) ([]float64, error) {
	if err := requireMemory("tauc", mem, 2); err != nil {
		return nil, err
	}
	width, err := opts.RequireInt("width")
	if err != nil {
		return nil, err
	}
	if width < 1 {
		return nil, errors.New(errors.ErrCodeRegistration,
			fmt.Sprintf("tauc width must be >= 1 (got %d)", width))
	}
	if len(tr.Data) == 0 {
		return []float64{}, nil
	}

	m0, m1 := mem[0], mem[1]
	if !m0.InputInitialized() {
		m0.InitializeInput(width-1, 0)
	}
	if !m1.InputInitialized() {
		m1.InitializeInput(width-1, 0)
	}
	if !m1.OutputInitialized() {
		m1.InitializeOutput(1, tr.Data[0])
	}

	sr := tr.SamplingRate
	deriv := make([]float64, len(tr.Data))
	prev := m1.Output[0]
	for i, v := range tr.Data {
		deriv[i] = (v - prev) * sr
		prev = v
	}
	m1.Output[0] = prev

	bufX := make([]float64, 0, len(m0.Input)+len(tr.Data))
	bufX = append(bufX, m0.Input...)
	bufX = append(bufX, tr.Data...)
	bufD := make([]float64, 0, len(m1.Input)+len(deriv))
	bufD = append(bufD, m1.Input...)
	bufD = append(bufD, deriv...)

	out := make([]float64, len(tr.Data))
	for i := range out {
		var sx, sd float64
		for j := 0; j < width; j++ {
			sx += bufX[i+j] * bufX[i+j]
			sd += bufD[i+j] * bufD[i+j]
		}
		if sd > 0 {
			out[i] = 2 * math.Pi * math.Sqrt(sx/sd)
		}
	}

	m0.UpdateInput(tr.Data)
	m1.UpdateInput(deriv)
	return out, nil
}

// MwpIntegral computes the running moment integral used for Mwp magnitude
// estimation: samples inside [ref_time, ref_time+max_time] are divided by
// "gain" and integrated over time. Memory slot 0 carries the integral
// across packets.
func MwpIntegral(tr *trace.Trace, mem []*Memory, opts Options) ([]float64, error) {
	if err := requireMemory("mwpintegral", mem, 1); err != nil {
		return nil, err
	}
	gain, err := opts.RequireFloat("gain")
	if err != nil {
		return nil, err
	}
	if gain <= 0 {
		return nil, errors.New(errors.ErrCodeRegistration,
			fmt.Sprintf("mwpintegral gain must be positive (got %g)", gain))
	}
	ref, ok := opts.Time("ref_time")
	if !ok {
		return nil, errors.New(errors.ErrCodeRegistration,
			`missing required option "ref_time"`)
	}
	maxTime := opts.Float("max_time", math.MaxFloat64)

	m := mem[0]
	if !m.OutputInitialized() {
		m.InitializeOutput(1, 0)
	}
	delta := tr.Delta()
	sum := m.Output[0]
	out := make([]float64, len(tr.Data))
	for i, v := range tr.Data {
		offset := tr.StartTime.Sub(ref).Seconds() + float64(i)*delta
		if offset >= 0 && offset <= maxTime {
			sum += (v / gain) * delta
		}
		out[i] = sum
	}
	m.Output[0] = sum
	return out, nil
}

// requireMemory verifies the accumulator handed over the declared number
// of memory slots.
func requireMemory(name string, mem []*Memory, n int) error {
	if len(mem) < n {
		return errors.New(errors.ErrCodeTransform,
			fmt.Sprintf("%s requires %d memory slot(s), got %d", name, n, len(mem)))
	}
	for i := 0; i < n; i++ {
		if mem[i] == nil {
			return errors.New(errors.ErrCodeTransform,
				fmt.Sprintf("%s memory slot %d is nil", name, i))
		}
	}
	return nil
}
