package signal

// Memory is one slot of per-transform carry-over state. A registered
// transform owns its slots exclusively; the accumulator resets them across
// detected discontinuities so no transform carries history a gap or overlap
// does not support.
type Memory struct {
	// Input retains trailing raw input samples from previous packets.
	Input []float64
	// Output retains trailing output state from previous packets,
	// e.g. the running value of an integral.
	Output []float64

	inputInitialized  bool
	outputInitialized bool
}

// NewMemory creates a fresh, empty memory slot.
func NewMemory() *Memory {
	return &Memory{}
}

// Reset returns the slot to its fresh, uninitialized state. Behavior is
// identical to replacing the slot with a newly allocated one.
func (m *Memory) Reset() {
	m.Input = nil
	m.Output = nil
	m.inputInitialized = false
	m.outputInitialized = false
}

// InitializeInput allocates the input retention buffer once, filled with
// value. Subsequent calls are no-ops until Reset.
func (m *Memory) InitializeInput(size int, value float64) {
	if m.inputInitialized {
		return
	}
	m.Input = make([]float64, size)
	for i := range m.Input {
		m.Input[i] = value
	}
	m.inputInitialized = true
}

// InitializeOutput allocates the output retention buffer once, filled with
// value. Subsequent calls are no-ops until Reset.
func (m *Memory) InitializeOutput(size int, value float64) {
	if m.outputInitialized {
		return
	}
	m.Output = make([]float64, size)
	for i := range m.Output {
		m.Output[i] = value
	}
	m.outputInitialized = true
}

// InputInitialized reports whether the input buffer has been allocated.
func (m *Memory) InputInitialized() bool { return m.inputInitialized }

// OutputInitialized reports whether the output buffer has been allocated.
func (m *Memory) OutputInitialized() bool { return m.outputInitialized }

// UpdateInput refreshes the input retention buffer with the most recent
// samples, keeping the buffer length fixed. Samples already retained are
// shifted out as new ones arrive.
func (m *Memory) UpdateInput(samples []float64) {
	size := len(m.Input)
	if size == 0 {
		return
	}
	if len(samples) >= size {
		copy(m.Input, samples[len(samples)-size:])
		return
	}
	keep := size - len(samples)
	copy(m.Input, m.Input[size-keep:])
	copy(m.Input[keep:], samples)
}
