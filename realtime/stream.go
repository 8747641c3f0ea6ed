package realtime

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/seiskit/seiskit/errors"
	"github.com/seiskit/seiskit/logger"
	"github.com/seiskit/seiskit/observability"
	"github.com/seiskit/seiskit/signal"
	"github.com/seiskit/seiskit/trace"
)

// continuityTolerance is the fixed tolerance, in samples, inside which two
// fragments count as contiguous.
const continuityTolerance = 0.1

// DirectFunc is a stateless transform registered as a direct callable:
// single array in, single array out, no privately owned memory.
type DirectFunc func(samples []float64, opts signal.Options) ([]float64, error)

// processEntry binds a resolved transform to its options and the memory
// slots it privately owns. Entries execute in registration order and are
// never removed or reordered.
type processEntry struct {
	name    string
	direct  DirectFunc
	fn      signal.Transform
	options signal.Options
	memory  []*signal.Memory
}

// Stream accumulates a continuous series from sequential data packets.
type Stream struct {
	id      string
	buf     *trace.Trace
	entries []processEntry
	// maxLength bounds the retained duration in seconds; 0 means unbounded.
	maxLength float64
	seeded    bool
	log       *logger.Logger
	metrics   *observability.StreamMetrics
}

// Option configures a Stream at construction time.
type Option func(*Stream)

// WithMaxLength bounds the retained series to the most recent seconds of
// data. Zero or negative values are rejected by New; omit the option for
// an unbounded stream.
func WithMaxLength(seconds float64) Option {
	return func(s *Stream) { s.maxLength = seconds }
}

// WithLogger sets the logger used for discontinuity warnings and verbose
// append diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(s *Stream) { s.log = l }
}

// WithMetrics attaches streaming instruments recorded by Append. A nil
// metrics value records nothing.
func WithMetrics(m *observability.StreamMetrics) Option {
	return func(s *Stream) { s.metrics = m }
}

// New creates an empty, unseeded Stream. The buffer adopts the header of
// the first appended packet.
func New(opts ...Option) (*Stream, error) {
	s := &Stream{
		id:        uuid.NewString(),
		buf:       &trace.Trace{},
		maxLength: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxLength != -1 && s.maxLength <= 0 {
		return nil, errors.Configuration(
			fmt.Sprintf("max length out of bounds: %g", s.maxLength))
	}
	if s.maxLength == -1 {
		s.maxLength = 0
	}
	if s.log == nil {
		s.log = logger.Get("realtime")
	}
	s.log = s.log.WithFields(map[string]interface{}{logger.FieldStream: s.id})
	return s, nil
}

// ID returns the unique instance id of this stream.
func (s *Stream) ID() string { return s.id }

// HasData reports whether the stream has been seeded by a first append.
func (s *Stream) HasData() bool { return s.seeded }

// Trace returns the committed series buffer. The buffer is owned by the
// stream and mutated by Append; callers needing a stable snapshot must
// Copy it.
func (s *Stream) Trace() *trace.Trace { return s.buf }

// NumProcesses returns the number of registered transforms.
func (s *Stream) NumProcesses() int { return len(s.entries) }

// RegisterProcess adds a transform to the end of the processing pipeline
// and returns the new pipeline length. The process argument is either a
// predefined transform name (matched case-insensitively, with a
// unique-prefix fallback) or a DirectFunc. Options are forwarded verbatim
// to every invocation.
func (s *Stream) RegisterProcess(process any, opts signal.Options) (int, error) {
	if opts == nil {
		opts = signal.Options{}
	}

	var entry processEntry
	switch p := process.(type) {
	case DirectFunc:
		entry = processEntry{name: "direct", direct: p, options: opts}
	case func(samples []float64, opts signal.Options) ([]float64, error):
		entry = processEntry{name: "direct", direct: p, options: opts}
	case string:
		resolved, fn, arity, err := signal.Lookup(p)
		if err != nil {
			return 0, err
		}
		memory := make([]*signal.Memory, arity)
		for i := range memory {
			memory[i] = signal.NewMemory()
		}
		entry = processEntry{name: resolved, fn: fn, options: opts, memory: memory}
	default:
		return 0, errors.Registration(fmt.Sprintf("%v", process),
			"process must be a predefined name or a direct function")
	}

	s.entries = append(s.entries, entry)
	s.buf.AddProcessingInfo(fmt.Sprintf("realtime_process:%s:%s", entry.name, entry.options))

	s.log.Debug("process registered", logger.Fields(
		logger.FieldProcess, entry.name,
		"pipeline_length", len(s.entries),
	))
	return len(s.entries), nil
}

// AppendOption configures a single Append call.
type AppendOption func(*appendConfig)

type appendConfig struct {
	strict  bool
	verbose bool
}

// WithStrictContinuity turns any detected gap or overlap into a hard
// failure instead of a memory reset plus warning.
func WithStrictContinuity() AppendOption {
	return func(c *appendConfig) { c.strict = true }
}

// WithVerbose enables debug-level diagnostics for the continuity check.
func WithVerbose() AppendOption {
	return func(c *appendConfig) { c.verbose = true }
}

// Append ingests one packet: classify continuity, conditionally reset
// transform memory, run the pipeline over the packet, merge it into the
// buffer and left-trim to the retention bound. The transformed packet
// samples are returned for inspection.
//
// Failures raised before the merge step leave the buffer unchanged.
// Transform errors are surfaced unchanged, not wrapped.
func (s *Stream) Append(pkt *trace.Trace, opts ...AppendOption) ([]float64, error) {
	var cfg appendConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if pkt == nil {
		return nil, errors.Configuration("nil packet")
	}
	begin := time.Now()
	ctx := context.Background()
	channel := pkt.Source.String()

	// single-precision wire formats are coerced to the canonical
	// representation before any header comparison
	pkt.NormalizeDType()

	if s.seeded {
		if err := s.checkHeader(pkt); err != nil {
			return nil, err
		}
	}

	discontinuous := false
	var drift time.Duration
	if s.seeded {
		sr := s.buf.SamplingRate
		diff := pkt.StartTime.Sub(s.buf.EndTime()).Seconds()
		delta := diff*sr - 1.0

		if cfg.verbose {
			s.log.Debug("continuity check", logger.Fields(
				logger.FieldChannel, channel,
				logger.FieldDeltaSamples, delta,
				logger.FieldDiffSeconds, diff,
				logger.FieldBufferEnd, s.buf.EndTime(),
				logger.FieldPacketStart, pkt.StartTime,
			))
		}

		switch {
		case delta < -continuityTolerance:
			if cfg.strict {
				return nil, errors.Overlap(-delta, s.buf.EndTime(), pkt.StartTime)
			}
			discontinuous = true
			s.metrics.RecordOverlap(ctx, channel)
			s.log.Warn("overlap in data, transform memory will be re-initialized", logger.Fields(
				logger.FieldChannel, channel,
				logger.FieldDeltaSamples, -delta,
				logger.FieldBufferEnd, s.buf.EndTime(),
				logger.FieldPacketStart, pkt.StartTime,
			))
		case delta > continuityTolerance:
			if cfg.strict {
				return nil, errors.Gap(delta, s.buf.EndTime(), pkt.StartTime)
			}
			discontinuous = true
			s.metrics.RecordGap(ctx, channel)
			s.log.Warn("gap in data, transform memory will be re-initialized", logger.Fields(
				logger.FieldChannel, channel,
				logger.FieldDeltaSamples, delta,
				logger.FieldBufferEnd, s.buf.EndTime(),
				logger.FieldPacketStart, pkt.StartTime,
			))
		default:
			// contiguous: pin absolute buffer timing to the true packet
			// cadence so per-packet rounding of the nominal rate cannot
			// compound into drift. Applied only after the pipeline
			// succeeds so a failed append leaves the buffer untouched.
			drift = secondsToDuration(diff - 1.0/sr)
		}
	}

	for i := range s.entries {
		entry := &s.entries[i]
		if discontinuous && len(entry.memory) > 0 {
			for _, m := range entry.memory {
				m.Reset()
			}
		}

		var out []float64
		var err error
		if entry.direct != nil {
			out, err = entry.direct(pkt.Data, entry.options)
		} else {
			out, err = entry.fn(pkt, entry.memory, entry.options)
		}
		if err != nil {
			return nil, err
		}
		pkt.Data = out
	}

	if !s.seeded {
		hdr := pkt.Header
		hdr.Processing = append(append([]string(nil), s.buf.Processing...), pkt.Processing...)
		s.buf = trace.New(hdr, append([]float64(nil), pkt.Data...))
		s.seeded = true
	} else {
		if drift != 0 {
			s.buf.StartTime = s.buf.StartTime.Add(drift)
			if cfg.verbose {
				s.log.Debug("start time adjusted", logger.Fields(
					logger.FieldChannel, channel,
					"adjustment", drift.String(),
				))
			}
		}
		if err := s.buf.Merge(pkt, trace.MergeOptions{Fill: trace.FillNone, SanityChecks: true}); err != nil {
			return nil, err
		}
	}

	if s.maxLength > 0 {
		maxSamples := int(s.maxLength*s.buf.SamplingRate + 0.5)
		if s.buf.Len() > maxSamples {
			trimmed := s.buf.Len() - maxSamples
			s.buf.TrimToLast(maxSamples)
			s.metrics.RecordTrim(ctx, channel, trimmed)
		}
	}

	s.metrics.RecordAppend(ctx, channel, len(pkt.Data), time.Since(begin))
	return pkt.Data, nil
}

// checkHeader verifies the packet header against the committed buffer in
// the documented order: identity, sampling rate, calibration, dtype.
func (s *Stream) checkHeader(pkt *trace.Trace) error {
	if s.buf.Source != pkt.Source {
		return errors.HeaderMismatch("source", s.buf.Source.String(), pkt.Source.String())
	}
	if s.buf.SamplingRate != pkt.SamplingRate {
		return errors.HeaderMismatch("sampling_rate", s.buf.SamplingRate, pkt.SamplingRate)
	}
	if s.buf.Calib != pkt.Calib {
		return errors.HeaderMismatch("calib", s.buf.Calib, pkt.Calib)
	}
	if s.buf.DType != pkt.DType {
		return errors.HeaderMismatch("dtype", s.buf.DType.String(), pkt.DType.String())
	}
	return nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
