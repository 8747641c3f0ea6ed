package realtime

import (
	"fmt"
	"testing"
	"time"

	"github.com/seiskit/seiskit/errors"
	"github.com/seiskit/seiskit/signal"
	"github.com/seiskit/seiskit/trace"
)

var testStart = time.Date(2009, 8, 24, 0, 20, 3, 0, time.UTC)

func testHeader(start time.Time, sr float64) trace.Header {
	return trace.Header{
		Source:       trace.SourceID{Network: "BW", Station: "RJOB", Channel: "EHZ"},
		SamplingRate: sr,
		Calib:        1.0,
		DType:        trace.DTypeFloat64,
		StartTime:    start,
	}
}

func newTestTrace(start time.Time, sr float64, data []float64) *trace.Trace {
	return trace.New(testHeader(start, sr), data)
}

func mustStream(t *testing.T, opts ...Option) *Stream {
	t.Helper()
	s, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		maxLength float64
		useOption bool
		wantErr   bool
	}{
		{name: "unbounded by default"},
		{name: "positive bound", maxLength: 60, useOption: true},
		{name: "zero bound rejected", maxLength: 0, useOption: true, wantErr: true},
		{name: "negative bound rejected", maxLength: -5, useOption: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.useOption {
				opts = append(opts, WithMaxLength(tt.maxLength))
			}
			s, err := New(opts...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.IsConfiguration(err) {
					t.Errorf("expected configuration error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.ID() == "" {
				t.Error("expected a non-empty stream id")
			}
			if s.HasData() {
				t.Error("new stream must be unseeded")
			}
		})
	}
}

func TestAppendSeedsFromFirstPacket(t *testing.T) {
	s := mustStream(t)
	pkt := newTestTrace(testStart, 1.0, []float64{1, 2, 3})

	out, err := s.Append(pkt)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if !s.HasData() {
		t.Fatal("stream must be seeded after first append")
	}

	want := []float64{1, 2, 3}
	assertSamples(t, out, want)
	assertSamples(t, s.Trace().Data, want)

	buf := s.Trace()
	if buf.Source != pkt.Source {
		t.Errorf("source not adopted: %v", buf.Source)
	}
	if buf.SamplingRate != 1.0 || buf.Calib != 1.0 {
		t.Errorf("header not adopted: %+v", buf.Header)
	}
	if !buf.StartTime.Equal(testStart) {
		t.Errorf("start time not adopted: %v", buf.StartTime)
	}
}

func TestAppendAccumulatesContiguousPackets(t *testing.T) {
	s := mustStream(t)
	if _, err := s.Append(newTestTrace(testStart, 1.0, []float64{1, 2, 3})); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := s.Append(newTestTrace(testStart.Add(3*time.Second), 1.0, []float64{4, 5}), WithStrictContinuity()); err != nil {
		t.Fatalf("Append: %v", err)
	}
	assertSamples(t, s.Trace().Data, []float64{1, 2, 3, 4, 5})
	if !s.Trace().StartTime.Equal(testStart) {
		t.Errorf("start time moved: %v", s.Trace().StartTime)
	}
}

func TestAppendHeaderMismatch(t *testing.T) {
	base := testHeader(testStart, 1.0)
	tests := []struct {
		name   string
		mutate func(*trace.Header)
		field  string
	}{
		{"source", func(h *trace.Header) { h.Source.Station = "MANZ" }, "source"},
		{"sampling rate", func(h *trace.Header) { h.SamplingRate = 2.0 }, "sampling_rate"},
		{"calib", func(h *trace.Header) { h.Calib = 0.5 }, "calib"},
		{"dtype", func(h *trace.Header) { h.DType = trace.DTypeInt32 }, "dtype"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustStream(t)
			if _, err := s.Append(trace.New(base, []float64{1, 2, 3})); err != nil {
				t.Fatalf("seed: %v", err)
			}

			hdr := base
			hdr.StartTime = testStart.Add(3 * time.Second)
			tt.mutate(&hdr)
			_, err := s.Append(trace.New(hdr, []float64{4}))
			if !errors.IsHeaderMismatch(err) {
				t.Fatalf("expected header mismatch, got %v", err)
			}
			se, _ := errors.AsStreamError(err)
			if se.Details["field"] != tt.field {
				t.Errorf("expected mismatch on %q, got %v", tt.field, se.Details["field"])
			}
			assertSamples(t, s.Trace().Data, []float64{1, 2, 3})
		})
	}
}

func TestAppendStrictContinuity(t *testing.T) {
	// 1 Hz seed of 3 samples: buffer ends at testStart+2s, the contiguous
	// next start is testStart+3s. delta is expressed in samples.
	tests := []struct {
		name    string
		offset  time.Duration
		check   func(error) bool
		errName string
	}{
		{"overlap beyond tolerance", 2800 * time.Millisecond, errors.IsOverlap, "overlap"}, // delta -0.2
		{"gap beyond tolerance", 3200 * time.Millisecond, errors.IsGap, "gap"},             // delta +0.2
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustStream(t)
			if _, err := s.Append(newTestTrace(testStart, 1.0, []float64{1, 2, 3})); err != nil {
				t.Fatalf("seed: %v", err)
			}

			_, err := s.Append(newTestTrace(testStart.Add(tt.offset), 1.0, []float64{4}), WithStrictContinuity())
			if !tt.check(err) {
				t.Fatalf("expected %s error, got %v", tt.errName, err)
			}
			// fail-fast: the committed series must be untouched
			assertSamples(t, s.Trace().Data, []float64{1, 2, 3})
			if !s.Trace().StartTime.Equal(testStart) {
				t.Errorf("start time moved: %v", s.Trace().StartTime)
			}
		})
	}
}

func TestAppendWithinTolerance(t *testing.T) {
	// offsets within 0.1 samples of the nominal cadence count as contiguous
	// and pin the buffer timing to the observed cadence.
	tests := []struct {
		name      string
		offset    time.Duration
		wantShift time.Duration
	}{
		{"early within tolerance", 2950 * time.Millisecond, -50 * time.Millisecond}, // delta -0.05
		{"late within tolerance", 3050 * time.Millisecond, 50 * time.Millisecond},   // delta +0.05
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustStream(t)
			if _, err := s.Append(newTestTrace(testStart, 1.0, []float64{1, 2, 3})); err != nil {
				t.Fatalf("seed: %v", err)
			}

			_, err := s.Append(newTestTrace(testStart.Add(tt.offset), 1.0, []float64{4}), WithStrictContinuity(), WithVerbose())
			if err != nil {
				t.Fatalf("expected contiguous append, got %v", err)
			}
			assertSamples(t, s.Trace().Data, []float64{1, 2, 3, 4})
			if want := testStart.Add(tt.wantShift); !s.Trace().StartTime.Equal(want) {
				t.Errorf("start time = %v, want %v", s.Trace().StartTime, want)
			}
		})
	}
}

func TestAppendNonStrictDiscontinuityResetsMemory(t *testing.T) {
	s := mustStream(t)
	if _, err := s.RegisterProcess("integrate", nil); err != nil {
		t.Fatalf("RegisterProcess: %v", err)
	}

	out, err := s.Append(newTestTrace(testStart, 1.0, []float64{1, 2, 3}))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	assertSamples(t, out, []float64{1, 3, 6})

	// contiguous continuation carries the running integral
	out, err = s.Append(newTestTrace(testStart.Add(3*time.Second), 1.0, []float64{4}))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	assertSamples(t, out, []float64{10})

	// a gap without strict mode resets the integral and proceeds
	out, err = s.Append(newTestTrace(testStart.Add(10*time.Second), 1.0, []float64{4}))
	if err != nil {
		t.Fatalf("Append across gap: %v", err)
	}
	assertSamples(t, out, []float64{4})
	if got := s.Trace().Len(); got != 5 {
		t.Errorf("buffer length = %d, want 5", got)
	}
}

func TestRegisterProcess(t *testing.T) {
	t.Run("named transforms", func(t *testing.T) {
		s := mustStream(t)
		n, err := s.RegisterProcess("integrate", nil)
		if err != nil || n != 1 {
			t.Fatalf("integrate: n=%d err=%v", n, err)
		}
		n, err = s.RegisterProcess("tauc", signal.Options{"width": 60})
		if err != nil || n != 2 {
			t.Fatalf("tauc: n=%d err=%v", n, err)
		}
		if s.NumProcesses() != 2 {
			t.Errorf("NumProcesses = %d, want 2", s.NumProcesses())
		}
	})

	t.Run("unique prefix resolves", func(t *testing.T) {
		s := mustStream(t)
		if _, err := s.RegisterProcess("int", nil); err != nil {
			t.Fatalf("prefix registration: %v", err)
		}
		found := false
		for _, p := range s.Trace().Processing {
			if p == "realtime_process:integrate:{}" {
				found = true
			}
		}
		if !found {
			t.Errorf("provenance missing resolved name: %v", s.Trace().Processing)
		}
	})

	t.Run("unknown name rejected", func(t *testing.T) {
		s := mustStream(t)
		if _, err := s.RegisterProcess("bogus", nil); !errors.IsRegistration(err) {
			t.Fatalf("expected registration error, got %v", err)
		}
	})

	t.Run("unsupported type rejected", func(t *testing.T) {
		s := mustStream(t)
		if _, err := s.RegisterProcess(42, nil); !errors.IsRegistration(err) {
			t.Fatalf("expected registration error, got %v", err)
		}
	})

	t.Run("direct function", func(t *testing.T) {
		s := mustStream(t)
		negate := func(samples []float64, _ signal.Options) ([]float64, error) {
			out := make([]float64, len(samples))
			for i, v := range samples {
				out[i] = -v
			}
			return out, nil
		}
		if _, err := s.RegisterProcess(negate, nil); err != nil {
			t.Fatalf("direct registration: %v", err)
		}
		out, err := s.Append(newTestTrace(testStart, 1.0, []float64{1, 2, 3}))
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		assertSamples(t, out, []float64{-1, -2, -3})
	})
}

func TestAppendScalePipeline(t *testing.T) {
	s := mustStream(t)
	if _, err := s.RegisterProcess("scale", signal.Options{"factor": 2.0}); err != nil {
		t.Fatalf("RegisterProcess: %v", err)
	}

	out, err := s.Append(newTestTrace(testStart, 1.0, []float64{1, 2, 3}))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	assertSamples(t, out, []float64{2, 4, 6})
	assertSamples(t, s.Trace().Data, []float64{2, 4, 6})

	// provenance recorded at registration survives the seeding append
	found := false
	for _, p := range s.Trace().Processing {
		if p == "realtime_process:scale:{factor: 2}" {
			found = true
		}
	}
	if !found {
		t.Errorf("registration provenance lost: %v", s.Trace().Processing)
	}
}

func TestAppendRetentionTrimming(t *testing.T) {
	s := mustStream(t, WithMaxLength(2.0))

	data := make([]float64, 150)
	for i := range data {
		data[i] = float64(i)
	}
	if _, err := s.Append(newTestTrace(testStart, 100.0, data)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	more := make([]float64, 100)
	for i := range more {
		more[i] = float64(150 + i)
	}
	if _, err := s.Append(newTestTrace(testStart.Add(1500*time.Millisecond), 100.0, more), WithStrictContinuity()); err != nil {
		t.Fatalf("Append: %v", err)
	}

	buf := s.Trace()
	if buf.Len() != 200 {
		t.Fatalf("buffer length = %d, want 200", buf.Len())
	}
	// 50 samples trimmed from the left: first retained value is the one
	// formerly at index 50, at its original timestamp
	if buf.Data[0] != 50 {
		t.Errorf("first retained sample = %g, want 50", buf.Data[0])
	}
	if want := testStart.Add(500 * time.Millisecond); !buf.StartTime.Equal(want) {
		t.Errorf("start time = %v, want %v", buf.StartTime, want)
	}
}

func TestAppendTransformErrorLeavesBufferUnchanged(t *testing.T) {
	s := mustStream(t)
	calls := 0
	flaky := func(samples []float64, _ signal.Options) ([]float64, error) {
		calls++
		if calls > 1 {
			return nil, fmt.Errorf("transform exploded on call %d", calls)
		}
		return samples, nil
	}
	if _, err := s.RegisterProcess(flaky, nil); err != nil {
		t.Fatalf("RegisterProcess: %v", err)
	}
	if _, err := s.Append(newTestTrace(testStart, 1.0, []float64{1, 2, 3})); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := s.Append(newTestTrace(testStart.Add(3*time.Second), 1.0, []float64{4}))
	if err == nil {
		t.Fatal("expected transform error")
	}
	if err.Error() != "transform exploded on call 2" {
		t.Errorf("transform error was wrapped: %v", err)
	}
	assertSamples(t, s.Trace().Data, []float64{1, 2, 3})
	if !s.Trace().StartTime.Equal(testStart) {
		t.Errorf("start time moved on failed append: %v", s.Trace().StartTime)
	}
}

func TestAppendNormalizesSinglePrecision(t *testing.T) {
	s := mustStream(t)
	hdr := testHeader(testStart, 1.0)
	hdr.DType = trace.DTypeFloat32
	if _, err := s.Append(trace.New(hdr, []float64{1, 2, 3})); err != nil {
		t.Fatalf("seed: %v", err)
	}

	hdr2 := hdr
	hdr2.StartTime = testStart.Add(3 * time.Second)
	if _, err := s.Append(trace.New(hdr2, []float64{0.1}), WithStrictContinuity()); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got := s.Trace().Data[3]
	if got == 0.1 {
		t.Error("sample not quantized to single precision")
	}
	if got < 0.0999 || got > 0.1001 {
		t.Errorf("quantized sample out of range: %g", got)
	}
}

func assertSamples(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("sample count = %d, want %d (%v vs %v)", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %g, want %g", i, got[i], want[i])
		}
	}
}
