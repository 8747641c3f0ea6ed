package realtime

import (
	"testing"
	"time"

	"github.com/seiskit/seiskit/errors"
)

func TestSplit(t *testing.T) {
	data := make([]float64, 3000)
	for i := range data {
		data[i] = float64(i)
	}
	src := newTestTrace(testStart, 100.0, data)

	t.Run("uneven split absorbs shortfall in the tail", func(t *testing.T) {
		packets, err := Split(src, 7)
		if err != nil {
			t.Fatalf("Split: %v", err)
		}
		wantLens := []int{429, 429, 429, 429, 429, 429, 426}
		if len(packets) != len(wantLens) {
			t.Fatalf("packet count = %d, want %d", len(packets), len(wantLens))
		}
		offset := 0
		for i, pkt := range packets {
			if pkt.Len() != wantLens[i] {
				t.Errorf("packet %d length = %d, want %d", i, pkt.Len(), wantLens[i])
			}
			if want := testStart.Add(time.Duration(offset) * 10 * time.Millisecond); !pkt.StartTime.Equal(want) {
				t.Errorf("packet %d start = %v, want %v", i, pkt.StartTime, want)
			}
			for j, v := range pkt.Data {
				if v != float64(offset+j) {
					t.Fatalf("packet %d sample %d = %g, want %d", i, j, v, offset+j)
				}
			}
			offset += pkt.Len()
		}
		if offset != 3000 {
			t.Errorf("total samples across packets = %d, want 3000", offset)
		}
	})

	t.Run("even split yields equal packets", func(t *testing.T) {
		packets, err := Split(src, 4)
		if err != nil {
			t.Fatalf("Split: %v", err)
		}
		if len(packets) != 4 {
			t.Fatalf("packet count = %d, want 4", len(packets))
		}
		for i, pkt := range packets {
			if pkt.Len() != 750 {
				t.Errorf("packet %d length = %d, want 750", i, pkt.Len())
			}
		}
	})

	t.Run("packets are independent copies", func(t *testing.T) {
		packets, err := Split(src, 1)
		if err != nil {
			t.Fatalf("Split: %v", err)
		}
		packets[0].Data[0] = -1
		if src.Data[0] != 0 {
			t.Error("mutating a packet leaked into the source trace")
		}
	})
}

func TestSplitErrors(t *testing.T) {
	src := newTestTrace(testStart, 100.0, []float64{1, 2, 3})
	tests := []struct {
		name string
		n    int
	}{
		{"zero packets", 0},
		{"negative packets", -1},
		{"more packets than samples", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Split(src, tt.n); !errors.IsConfiguration(err) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}

	t.Run("empty trace", func(t *testing.T) {
		empty := newTestTrace(testStart, 100.0, nil)
		if _, err := Split(empty, 1); !errors.IsConfiguration(err) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	})
}

func TestSplitAppendRoundTrip(t *testing.T) {
	data := make([]float64, 3000)
	for i := range data {
		data[i] = float64(i%97) - 48
	}
	src := newTestTrace(testStart, 100.0, data)

	packets, err := Split(src, 7)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	s := mustStream(t)
	for i, pkt := range packets {
		if _, err := s.Append(pkt, WithStrictContinuity()); err != nil {
			t.Fatalf("Append packet %d: %v", i, err)
		}
	}

	if !s.Trace().Equal(src) {
		got := s.Trace()
		t.Fatalf("re-merged trace differs from source: len %d vs %d, start %v vs %v",
			got.Len(), src.Len(), got.StartTime, src.StartTime)
	}
}
