package realtime

import (
	"fmt"
	"time"

	"github.com/seiskit/seiskit/errors"
	"github.com/seiskit/seiskit/trace"
)

// Split divides a trace into at most n consecutive packets covering the series
// exactly, in order, with no duplicated or lost samples. When the length
// divides evenly all packets are equal; otherwise the leading packets
// are one sample longer than the even share and the final packet absorbs
// the shortfall, so 3000 samples in 7 packets yields six of 429 and one
// of 426. Each packet owns an independent copy of its samples and
// carries the source header with a shifted start time.
func Split(tr *trace.Trace, n int) ([]*trace.Trace, error) {
	if tr == nil || tr.Len() == 0 {
		return nil, errors.Configuration("cannot split an empty trace")
	}
	if n < 1 {
		return nil, errors.Configuration(fmt.Sprintf("packet count out of bounds: %d", n))
	}
	total := tr.Len()
	if n > total {
		return nil, errors.Configuration(
			fmt.Sprintf("cannot split %d samples into %d packets", total, n))
	}

	lead := total / n
	if total%n != 0 {
		lead++
	}

	packets := make([]*trace.Trace, 0, n)
	for offset := 0; offset < total; offset += lead {
		length := lead
		if offset+length > total {
			length = total - offset
		}
		hdr := tr.Header
		hdr.StartTime = tr.StartTime.Add(
			time.Duration(float64(offset) * float64(time.Second) / tr.SamplingRate))
		hdr.Processing = append([]string(nil), tr.Processing...)
		packets = append(packets, trace.New(hdr, append([]float64(nil), tr.Data[offset:offset+length]...)))
	}
	return packets, nil
}
