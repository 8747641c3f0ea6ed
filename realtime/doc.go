// Package realtime implements the streaming accumulator at the heart of
// seiskit: a continuously growing series stitched together from
// sequentially arriving data packets of one physical channel.
//
// A Stream owns the committed series buffer and an ordered list of
// registered transforms. Each Append call classifies the temporal
// continuity between the retained series and the new packet, resets
// stateful transform memory across detected discontinuities, applies the
// transform pipeline exactly once to the packet, merges it into the
// buffer, corrects accumulated clock drift on contiguous appends, and
// left-trims the buffer to the configured maximum retained duration.
//
//	stream, err := realtime.New(realtime.WithMaxLength(120))
//	stream.RegisterProcess("integrate", nil)
//	stream.RegisterProcess("boxcar", signal.Options{"width": 100})
//	for _, pkt := range packets {
//	    processed, err := stream.Append(pkt)
//	    ...
//	}
//
// A Stream has no internal locking: at most one Append may be in flight
// per Stream at a time, and callers with concurrent producers must
// serialize externally. Distinct Streams are fully independent.
package realtime
