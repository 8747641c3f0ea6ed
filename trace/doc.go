// Package trace implements the continuous series container used by the
// seiskit streaming core.
//
// A Trace holds a contiguous numeric sample buffer together with its header
// metadata: source identity (network/station/location/channel), nominal
// sampling rate, calibration factor, numeric dtype tag and absolute start
// time. The end time is always derived:
//
//	end = start + (len(data)-1) / sampling_rate
//
// Traces expose slicing, left-trimming and merge primitives. The realtime
// accumulator owns one committed Trace per channel and mutates it only
// through Append; everything in this package is a passive container with
// no internal locking.
package trace
