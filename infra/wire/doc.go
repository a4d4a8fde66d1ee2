// Package wire serializes statistics snapshots for callers on the far
// side of the C boundary. Two codecs share one framed format: a fixed
// little-endian binary layout and a protobuf layout (see gc.proto).
// Every frame carries a length and CRC-32 header so a truncated or
// corrupted buffer is detected instead of decoded.
package wire
