package wire

import (
	"encoding/binary"
	"errors"
)

type Serializer interface {
	Encode(*Snapshot) ([]byte, error)
	Decode([]byte) (*Snapshot, error)
}

var ErrCorruptFrame = errors.New("wire: corrupted frame")

const headerSize = 8

// frame prepends the length+CRC header the decoders verify.
func frame(body []byte) []byte {
	out := make([]byte, headerSize+len(body))
	binary.LittleEndian.PutUint32(out[:4], uint32(len(body)))
	binary.LittleEndian.PutUint32(out[4:8], CRC32Checksum(body))
	copy(out[headerSize:], body)
	return out
}

// unframe validates the header and returns the body.
func unframe(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, ErrCorruptFrame
	}
	n := binary.LittleEndian.Uint32(data[:4])
	if int(n) != len(data)-headerSize {
		return nil, ErrCorruptFrame
	}
	body := data[headerSize:]
	if !CRC32Validate(body, binary.LittleEndian.Uint32(data[4:8])) {
		return nil, ErrCorruptFrame
	}
	return body, nil
}

// BinarySerializer lays the snapshot out as seven fixed little-endian
// 64-bit words: seq, time, total, the three generation counts, then
// the uncollectable count.
type BinarySerializer struct{}

func (BinarySerializer) Encode(s *Snapshot) ([]byte, error) {
	body := make([]byte, 7*8)
	binary.LittleEndian.PutUint64(body[0:], s.Seq)
	binary.LittleEndian.PutUint64(body[8:], uint64(s.Time))
	binary.LittleEndian.PutUint64(body[16:], uint64(s.TotalTracked))
	for i, c := range s.GenCounts {
		binary.LittleEndian.PutUint64(body[24+i*8:], uint64(c))
	}
	binary.LittleEndian.PutUint64(body[48:], uint64(s.Uncollectable))
	return frame(body), nil
}

func (BinarySerializer) Decode(data []byte) (*Snapshot, error) {
	body, err := unframe(data)
	if err != nil {
		return nil, err
	}
	if len(body) != 7*8 {
		return nil, ErrCorruptFrame
	}
	s := &Snapshot{
		Seq:          binary.LittleEndian.Uint64(body[0:]),
		Time:         int64(binary.LittleEndian.Uint64(body[8:])),
		TotalTracked: int64(binary.LittleEndian.Uint64(body[16:])),
	}
	for i := range s.GenCounts {
		s.GenCounts[i] = int64(binary.LittleEndian.Uint64(body[24+i*8:]))
	}
	s.Uncollectable = int64(binary.LittleEndian.Uint64(body[48:]))
	return s, nil
}
