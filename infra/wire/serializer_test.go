package wire

import (
	"errors"
	"testing"
)

func snapshots() []*Snapshot {
	return []*Snapshot{
		{},
		{Seq: 42, Time: 1700000000, TotalTracked: 7, GenCounts: [3]int64{4, 2, 1}, Uncollectable: 1},
	}
}

func TestSerializerRoundTrip(t *testing.T) {
	for _, ser := range []Serializer{BinarySerializer{}, ProtoSerializer{}} {
		for _, snap := range snapshots() {
			data, err := ser.Encode(snap)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := ser.Decode(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if *got != *snap {
				t.Fatalf("round trip mismatch: got %+v, want %+v", got, snap)
			}
		}
	}
}

func TestSerializerCRCIntegrity(t *testing.T) {
	for _, ser := range []Serializer{BinarySerializer{}, ProtoSerializer{}} {
		data, err := ser.Encode(snapshots()[1])
		if err != nil {
			t.Fatal(err)
		}
		// corrupt the body to break CRC
		data[len(data)-1] ^= 0xFF
		if _, err := ser.Decode(data); !errors.Is(err, ErrCorruptFrame) {
			t.Fatalf("expected corruption detection, got %v", err)
		}
	}
}

func TestSerializerTruncatedFrame(t *testing.T) {
	ser := ProtoSerializer{}
	data, err := ser.Encode(snapshots()[1])
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, 4, len(data) - 3} {
		if _, err := ser.Decode(data[:n]); !errors.Is(err, ErrCorruptFrame) {
			t.Fatalf("truncated to %d bytes: expected ErrCorruptFrame, got %v", n, err)
		}
	}
}
