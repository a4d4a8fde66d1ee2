package wire

import "google.golang.org/protobuf/encoding/protowire"

// Field numbers, mirroring gc.proto.
const (
	fieldSeq           = 1
	fieldTime          = 2
	fieldTotal         = 3
	fieldGenCounts     = 4
	fieldUncollectable = 5
)

// ProtoSerializer implements Serializer using the protobuf wire format.
type ProtoSerializer struct{}

func (ProtoSerializer) Encode(s *Snapshot) ([]byte, error) {
	var body []byte
	body = protowire.AppendTag(body, fieldSeq, protowire.VarintType)
	body = protowire.AppendVarint(body, s.Seq)
	body = protowire.AppendTag(body, fieldTime, protowire.VarintType)
	body = protowire.AppendVarint(body, uint64(s.Time))
	body = protowire.AppendTag(body, fieldTotal, protowire.VarintType)
	body = protowire.AppendVarint(body, uint64(s.TotalTracked))

	var packed []byte
	for _, c := range s.GenCounts {
		packed = protowire.AppendVarint(packed, uint64(c))
	}
	body = protowire.AppendTag(body, fieldGenCounts, protowire.BytesType)
	body = protowire.AppendBytes(body, packed)

	body = protowire.AppendTag(body, fieldUncollectable, protowire.VarintType)
	body = protowire.AppendVarint(body, uint64(s.Uncollectable))
	return frame(body), nil
}

func (ProtoSerializer) Decode(data []byte) (*Snapshot, error) {
	body, err := unframe(data)
	if err != nil {
		return nil, err
	}
	s := &Snapshot{}
	for len(body) > 0 {
		num, typ, n := protowire.ConsumeTag(body)
		if n < 0 {
			return nil, ErrCorruptFrame
		}
		body = body[n:]
		switch {
		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(body)
			if n < 0 {
				return nil, ErrCorruptFrame
			}
			body = body[n:]
			switch num {
			case fieldSeq:
				s.Seq = v
			case fieldTime:
				s.Time = int64(v)
			case fieldTotal:
				s.TotalTracked = int64(v)
			case fieldUncollectable:
				s.Uncollectable = int64(v)
			}
		case typ == protowire.BytesType && num == fieldGenCounts:
			packed, n := protowire.ConsumeBytes(body)
			if n < 0 {
				return nil, ErrCorruptFrame
			}
			body = body[n:]
			for i := 0; len(packed) > 0; i++ {
				v, n := protowire.ConsumeVarint(packed)
				if n < 0 {
					return nil, ErrCorruptFrame
				}
				packed = packed[n:]
				if i < len(s.GenCounts) {
					s.GenCounts[i] = int64(v)
				}
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, body)
			if n < 0 {
				return nil, ErrCorruptFrame
			}
			body = body[n:]
		}
	}
	return s, nil
}
