package wire

// Snapshot is one point-in-time statistics record. GenCounts is indexed
// by generation, youngest first.
type Snapshot struct {
	Seq           uint64
	Time          int64
	TotalTracked  int64
	GenCounts     [3]int64
	Uncollectable int64
}
