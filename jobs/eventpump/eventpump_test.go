package eventpump

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"pygc/infra/debuglog"
	"pygc/infra/events"
)

func TestPumpFormatsCollectionEvents(t *testing.T) {
	var buf bytes.Buffer
	log := debuglog.New(&buf)
	log.SetFlags(debuglog.FlagStats)

	bus := events.NewBus()
	p := New(bus, log, 8)
	p.Start(context.Background())

	bus.Publish(events.Event{
		Type:          events.TypeCollection,
		Generation:    1,
		Candidates:    12,
		Reclaimed:     7,
		Promoted:      5,
		Uncollectable: 1,
		Seq:           42,
	})
	bus.Close()
	p.done.Wait() // loop exits once the closed channel drains

	out := buf.String()
	for _, want := range []string{"collection", "generation=1", "reclaimed=7", "promoted=5", "seq=42"} {
		if !strings.Contains(out, want) {
			t.Fatalf("pump output missing %q:\n%s", want, out)
		}
	}
}

func TestPumpSilentWithoutStatsFlag(t *testing.T) {
	var buf bytes.Buffer
	log := debuglog.New(&buf)

	bus := events.NewBus()
	p := New(bus, log, 8)
	p.Start(context.Background())

	bus.Publish(events.Event{Type: events.TypeCollection, Generation: 0})
	bus.Publish(events.Event{Type: events.TypeClear, Reclaimed: 3})
	bus.Close()
	p.done.Wait()

	if buf.Len() != 0 {
		t.Fatalf("expected no output with stats flag clear, got %q", buf.String())
	}
}

func TestPumpStopBeforeBusClose(t *testing.T) {
	var buf bytes.Buffer
	log := debuglog.New(&buf)
	log.SetFlags(debuglog.FlagStats)

	bus := events.NewBus()
	p := New(bus, log, 8)
	p.Start(context.Background())
	p.Stop() // must return even though the bus is still open
	bus.Close()
}
