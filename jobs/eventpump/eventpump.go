package eventpump

import (
	"context"
	"sync"

	"pygc/infra/debuglog"
	"pygc/infra/events"
)

// Pump drains the event bus into the debug log. It exists so that
// collection cycles never write diagnostics inline; they publish and
// move on, and the pump formats at its own pace.
type Pump struct {
	ch  <-chan events.Event
	log *debuglog.Logger

	cancel context.CancelFunc
	done   sync.WaitGroup
}

func New(bus *events.Bus, log *debuglog.Logger, buffer int) *Pump {
	return &Pump{
		ch:  bus.Subscribe(buffer),
		log: log,
	}
}

// Start launches the drain loop.
func (p *Pump) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done.Add(1)
	go func() {
		defer p.done.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-p.ch:
				if !ok {
					return
				}
				p.emit(ev)
			}
		}
	}()
}

func (p *Pump) emit(ev events.Event) {
	switch ev.Type {
	case events.TypeCollection:
		p.log.Log(debuglog.FlagStats, "collection",
			"generation", ev.Generation,
			"candidates", ev.Candidates,
			"reclaimed", ev.Reclaimed,
			"promoted", ev.Promoted,
			"uncollectable", ev.Uncollectable,
			"seq", ev.Seq,
		)
	case events.TypeClear:
		p.log.Log(debuglog.FlagStats, "registry cleared",
			"dropped", ev.Reclaimed,
			"seq", ev.Seq,
		)
	}
}

// Stop halts the loop and waits for it to exit.
func (p *Pump) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.done.Wait()
}
