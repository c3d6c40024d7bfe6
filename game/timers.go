package game

import "time"

type timerKind int

const (
	// roundTimer covers the word choice window and the drawing round.
	roundTimer timerKind = iota
	// intermissionTimer covers start delay, intermission, drawer re-entry and room teardown.
	intermissionTimer
	timerKinds
)

func (k timerKind) String() string {
	switch k {
	case roundTimer:
		return "round"
	case intermissionTimer:
		return "intermission"
	}
	return "unknown"
}

type armedTimer struct {
	handle Timer
	seq    uint64
}

// timerFired carries only identifiers; the room is looked up again on delivery.
type timerFired struct {
	roomId string
	kind   timerKind
	seq    uint64
}

func (r *Room) stopTimers() {
	for i := range r.timers {
		if r.timers[i].handle != nil {
			r.timers[i].handle.Stop()
		}
		r.timers[i] = armedTimer{}
	}
}

func (r *Room) armedTimers() int {
	n := 0
	for _, t := range r.timers {
		if t.handle != nil {
			n++
		}
	}
	return n
}

// arm cancels every pending timer of the room before scheduling the new one.
func (e *Engine) arm(r *Room, kind timerKind, d time.Duration) {
	r.stopTimers()
	e.timerSeq++
	fired := timerFired{roomId: r.id, kind: kind, seq: e.timerSeq}
	r.timers[kind] = armedTimer{
		seq:    e.timerSeq,
		handle: e.clock.AfterFunc(d, func() { e.deliver(fired) }),
	}
}

func (e *Engine) handleTimer(f timerFired) {
	room := e.registry.Get(f.roomId)
	if room == nil {
		return
	}
	armed := room.timers[f.kind]
	if armed.handle == nil || armed.seq != f.seq {
		return
	}
	room.timers[f.kind] = armedTimer{}

	switch f.kind {
	case roundTimer:
		e.onRoundTimer(room)
	case intermissionTimer:
		e.onIntermissionTimer(room)
	}
}
