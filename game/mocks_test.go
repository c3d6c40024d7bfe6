package game

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/Supp140106/scribe/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- WebsocketConnection ---

type MockWebsocketConnection struct {
	mock.Mock
}

func (m *MockWebsocketConnection) Close(errCode string) {
	m.Called(errCode)
}

func (m *MockWebsocketConnection) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockWebsocketConnection) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockWebsocketConnection) Ping() error {
	args := m.Called()
	return args.Error(0)
}

// --- RandomWordsGenerator ---

type MockRandomWordsGenerator struct {
	mock.Mock
}

func (m *MockRandomWordsGenerator) Generate(count int) []string {
	args := m.Called(count)
	return args.Get(0).([]string)
}

// --- UniqueIdGenerator ---

type MockUniqueIdGenerator struct {
	mock.Mock
}

func (m *MockUniqueIdGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

type seqIdGen struct {
	prefix string
	n      int
}

func (g *seqIdGen) Generate() string {
	g.n++
	return fmt.Sprintf("%s%d", g.prefix, g.n)
}

// --- MatchRecorder / GamePublisher ---

type MockMatchRecorder struct {
	mock.Mock
}

func (m *MockMatchRecorder) RecordMatch(ctx context.Context, outcomes []domain.MatchOutcome) error {
	args := m.Called(ctx, outcomes)
	return args.Error(0)
}

type MockGamePublisher struct {
	mock.Mock
}

func (m *MockGamePublisher) PublishGameFinished(summary domain.GameSummary) error {
	args := m.Called(summary)
	return args.Error(0)
}

// --- dispatcher ---

type fakeDispatcher struct {
	envelopes    []Envelope
	disconnected []string
}

func (d *fakeDispatcher) Dispatch(env Envelope) {
	d.envelopes = append(d.envelopes, env)
}

func (d *fakeDispatcher) Disconnect(connId string) {
	d.disconnected = append(d.disconnected, connId)
}

// --- Clock ---

type fakeTimer struct {
	at      time.Time
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeClock struct {
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: c.now.Add(d), d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) pending() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// advance moves time forward, firing due timers in order.
func (c *fakeClock) advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		var next *fakeTimer
		for _, t := range c.pending() {
			if !t.at.After(target) && (next == nil || t.at.Before(next.at)) {
				next = t
			}
		}
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		next.f()
	}
	c.now = target
}

// --- Broadcaster ---

type sentFrame struct {
	to string
	ev Outbound
}

type recordingBroadcaster struct {
	members map[string]map[string]bool
	sent    []sentFrame
	dropped []string
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{members: make(map[string]map[string]bool)}
}

func (b *recordingBroadcaster) ToConn(connId string, ev Outbound) {
	b.sent = append(b.sent, sentFrame{to: connId, ev: ev})
}

func (b *recordingBroadcaster) ToRoom(roomId string, ev Outbound) {
	b.ToRoomExcept(roomId, "", ev)
}

func (b *recordingBroadcaster) ToRoomExcept(roomId, exceptConnId string, ev Outbound) {
	var ids []string
	for id := range b.members[roomId] {
		if id != exceptConnId {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		b.ToConn(id, ev)
	}
}

func (b *recordingBroadcaster) JoinRoom(connId, roomId string) {
	if b.members[roomId] == nil {
		b.members[roomId] = make(map[string]bool)
	}
	b.members[roomId][connId] = true
}

func (b *recordingBroadcaster) LeaveRoom(connId, roomId string) {
	delete(b.members[roomId], connId)
}

func (b *recordingBroadcaster) Drop(connId string) {
	b.dropped = append(b.dropped, connId)
}

func (b *recordingBroadcaster) events(connId, event string) []Outbound {
	var out []Outbound
	for _, s := range b.sent {
		if s.to == connId && s.ev.Event == event {
			out = append(out, s.ev)
		}
	}
	return out
}

func (b *recordingBroadcaster) last(connId, event string) (Outbound, bool) {
	evs := b.events(connId, event)
	if len(evs) == 0 {
		return Outbound{}, false
	}
	return evs[len(evs)-1], true
}

func (b *recordingBroadcaster) reset() {
	b.sent = nil
}

// --- engine harness ---

var testChoices = []string{"apple", "banana", "car"}

type harness struct {
	engine *Engine
	clock  *fakeClock
	out    *recordingBroadcaster
	words  *MockRandomWordsGenerator
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	words := &MockRandomWordsGenerator{}
	words.On("Generate", 3).Return(testChoices)

	clock := newFakeClock()
	out := newRecordingBroadcaster()
	e := newEngine(DefaultRules(), words, clock, &seqIdGen{prefix: "room-"}, &seqIdGen{prefix: "code"}, out)
	e.deliver = e.handleTimer
	e.background = func(f func()) { f() }
	return &harness{engine: e, clock: clock, out: out, words: words}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func (h *harness) send(t *testing.T, connId, event string, payload any) {
	t.Helper()
	h.engine.handleEnvelope(Envelope{ConnId: connId, Event: event, Data: mustJSON(t, payload)})
}

func (h *harness) connect(connId string, user domain.User) {
	h.engine.register(connId, user)
}

// seat connects and joins n guests p1..pn to the public pool.
func (h *harness) seat(t *testing.T, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("p%d", i)
		h.connect(id, domain.User{})
		h.send(t, id, EventJoin, joinPayload{Name: fmt.Sprintf("player %d", i)})
		ids = append(ids, id)
	}
	return ids
}

func (h *harness) room(t *testing.T, connId string) *Room {
	t.Helper()
	room := h.engine.registry.RoomOf(connId)
	require.NotNil(t, room)
	return room
}

func (h *harness) errorCode(t *testing.T, connId string) string {
	t.Helper()
	ev, ok := h.out.last(connId, EventError)
	require.True(t, ok, "expected an error frame for %s", connId)
	return ev.Data.(errorData).Code
}
