package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/messaging"
)

// PublishedEvent is one event as the broker would have received it.
// PartitionKey is the patient id for keyed events.
type PublishedEvent struct {
	RoutingKey   string
	PartitionKey string
	EventData    interface{}
	RawJSON      []byte
}

// MockPublisher is an in-memory messaging.PublisherInterface. Events must
// marshal to JSON, as they would for a real broker.
type MockPublisher struct {
	mu     sync.RWMutex
	events []PublishedEvent
	err    error
	closed bool
}

var _ messaging.PublisherInterface = (*MockPublisher)(nil)

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(_ context.Context, routingKey string, eventData interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	raw, err := json.Marshal(eventData)
	if err != nil {
		return err
	}
	ev := PublishedEvent{RoutingKey: routingKey, EventData: eventData, RawJSON: raw}
	if k, ok := eventData.(messaging.Keyed); ok {
		ev.PartitionKey = k.PartitionKey()
	}
	m.events = append(m.events, ev)
	return nil
}

// FailWith makes every later Publish return err; nil restores success.
func (m *MockPublisher) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockPublisher) GetAllEvents() []PublishedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]PublishedEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockPublisher) GetEventCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

// EventsFor returns the events published for one patient, in order.
func (m *MockPublisher) EventsFor(patientID string) []PublishedEvent {
	return m.filter(func(e PublishedEvent) bool { return e.PartitionKey == patientID })
}

func (m *MockPublisher) GetLastEvent() *PublishedEvent {
	return m.last(func(PublishedEvent) bool { return true })
}

func (m *MockPublisher) GetLastEventByKey(routingKey string) *PublishedEvent {
	return m.last(func(e PublishedEvent) bool { return e.RoutingKey == routingKey })
}

func (m *MockPublisher) AssertEventPublished(t *testing.T, routingKey string) {
	t.Helper()
	if m.countKey(routingKey) == 0 {
		t.Errorf("Expected a %s event, got none", routingKey)
	}
}

func (m *MockPublisher) AssertEventNotPublished(t *testing.T, routingKey string) {
	t.Helper()
	if n := m.countKey(routingKey); n != 0 {
		t.Errorf("Expected no %s event, got %d", routingKey, n)
	}
}

func (m *MockPublisher) AssertEventCount(t *testing.T, routingKey string, expected int) {
	t.Helper()
	if n := m.countKey(routingKey); n != expected {
		t.Errorf("Expected %d %s events, got %d", expected, routingKey, n)
	}
}

func (m *MockPublisher) countKey(routingKey string) int {
	return len(m.filter(func(e PublishedEvent) bool { return e.RoutingKey == routingKey }))
}

func (m *MockPublisher) filter(keep func(PublishedEvent) bool) []PublishedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []PublishedEvent
	for _, e := range m.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (m *MockPublisher) last(keep func(PublishedEvent) bool) *PublishedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.events) - 1; i >= 0; i-- {
		if keep(m.events[i]) {
			e := m.events[i]
			return &e
		}
	}
	return nil
}
