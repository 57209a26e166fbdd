// Package eventbus provides a small in-process publish/subscribe bus
// used to decouple the analysis pipeline from reactive behaviors like
// automatic evidence collection.
package eventbus

import (
	"log"
	"sync"
)

// Topic names published by the system
const (
	TopicThreatDetected = "THREAT_DETECTED"
	TopicScanCompleted  = "SCAN_COMPLETED"
	TopicEmergency      = "EMERGENCY"
)

// Event is a published message on a topic
type Event struct {
	Topic   string
	Payload map[string]any
}

// Handler is invoked synchronously for each event on a subscribed topic
type Handler func(event Event)

// Bus is a synchronous fan-out event bus. Handlers run on the
// publishing goroutine, in subscription order
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// New creates an empty bus
func New() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Subscribe registers a handler for a topic
func (b *Bus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish delivers an event to every handler subscribed to its topic
func (b *Bus) Publish(topic string, payload map[string]any) {
	b.mu.RLock()
	handlers := b.handlers[topic]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	log.Printf("[EVENT_BUS]: publishing %s to %d subscriber(s)", topic, len(handlers))
	for _, handler := range handlers {
		handler(Event{Topic: topic, Payload: payload})
	}
}
