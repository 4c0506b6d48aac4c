package messaging

import (
	"fmt"
	"sync"
)

type subscription struct {
	ch    chan<- Message
	kinds map[Kind]bool // nil accepts every kind
}

func (s subscription) accepts(k Kind) bool {
	return s.kinds == nil || s.kinds[k]
}

// SimpleBroker implements the Broker interface in process.
type SimpleBroker struct {
	subscribers map[string]subscription
	mu          sync.RWMutex
}

// NewBroker creates a new message broker
func NewBroker() *SimpleBroker {
	return &SimpleBroker{
		subscribers: make(map[string]subscription),
	}
}

// Publish delivers msg to its recipients, or to every other subscriber when
// To is empty. Delivery never blocks: a full channel is reported as an error
// after the remaining recipients have been served.
func (b *SimpleBroker) Publish(msg Message) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	recipients := msg.To
	if len(recipients) == 0 {
		for id := range b.subscribers {
			if id != msg.From {
				recipients = append(recipients, id)
			}
		}
	}

	var full []string
	for _, id := range recipients {
		sub, ok := b.subscribers[id]
		if !ok || !sub.accepts(msg.Kind) {
			continue
		}

		select {
		case sub.ch <- msg:
		default:
			full = append(full, id)
		}
	}

	if len(full) > 0 {
		return fmt.Errorf("dropped %s event for full subscribers %v", msg.Kind, full)
	}
	return nil
}

// Subscribe registers ch under id. With no kinds given every event is
// delivered.
func (b *SimpleBroker) Subscribe(id string, ch chan<- Message, kinds ...Kind) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[id]; exists {
		return fmt.Errorf("subscriber %s is already subscribed", id)
	}

	sub := subscription{ch: ch}
	if len(kinds) > 0 {
		sub.kinds = make(map[Kind]bool, len(kinds))
		for _, k := range kinds {
			sub.kinds[k] = true
		}
	}
	b.subscribers[id] = sub
	return nil
}

// Unsubscribe removes a subscription
func (b *SimpleBroker) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[id]; !exists {
		return fmt.Errorf("subscriber %s is not subscribed", id)
	}

	delete(b.subscribers, id)
	return nil
}

func (b *SimpleBroker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = make(map[string]subscription)
}
