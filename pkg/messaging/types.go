package messaging

import (
	"time"
)

// Kind names what an agent just did.
type Kind string

const (
	KindPerceive Kind = "perceive"
	KindUpdate   Kind = "update"
	KindDecide   Kind = "decide"
)

// Message is an agent event routed through the broker
type Message struct {
	From      string    // Agent ID of sender
	Name      string    // Display name of sender
	Kind      Kind      // What happened
	To        []string  // Subscriber IDs (empty means broadcast)
	Content   any       // Percept, record snapshot or action
	Timestamp time.Time // When the event happened
}

// Broker handles routing of agent events to observers
type Broker interface {
	// Publish sends a message to specified recipients
	Publish(msg Message) error
	// Subscribe registers a subscriber, optionally limited to some kinds
	Subscribe(id string, ch chan<- Message, kinds ...Kind) error
	// Unsubscribe removes a subscription
	Unsubscribe(id string) error
}
