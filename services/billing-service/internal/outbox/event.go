package outbox

// Event is a billing state change staged in the outbox table for the
// publisher. Each EventType maps one-to-one onto a Kafka topic.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

