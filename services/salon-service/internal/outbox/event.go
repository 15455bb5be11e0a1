package outbox

// Event is the envelope written to the outbox table inside the same
// transaction as the salon state change. The Kafka topic name equals
// EventType (event per topic).
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}
