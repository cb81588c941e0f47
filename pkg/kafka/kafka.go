// Package kafka wraps segmentio/kafka-go with the small producer/consumer
// surface the dues engine needs: keyed publishing for domain events and a
// committing reader for the row change feed.
package kafka

// Config holds Kafka connection parameters.
type Config struct {
	ConsumerGroup string

	// SASL configuration for authentication.
	SASLMechanism string // "PLAIN" or "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	Brokers []string

	// TLS enables TLS for Kafka connections.
	TLS         bool
	SASLEnabled bool
}

// Message is a broker message decoupled from the kafka-go types.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
