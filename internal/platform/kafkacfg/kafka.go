package kafkacfg

import (
	"strings"

	"github.com/segmentio/kafka-go"
)

// NewWriter builds a Kafka writer for the given topic. brokers is a
// comma-separated list; an empty list yields nil, which disables publishing.
func NewWriter(brokers, topic string) *kafka.Writer {
	if brokers == "" {
		return nil
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{}, // Balancer for selecting partition
		AllowAutoTopicCreation: true,
	}
}
