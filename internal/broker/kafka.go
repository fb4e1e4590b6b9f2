package broker

import (
	"time"

	"petcare-wallet/internal/config"

	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter builds the producer used by the API to queue wallet
// operations. Messages are keyed by wallet id, so the hash balancer keeps
// all operations of one wallet on one partition.
func NewKafkaWriter(cfg config.KafkaConfig) (*kafka.Writer, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		MaxAttempts:  10,
		WriteTimeout: 10 * time.Second,
	}

	return writer, nil
}
