package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IBM/sarama"

	"schoolindex/internal/school"
	"schoolindex/sink"
)

const defaultBatch = 500

type Config struct {
	Brokers   []string `yaml:"brokers"`
	Topic     string   `yaml:"topic"`
	Acks      int16    `yaml:"required_acks"` // 0,1,-1
	Version   string   `yaml:"version"`
	ClientID  string   `yaml:"client_id"`
	BatchSize int      `yaml:"batch_size"` // messages per SendMessages call
}

type producerFunc func(addrs []string, sc *sarama.Config) (sarama.SyncProducer, error)

type driver struct {
	cfg Config
	p   sarama.SyncProducer

	newProducer producerFunc
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-sink: want Config, got %T", c)
	}
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return errors.New("kafka-sink: brokers and topic are required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatch
	}
	d.cfg = cfg

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Acks)
	sc.Producer.Return.Successes = true
	if cfg.ClientID != "" {
		sc.ClientID = cfg.ClientID
	}
	if cfg.Version != "" {
		ver, err := sarama.ParseKafkaVersion(cfg.Version)
		if err != nil {
			return err
		}
		sc.Version = ver
	}

	mk := d.newProducer
	if mk == nil {
		mk = sarama.NewSyncProducer
	}
	var err error
	d.p, err = mk(cfg.Brokers, sc)
	return err
}

// Write publishes one message per entry: key is the entry value, payload the
// entry as JSON.
func (d *driver) Write(ctx context.Context, entries []school.Entry) error {
	dest := "kafka:" + d.cfg.Topic
	batch := make([]*sarama.ProducerMessage, 0, min(d.cfg.BatchSize, len(entries)))
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := d.p.SendMessages(batch); err != nil {
			return &school.IOWriteError{Dest: dest, Err: err}
		}
		batch = batch[:0]
		return nil
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := json.Marshal(e)
		if err != nil {
			return &school.IOWriteError{Dest: dest, Err: err}
		}
		batch = append(batch, &sarama.ProducerMessage{
			Topic: d.cfg.Topic,
			Key:   sarama.StringEncoder(e.Value),
			Value: sarama.ByteEncoder(payload),
		})
		if len(batch) >= d.cfg.BatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func (d *driver) Close() error {
	if d.p == nil {
		return nil
	}
	err := d.p.Close()
	d.p = nil
	return err
}

func init() { sink.Register("kafka", func() sink.Adapter { return &driver{} }) }
