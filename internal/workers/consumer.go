package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"outreach-server/internal/observability"

	kafkago "github.com/segmentio/kafka-go"
)

const fetchRetryDelay = time.Second

type ConsumerConfig struct {
	Brokers       []string
	ConsumerGroup string
	Topic         string
	NumWorkers    int
	QueueSize     int
	// DrainTimeout bounds how long Start waits for in-flight events after Stop
	DrainTimeout time.Duration
}

func DefaultConsumerConfig(brokers []string, consumerGroup, topic string) ConsumerConfig {
	return ConsumerConfig{
		Brokers:       brokers,
		ConsumerGroup: consumerGroup,
		Topic:         topic,
		NumWorkers:    4,
		QueueSize:     50,
		DrainTimeout:  15 * time.Second,
	}
}

func (c ConsumerConfig) withDefaults() ConsumerConfig {
	if c.NumWorkers <= 0 {
		c.NumWorkers = 4
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 50
	}
	if c.DrainTimeout <= 0 {
		c.DrainTimeout = 15 * time.Second
	}
	return c
}

type delivery struct {
	event EventMessage
	msg   kafkago.Message
}

type consumer struct {
	config    ConsumerConfig
	reader    MessageReader
	processor EventProcessor
	logger    *observability.Logger

	queue chan delivery

	stop     chan struct{}
	done     chan struct{}
	started  atomic.Bool
	stopping atomic.Bool
	stopOnce sync.Once
}

// NewConsumer reads config.Topic as config.ConsumerGroup and commits each
// offset only after the processor accepts the event.
func NewConsumer(config ConsumerConfig, processor EventProcessor, logger *observability.Logger) EventConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.ConsumerGroup,
		MinBytes:       1,
		MaxBytes:       10e6,
		StartOffset:    kafkago.FirstOffset,
		CommitInterval: 0,
	})
	return newConsumer(config, reader, processor, logger)
}

func newConsumer(config ConsumerConfig, reader MessageReader, processor EventProcessor, logger *observability.Logger) *consumer {
	config = config.withDefaults()
	return &consumer{
		config:    config,
		reader:    reader,
		processor: processor,
		logger:    logger,
		queue:     make(chan delivery, config.QueueSize),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (c *consumer) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("%s consumer already started", c.processor.Name())
	}
	defer close(c.done)

	// the fetch loop outlives the caller's ctx; only Stop ends it
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	go func() {
		select {
		case <-c.stop:
			cancel()
		case <-fetchCtx.Done():
		}
	}()
	fetchCtx = observability.WithFields(fetchCtx,
		observability.Field{Key: "processor", Value: c.processor.Name()},
		observability.Field{Key: "consumer_group", Value: c.config.ConsumerGroup},
		observability.Field{Key: "topic", Value: c.config.Topic},
	)

	c.logger.Info(fetchCtx, fmt.Sprintf("starting %s consumer with %d workers", c.processor.Name(), c.config.NumWorkers))

	var wg sync.WaitGroup
	for i := 0; i < c.config.NumWorkers; i++ {
		wg.Add(1)
		go c.work(fetchCtx, &wg, i)
	}

	c.fetch(fetchCtx)
	close(c.queue)

	drained := make(chan struct{})
	go func() {
		wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-time.After(c.config.DrainTimeout):
		c.logger.Warn(fetchCtx, "drain timeout reached with events still in flight")
	}

	if err := c.reader.Close(); err != nil {
		c.logger.Error(fetchCtx, "failed to close kafka reader", err)
	}
	c.logger.Info(fetchCtx, fmt.Sprintf("%s consumer stopped", c.processor.Name()))
	return nil
}

func (c *consumer) fetch(ctx context.Context) {
	for !c.stopping.Load() {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if c.stopping.Load() || ctx.Err() != nil {
				return
			}
			c.logger.Error(ctx, "failed to fetch message", err)
			select {
			case <-time.After(fetchRetryDelay):
			case <-ctx.Done():
				return
			}
			continue
		}

		var event EventMessage
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// a poison message would otherwise block the partition
			c.logger.Error(ctx, "skipping undecodable message", err)
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error(ctx, "failed to commit skipped message", err)
			}
			continue
		}

		select {
		case c.queue <- delivery{event: event, msg: msg}:
		case <-ctx.Done():
			return
		}
	}
}

func (c *consumer) work(ctx context.Context, wg *sync.WaitGroup, id int) {
	defer wg.Done()
	// queued events finish even after Stop cancels fetching
	ctx = observability.WithFields(context.WithoutCancel(ctx), observability.Field{Key: "worker_id", Value: id})

	for d := range c.queue {
		eventCtx := observability.WithFields(ctx,
			observability.Field{Key: "event_id", Value: d.event.ID},
			observability.Field{Key: "event_type", Value: d.event.Type},
		)

		if err := c.processor.Process(eventCtx, d.event); err != nil {
			observability.EventsProcessed.WithLabelValues(c.processor.Name(), "error").Inc()
			c.logger.Error(eventCtx, "failed to process event", err)
			continue
		}
		observability.EventsProcessed.WithLabelValues(c.processor.Name(), "ok").Inc()
		c.logger.Debug(eventCtx, "event processed")

		if err := c.reader.CommitMessages(eventCtx, d.msg); err != nil {
			c.logger.Error(eventCtx, "failed to commit offset", err)
		}
	}
}

// Stop ends fetching, waits for queued events and closes the reader. It is
// safe to call more than once.
func (c *consumer) Stop() {
	c.stopOnce.Do(func() {
		c.stopping.Store(true)
		close(c.stop)
		if c.started.Load() {
			<-c.done
		}
	})
}
