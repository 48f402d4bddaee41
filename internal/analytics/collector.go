package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
)

// Publisher ships a batch of events. *kafka.Producer implements it.
type Publisher interface {
	PublishBatch(ctx context.Context, events []kafka.Event) error
}

// Sink receives every tracked event in process, before publishing.
type Sink interface {
	Record(event any)
}

type event interface{ key() string }

// Collector buffers events on a channel and publishes them in batches,
// flushing when a batch fills or the flush interval passes. Track never
// blocks: a full buffer drops the event.
type Collector struct {
	publisher     Publisher
	sinks         []Sink
	eventCh       chan event
	batchSize     int
	flushInterval time.Duration
	logger        *slog.Logger
	done          chan struct{}
	closeOnce     sync.Once
}

func NewCollector(publisher Publisher, bufferSize, batchSize int, flushInterval time.Duration, sinks ...Sink) *Collector {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	if flushInterval <= 0 {
		flushInterval = 2 * time.Second
	}
	return &Collector{
		publisher:     publisher,
		sinks:         sinks,
		eventCh:       make(chan event, bufferSize),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		logger:        logger.WithComponent("analytics-collector"),
		done:          make(chan struct{}),
	}
}

// Start runs the publish loop until Close is called.
func (c *Collector) Start(ctx context.Context) {
	go c.run(context.WithoutCancel(ctx))
	c.logger.Info("analytics collector started",
		"buffer_size", cap(c.eventCh),
		"batch_size", c.batchSize,
		"flush_interval", c.flushInterval,
	)
}

func (c *Collector) run(ctx context.Context) {
	defer close(c.done)
	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	batch := make([]kafka.Event, 0, c.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := c.publisher.PublishBatch(ctx, batch); err != nil {
			c.logger.Error("failed to publish analytics batch", "count", len(batch), "error", err)
		}
		batch = batch[:0]
	}
	for {
		select {
		case ev, ok := <-c.eventCh:
			if !ok {
				flush()
				return
			}
			batch = append(batch, kafka.Event{Key: ev.key(), Value: ev})
			if len(batch) >= c.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (c *Collector) TrackSearch(ev SearchEvent) {
	ev.Type = EventSearch
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	c.track(ev)
}

// DocumentIndexed lets the collector observe an index build.
func (c *Collector) DocumentIndexed(_ context.Context, docID string, keywords, occurrences int, elapsed time.Duration) {
	c.track(IndexEvent{
		Type:        EventIndexDoc,
		DocumentID:  docID,
		Keywords:    keywords,
		Occurrences: occurrences,
		LatencyUs:   elapsed.Microseconds(),
		Timestamp:   time.Now().UTC(),
	})
}

func (c *Collector) track(ev event) {
	for _, s := range c.sinks {
		s.Record(ev)
	}
	select {
	case c.eventCh <- ev:
	default:
		c.logger.Warn("analytics event dropped (buffer full)")
	}
}

// Close stops accepting events, flushes what is buffered and waits for the
// publish loop to finish. Start must have been called.
func (c *Collector) Close() {
	c.closeOnce.Do(func() {
		close(c.eventCh)
		<-c.done
	})
}
