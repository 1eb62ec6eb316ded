package sched

import (
	"context"
	"errors"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrStreamClosed reports that the reply stream closed underneath the
// collector (consumer cancelled, channel or connection lost) before the
// silence heuristic ended it.
var ErrStreamClosed = errors.New("scheduler reply stream closed")

// Timeout defaults. The first reply can lag behind the browse request by
// broker dispatch and network latency, so the first wait is much longer
// than the waits between consecutive replies. Both are tunables, not a
// protocol guarantee: the browse stream has no end marker and silence is
// the only termination signal.
const (
	DefaultInitialTimeout = 5 * time.Second
	DefaultReceiveTimeout = 200 * time.Millisecond
)

// Collector drains one browse reply stream into JobRefs. It is single-use:
// each browse allocates a fresh reply queue and the collector consumes it
// exactly once, ending on the first receive timeout.
type Collector struct {
	Deliveries     <-chan amqp.Delivery
	InitialTimeout time.Duration
	ReceiveTimeout time.Duration
	Logger         *slog.Logger
}

// Drain receives replies until silence, decoding each into a JobRef and
// passing it to fn in arrival order. A malformed reply is logged and
// skipped; one corrupt record must not hide the rest of the scheduler
// store. Returns the number of records yielded. An error from fn aborts
// the drain and is returned as-is.
func (c *Collector) Drain(ctx context.Context, fn func(JobRef) error) (int, error) {
	initial := c.InitialTimeout
	if initial <= 0 {
		initial = DefaultInitialTimeout
	}
	subsequent := c.ReceiveTimeout
	if subsequent <= 0 {
		subsequent = DefaultReceiveTimeout
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timer := time.NewTimer(initial)
	defer timer.Stop()

	count := 0
	for {
		select {
		case <-ctx.Done():
			return count, ctx.Err()
		case <-timer.C:
			// Silence: the broker has nothing more to replay.
			return count, nil
		case d, ok := <-c.Deliveries:
			if !ok {
				return count, ErrStreamClosed
			}
			ref, err := DecodeReply(d)
			if err != nil {
				logger.Warn("reply_decode_failed", slog.Any("err", err))
			} else {
				if err := fn(ref); err != nil {
					return count, err
				}
				count++
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(subsequent)
		}
	}
}
