package broker

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const replyConsumerTag = "amqschedctl-browse"

// ReplyQueue is a temporary, receiver-exclusive queue for browse replies.
// The consumer is bound at open time, before the browse request goes out,
// so the broker cannot start replying into a queue nobody reads.
type ReplyQueue struct {
	Name       string
	Deliveries <-chan amqp.Delivery

	release func() error
}

// OpenReplyQueue declares a server-named exclusive auto-delete queue and
// binds a consumer to it. Callers must Close it on every exit path or the
// broker keeps the temporary queue until the connection drops.
func (s *Session) OpenReplyQueue() (*ReplyQueue, error) {
	q, err := s.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: declare reply queue: %v", ErrTransport, err)
	}
	deliveries, err := s.ch.Consume(q.Name, replyConsumerTag, true, true, false, false, nil)
	if err != nil {
		_, _ = s.ch.QueueDelete(q.Name, false, false, false)
		return nil, fmt.Errorf("%w: consume reply queue %s: %v", ErrTransport, q.Name, err)
	}

	return &ReplyQueue{
		Name:       q.Name,
		Deliveries: deliveries,
		release: func() error {
			err := s.ch.Cancel(replyConsumerTag, false)
			if _, derr := s.ch.QueueDelete(q.Name, false, false, false); err == nil {
				err = derr
			}
			return err
		},
	}, nil
}

// Close cancels the consumer and deletes the temporary queue. Safe on a
// ReplyQueue assembled by hand in tests (no release func).
func (r *ReplyQueue) Close() error {
	if r.release == nil {
		return nil
	}
	return r.release()
}
