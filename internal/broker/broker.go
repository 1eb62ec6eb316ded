// Package broker handles the AMQP transport used to reach the broker
// scheduler: connection bootstrap, the management-address send path and
// temporary reply queues for browse responses.
//
// The scheduler is local to one broker. In a cluster every broker holds
// its own scheduler store, so operators must address each broker in turn.
package broker

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ManagementAddress is the well-known address the broker scheduler
// listens on for control messages.
const ManagementAddress = "ActiveMQ.Scheduler.Management"

// ErrTransport wraps any connection, channel or publish failure. Commands
// are never retried on it: a duplicate remove is harmless but a duplicate
// browse creates a second reply stream, so retry policy stays with the
// operator.
var ErrTransport = errors.New("broker transport failure")

type Session struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Connect dials the broker and opens the channel the invocation will use.
// Credentials are optional; when user is empty the URL's own credentials
// (or the broker default) apply.
func Connect(url, user, password string) (*Session, error) {
	var cfg amqp.Config
	if user != "" {
		cfg.SASL = []amqp.Authentication{&amqp.PlainAuth{Username: user, Password: password}}
	}
	conn, err := amqp.DialConfig(url, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrTransport, url, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrTransport, err)
	}
	return &Session{conn: conn, ch: ch}, nil
}

// Send publishes one control message to the scheduler management address
// on a short-lived channel and releases the channel again. This is the
// whole exchange for mutation commands: the scheduler never acknowledges
// them, so transport-level success is all a caller can learn.
func (s *Session) Send(ctx context.Context, replyTo string, headers amqp.Table) error {
	ch, err := s.conn.Channel()
	if err != nil {
		return fmt.Errorf("%w: open send channel: %v", ErrTransport, err)
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx, "", ManagementAddress, false, false, amqp.Publishing{
		Headers: headers,
		ReplyTo: replyTo,
	})
	if err != nil {
		return fmt.Errorf("%w: publish to %s: %v", ErrTransport, ManagementAddress, err)
	}
	return nil
}

// Close releases the channel and connection, ignoring secondary errors.
func (s *Session) Close() {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}
