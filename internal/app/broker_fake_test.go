package app

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/wramner/amqschedctl/internal/broker"
)

var errTransportTest = errors.New("broker unreachable")

type sentMessage struct {
	ReplyTo string
	Headers amqp.Table
}

// fakeSession stands in for a broker connection. Deliveries preloaded
// into replies are what a browse will collect.
type fakeSession struct {
	sent       []sentMessage
	replies    chan amqp.Delivery
	connectErr error
	sendErr    error
	openErr    error
	closed     bool

	gotURL      string
	gotUser     string
	gotPassword string
}

func (f *fakeSession) Send(_ context.Context, replyTo string, headers amqp.Table) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMessage{ReplyTo: replyTo, Headers: headers})
	return nil
}

func (f *fakeSession) OpenReplyQueue() (*broker.ReplyQueue, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &broker.ReplyQueue{Name: "reply.tmp", Deliveries: f.replies}, nil
}

func (f *fakeSession) Close() { f.closed = true }

func installFakeSession(t *testing.T, f *fakeSession) {
	t.Helper()
	prev := connectBroker
	connectBroker = func(url, user, password string) (brokerSession, error) {
		f.gotURL, f.gotUser, f.gotPassword = url, user, password
		if f.connectErr != nil {
			return nil, f.connectErr
		}
		return f, nil
	}
	t.Cleanup(func() { connectBroker = prev })
}

func scheduledReply(id, dest string) amqp.Delivery {
	return amqp.Delivery{Headers: amqp.Table{
		"scheduled-id":         id,
		"original-destination": dest,
	}}
}
