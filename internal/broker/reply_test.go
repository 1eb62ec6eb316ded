package broker

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

func TestReplyQueue_CloseWithoutRelease(t *testing.T) {
	// Test fakes assemble ReplyQueue by hand; Close must tolerate that.
	rq := &ReplyQueue{Name: "reply.tmp", Deliveries: make(chan amqp.Delivery)}
	if err := rq.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConnect_BadURL(t *testing.T) {
	_, err := Connect("not-a-url", "", "")
	if err == nil {
		t.Fatal("expected error for malformed URL")
	}
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}
