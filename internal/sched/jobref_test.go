package sched

import (
	"errors"
	"reflect"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

func TestDecodeReply(t *testing.T) {
	d := amqp.Delivery{
		Headers: amqp.Table{
			ScheduledIDHeader: "job-7",
			DestinationHeader: "orders",
			"retry-count":     int32(3),
		},
		Body: []byte("payload"),
	}

	ref, err := DecodeReply(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "job-7" {
		t.Fatalf("expected id job-7, got %q", ref.ID)
	}
	if ref.Destination != "orders" {
		t.Fatalf("expected destination orders, got %q", ref.Destination)
	}
	if got := ref.Properties["retry-count"]; got != "3" {
		t.Fatalf("expected retry-count property 3, got %q", got)
	}
	if string(ref.Payload) != "payload" {
		t.Fatalf("expected payload bytes, got %q", ref.Payload)
	}
}

func TestDecodeReply_MissingDestination(t *testing.T) {
	d := amqp.Delivery{Headers: amqp.Table{ScheduledIDHeader: "job-1"}}
	ref, err := DecodeReply(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Destination != UnknownDestination {
		t.Fatalf("expected %q bucket, got %q", UnknownDestination, ref.Destination)
	}
}

func TestDecodeReply_MissingID(t *testing.T) {
	cases := []amqp.Table{
		nil,
		{},
		{ScheduledIDHeader: ""},
		{ScheduledIDHeader: int64(5)},
	}
	for i, headers := range cases {
		if _, err := DecodeReply(amqp.Delivery{Headers: headers}); !errors.Is(err, ErrDecode) {
			t.Fatalf("case %d: expected ErrDecode, got %v", i, err)
		}
	}
}

func TestDecodeReply_Pure(t *testing.T) {
	d := amqp.Delivery{
		Headers: amqp.Table{
			ScheduledIDHeader: "job-9",
			DestinationHeader: "billing",
			"delay":           int64(60000),
		},
		Body: []byte{0x01, 0x02},
	}
	a, err := DecodeReply(d)
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	b, err := DecodeReply(d)
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("decode is not pure:\n%+v\n%+v", a, b)
	}
}
