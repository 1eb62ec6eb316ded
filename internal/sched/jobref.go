package sched

import (
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrDecode = errors.New("malformed scheduler reply")

// JobRef is the decoded view of one scheduled job as replayed by the
// broker. It lives only for the duration of one collection pass.
type JobRef struct {
	ID          string
	Destination string
	Properties  map[string]string
	Payload     []byte
}

// DecodeReply decodes one browse reply. Decoding is pure: the same
// delivery always yields the same JobRef. A reply without a usable
// scheduled-id is malformed; a missing original-destination degrades to
// UnknownDestination instead (older brokers never set it).
func DecodeReply(d amqp.Delivery) (JobRef, error) {
	id, ok := headerString(d.Headers, ScheduledIDHeader)
	if !ok || id == "" {
		return JobRef{}, fmt.Errorf("%w: missing %s property", ErrDecode, ScheduledIDHeader)
	}

	dest := UnknownDestination
	if v, ok := headerString(d.Headers, DestinationHeader); ok && v != "" {
		dest = v
	}

	props := make(map[string]string, len(d.Headers))
	for name, value := range d.Headers {
		props[name] = stringifyHeader(value)
	}

	return JobRef{
		ID:          id,
		Destination: dest,
		Properties:  props,
		Payload:     d.Body,
	}, nil
}

func headerString(t amqp.Table, name string) (string, bool) {
	v, ok := t[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func stringifyHeader(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}
