package sched

import (
	"errors"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Wire-level property names and action values recognized by the broker
// scheduler. These must match the broker exactly.
const (
	ActionHeader      = "scheduler-action"
	ScheduledIDHeader = "scheduled-id"
	DestinationHeader = "original-destination"

	actionBrowse    = "BROWSE"
	actionRemove    = "REMOVE"
	actionRemoveAll = "REMOVEALL"
)

// UnknownDestination is the bucket used for replies that carry no
// original-destination property (older brokers omit it).
const UnknownDestination = "<unknown>"

var ErrInvalidCommand = errors.New("invalid scheduler command")

type Action string

const (
	ActionBrowse    Action = "browse"
	ActionRemoveOne Action = "remove-one"
	ActionRemoveAll Action = "remove-all"
)

// Command is the validated, single-variant instruction for one invocation.
// JobID is set only for ActionRemoveOne.
type Command struct {
	Action Action
	JobID  string
}

func (c Command) Validate() error {
	switch c.Action {
	case ActionBrowse, ActionRemoveAll:
		if c.JobID != "" {
			return fmt.Errorf("%w: %s takes no job id", ErrInvalidCommand, c.Action)
		}
		return nil
	case ActionRemoveOne:
		if strings.TrimSpace(c.JobID) == "" {
			return fmt.Errorf("%w: remove requires a job id", ErrInvalidCommand)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidCommand, string(c.Action))
	}
}

// ControlMessage is one control-plane message bound for the scheduler
// management address. ReplyTo is set only for browse.
type ControlMessage struct {
	Headers amqp.Table
	ReplyTo string
}

// BuildBrowse constructs the browse request. The broker streams copies of
// all pending scheduled jobs to replyAddr, which must already have a bound
// consumer before this message is sent.
func BuildBrowse(replyAddr string) ControlMessage {
	return ControlMessage{
		Headers: amqp.Table{ActionHeader: actionBrowse},
		ReplyTo: replyAddr,
	}
}

// BuildRemove constructs the request to remove one scheduled job by id.
func BuildRemove(jobID string) (ControlMessage, error) {
	if strings.TrimSpace(jobID) == "" {
		return ControlMessage{}, fmt.Errorf("%w: remove requires a job id", ErrInvalidCommand)
	}
	return ControlMessage{
		Headers: amqp.Table{
			ActionHeader:      actionRemove,
			ScheduledIDHeader: jobID,
		},
	}, nil
}

// BuildRemoveAll constructs the request to drop every scheduled job on the
// broker. Like remove, this is fire-and-forget: the scheduler never
// acknowledges mutations.
func BuildRemoveAll() ControlMessage {
	return ControlMessage{
		Headers: amqp.Table{ActionHeader: actionRemoveAll},
	}
}

// Build maps a validated Command to its wire message. replyAddr is used
// only for browse.
func Build(cmd Command, replyAddr string) (ControlMessage, error) {
	if err := cmd.Validate(); err != nil {
		return ControlMessage{}, err
	}
	switch cmd.Action {
	case ActionBrowse:
		return BuildBrowse(replyAddr), nil
	case ActionRemoveOne:
		return BuildRemove(cmd.JobID)
	default:
		return BuildRemoveAll(), nil
	}
}
