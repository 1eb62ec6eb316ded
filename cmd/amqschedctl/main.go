// Command amqschedctl interrogates and manipulates the delayed-delivery
// scheduler of a message broker.
//
// It talks to the broker's scheduler management address: list browses the
// pending scheduled jobs (per-job detail or per-queue totals), rm removes
// one job by id or all of them.
//
// Install:
//
//	go install github.com/wramner/amqschedctl/cmd/amqschedctl@latest
//
// Usage:
//
//	amqschedctl list --url amqp://broker:5672/ --totals-per-queue
//	amqschedctl rm --url amqp://broker:5672/ --id <job-id>
package main

import (
	"os"

	"github.com/wramner/amqschedctl/internal/app"
)

func main() {
	os.Exit(app.Main(os.Args))
}
