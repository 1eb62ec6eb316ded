/*
Package amqschedctl documents the amqschedctl module.

This module is CLI-first and ships the amqschedctl command:

	go install github.com/wramner/amqschedctl/cmd/amqschedctl@latest

The broker scheduler is local to a single broker instance. In a clustered
setup each broker keeps its own scheduler store, so a complete view means
running the tool once per broker.

Most implementation packages in this repository are internal and are not a
stable public Go API.
*/
package amqschedctl
