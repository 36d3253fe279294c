// Package log provides the logging interface for the cpm SDK.
//
// The client is silent by default ([Noop]). Applications already using logrus
// can plug their logger with [NewLogrus]; any other logger only needs to
// implement [Logger].
package log

import (
	"github.com/sirupsen/logrus"

	"github.com/slok/cpm/internal/log"
	cpmlogrus "github.com/slok/cpm/internal/log/logrus"
)

// Logger is the interface that loggers must implement for the SDK.
//
// Kv values set with WithValues are attached to every following log line, the
// client uses them to tag its components (e.g. svc=cache.Store).
type Logger = log.Logger

// Kv is a helper type for structured logging key-value pairs.
type Kv = log.Kv

// Noop discards all log output.
var Noop = log.Noop

// NewLogrus adapts a logrus logger to [Logger].
func NewLogrus(l *logrus.Logger) Logger {
	return cpmlogrus.NewLogrus(logrus.NewEntry(l))
}
