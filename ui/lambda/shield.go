// Package lambda adapts the use cases to AWS Lambda event shapes.
package lambda

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

var errInternal = errors.New("internal server error")

// shield converts a panic in a handler into a logged error so the runtime
// reports a failed invocation instead of crashing the sandbox.
func shield(handler string, err *error) {
	if r := recover(); r != nil {
		logrus.WithFields(logrus.Fields{
			"handler": handler,
			"panic":   fmt.Sprintf("%v", r),
			"stack":   string(debug.Stack()),
		}).Error("[LAMBDA] Panic recovered")
		*err = errInternal
	}
}
