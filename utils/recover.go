package utils

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// RecoverCall runs f and returns a panic inside it as an error.
func RecoverCall(f func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		logrus.Debugf("stacktrace from panic:\n%s", debug.Stack())
		if e, ok := r.(error); ok {
			err = fmt.Errorf("panic: %w", e)
			return
		}
		err = fmt.Errorf("panic: %v", r)
	}()
	return f()
}
