package common

import (
	"fmt"
	"runtime"

	"github.com/ternarybob/arbor"
)

// PanicError is returned by RecoverCall when fn panicked
type PanicError struct {
	Name  string
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Name, e.Value)
}

// RecoverCall runs fn and converts a panic into a *PanicError.
// Use it inside worker goroutines, which the HTTP recovery middleware does not cover.
//
// Example:
//
//	g.Go(func() error {
//	    return common.RecoverCall(logger, "scanWebsite", func() error {
//	        return scan(ctx, url)
//	    })
//	})
func RecoverCall(logger arbor.ILogger, name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)

			if logger != nil {
				logger.Error().
					Str("goroutine", name).
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(buf[:n])).
					Msg("Recovered from panic in goroutine - continuing service operation")
			}

			err = &PanicError{Name: name, Value: r}
		}
	}()

	return fn()
}
