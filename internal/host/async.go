// Package host is the document the chart data comes from: a workbook with a
// current selection, named bindings and a small settings store.
package host

import "context"

type Status int

const (
	Succeeded Status = iota
	Failed
)

func (s Status) String() string {
	if s == Succeeded {
		return "succeeded"
	}
	return "failed"
}

// Result is the outcome of an asynchronous host call.
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

// Go runs fn on its own goroutine and hands the result to done. done runs on
// that goroutine too; UI callers forward it to their event loop. Calls are
// not retried.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error), done func(Result[T])) {
	go func() {
		v, err := fn(ctx)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			done(Result[T]{Status: Failed, Err: err})
			return
		}
		done(Result[T]{Status: Succeeded, Value: v})
	}()
}
