package domain

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the outcome of one core operation. Data is only meaningful when
// Status is StatusSuccess; Err keeps the cause of a failure for the caller.
type Result[T any] struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	err     error
}

func Succeed[T any](message string, data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Message: message, Data: data}
}

func Fail[T any](err error) Result[T] {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Result[T]{Status: StatusError, Message: msg, err: err}
}

func (r Result[T]) OK() bool { return r.Status == StatusSuccess }

func (r Result[T]) Err() error { return r.err }
