package errors

import "fmt"

var (
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrInvalidPayload = fmt.Errorf("invalid event payload")

	ErrInvalidEvent       = fmt.Errorf("invalid event")
	ErrEchoNotFound       = fmt.Errorf("local echo not found")
	ErrEchoAlreadyExists  = fmt.Errorf("local echo already exists")
	ErrUnsupportedContent = fmt.Errorf("unsupported content for resend")
	ErrStorage            = fmt.Errorf("storage failure")
	ErrUnknownSendState   = fmt.Errorf("unknown send state")
)
