package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for the message pump.
var (
	// ErrInvalidTopic is returned when a topic pattern is empty or malformed.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrSubscriptionNotFound is returned when unsubscribing an unknown id.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrHandlerPanic is wrapped by PanicError.
	ErrHandlerPanic = errors.New("handler panicked")
)

// HandlerError wraps an error returned by a handler.
type HandlerError struct {
	// SubscriptionID identifies the failing subscription.
	SubscriptionID SubscriptionID

	// Topic is the topic of the message being delivered.
	Topic Topic

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler error for subscription %d on topic %s: %v", e.SubscriptionID, e.Topic, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic raised by a handler.
type PanicError struct {
	// Topic is the topic of the message being delivered.
	// Empty for idle handlers.
	Topic Topic

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	if e.Topic == "" {
		return fmt.Sprintf("idle handler panic: %v", e.Value)
	}
	return fmt.Sprintf("handler panic on topic %s: %v", e.Topic, e.Value)
}

// Unwrap returns ErrHandlerPanic so callers can use errors.Is.
func (e *PanicError) Unwrap() error {
	return ErrHandlerPanic
}
