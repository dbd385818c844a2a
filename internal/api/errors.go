package api

import (
	"errors"
	"fmt"
)

// GenericServerMessage is shown when the service could not be reached or
// answered with something other than an envelope.
const GenericServerMessage = "Server error, please try again later"

// ServiceError is a well-formed envelope with success != true.
type ServiceError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: service reported failure", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// TransportError covers network failures and responses without a readable envelope.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserMessage picks the text to surface for err: the service message when
// there is one, the generic server message for transport failures and
// fallback otherwise.
func UserMessage(err error, fallback string) string {
	var se *ServiceError
	if errors.As(err, &se) {
		if se.Message != "" {
			return se.Message
		}
		return fallback
	}
	var te *TransportError
	if errors.As(err, &te) {
		return GenericServerMessage
	}
	return fallback
}
