package provider

import "fmt"

// TransportError reports a non-success HTTP status from a provider. It is
// never retried; the orchestrator propagates it to the caller.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("provider: http status %d", e.Status)
	}
	return fmt.Sprintf("provider: http status %d body=%s", e.Status, e.Body)
}

// DecodeError reports a response body that could not be parsed into the
// expected shape. Nested optional fields (tool_calls, content) default to
// empty values instead; only the top-level response is strict.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider: decode failed: %s", e.Reason)
	}
	return fmt.Sprintf("provider: decode failed: %s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
