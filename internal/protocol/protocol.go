package protocol

// Envelope is the fixed JSON result returned by every tool. Exactly one of
// Data and Error is set: Data when Success is true, Error otherwise.
type Envelope struct {
	// Success indicates whether the operation completed.
	Success bool `json:"success"`
	// Data holds the operation result on success.
	Data any `json:"data"`
	// Error holds a human-readable failure message; omitted on success.
	Error *string `json:"error,omitempty"`
}

// Ok wraps a successful result. A nil result is replaced with EmptyResult
// so the envelope never carries both fields null.
func Ok(data any) Envelope {
	if data == nil {
		data = EmptyResult()
	}
	return Envelope{Success: true, Data: data}
}

// Fail wraps a failure message.
func Fail(err error) Envelope {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	return Envelope{Success: false, Error: &message}
}

// EmptyResult marks a successful call whose response carried no body.
func EmptyResult() map[string]any {
	return map[string]any{"ok": true}
}
