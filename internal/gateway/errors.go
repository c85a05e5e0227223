package gateway

import "fmt"

// CassetteMissError reports a replay request with no matching recording.
// The fix is to re-run the stage with a live, recording gateway.
type CassetteMissError struct {
	Capability  string
	Fingerprint string
	Key         string
}

func (e *CassetteMissError) Error() string {
	return fmt.Sprintf("cassette miss for %s request %s in cassette %q: record it with a live run first",
		e.Capability, e.Fingerprint, e.Key)
}

// ProviderError reports a failure from a live external provider.
type ProviderError struct {
	Capability string
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s provider error: %s: %v", e.Capability, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s provider error: %s", e.Capability, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
