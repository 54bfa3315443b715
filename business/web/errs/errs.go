// Package errs provides the error types the web handlers pass up the
// middleware chain.
package errs

import "errors"

// Response is the form used for API responses from failures in the API.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Trusted carries an error whose message is safe to return to the client,
// paired with the HTTP status to respond with. Anything else becomes a
// bare 500.
type Trusted struct {
	Err    error
	Status int
}

// NewTrusted wraps an expected error, like a rejected transaction or an
// unknown account, with the status code for the response.
func NewTrusted(err error, status int) error {
	return &Trusted{err, status}
}

// Error implements the error interface using the wrapped error's message.
func (t *Trusted) Error() string {
	return t.Err.Error()
}

// IsTrusted checks if an error of type Trusted exists in the chain.
func IsTrusted(err error) bool {
	var t *Trusted
	return errors.As(err, &t)
}

// GetTrusted returns the Trusted value from the chain, or nil.
func GetTrusted(err error) *Trusted {
	var t *Trusted
	if !errors.As(err, &t) {
		return nil
	}
	return t
}
