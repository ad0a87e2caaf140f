package apiclient

import "net/http"

// TokenSource yields the bearer token to attach, "" when there is none.
type TokenSource interface {
	Token() string
}

// BearerTransport attaches the current bearer token to every outgoing request.
// The caller's request is cloned, never modified.
type BearerTransport struct {
	Tokens TokenSource
	Base   http.RoundTripper
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.Tokens == nil {
		return base.RoundTrip(req)
	}
	token := t.Tokens.Token()
	if token == "" {
		return base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return base.RoundTrip(clone)
}
