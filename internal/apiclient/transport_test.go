package apiclient

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestBearerTransport_InjectsWithoutMutatingCaller(t *testing.T) {
	var seen *http.Request
	tr := &BearerTransport{
		Tokens: staticToken("tok123"),
		Base: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			seen = r
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		}),
	}

	req, err := http.NewRequest(http.MethodGet, "http://example.test/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("X-Trace", "abc")

	_, err = tr.RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok123", seen.Header.Get("Authorization"))
	assert.Equal(t, "abc", seen.Header.Get("X-Trace"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestBearerTransport_OmitsHeaderWithoutToken(t *testing.T) {
	var seen *http.Request
	tr := &BearerTransport{
		Tokens: staticToken(""),
		Base: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			seen = r
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		}),
	}

	req, err := http.NewRequest(http.MethodGet, "http://example.test/auth/me", nil)
	require.NoError(t, err)
	_, err = tr.RoundTrip(req)
	require.NoError(t, err)

	_, present := seen.Header["Authorization"]
	assert.False(t, present)
}
