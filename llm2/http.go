package llm2

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
)

var httpClient = &http.Client{}

// postSSE sends body to url as a JSON POST and returns the live response on
// a 2xx status. On any other status it reads the body and returns an API
// error carrying it verbatim.
func postSSE(ctx context.Context, url string, headers http.Header, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, wrapError(ErrTransport, "building request", err)
	}
	req.Header = headers

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, wrapError(ErrTransport, "sending request", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(resp.StatusCode, string(respBody))
	}
	return resp, nil
}

// buildHeaders merges the model's default headers and then the caller's
// per-call headers on top of the bearer token, silently dropping any entry
// whose name or value would not survive an http.Header round-trip rather
// than failing the whole request. A name set in both base and extra takes
// the extra (per-call) value.
func buildHeaders(base map[string]string, extra map[string]string, bearerToken string) http.Header {
	h := http.Header{}
	if bearerToken != "" {
		h.Set("Authorization", "Bearer "+bearerToken)
	}
	h.Set("Content-Type", "application/json")
	mergeHeaders(h, base)
	mergeHeaders(h, extra)
	return h
}

// mergeHeaders applies extra on top of h, dropping invalid names/values.
func mergeHeaders(h http.Header, extra map[string]string) {
	for name, value := range extra {
		if !validHeaderName(name) || !validHeaderValue(value) {
			continue
		}
		h.Set(name, value)
	}
}

func validHeaderName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r <= ' ' || r == ':' || r > '~' {
			return false
		}
	}
	return true
}

func validHeaderValue(value string) bool {
	for _, r := range value {
		if r == '\n' || r == '\r' {
			return false
		}
	}
	return !strings.ContainsRune(value, 0)
}
