// Package maestro implements the client for the Maestro API, the system of
// record for disclosed entities and official return figures.
//
// The client authenticates every request through an AuthProvider and reads
// JSON payloads with jsonpath expressions, so a field added to a Maestro
// response never breaks the decoding here.
package maestro

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// AuthProvider yields the Authorization header value for a request. It
// decouples the client from how tokens are obtained and refreshed.
type AuthProvider interface {
	AuthHeader() (string, error)
}

// Client calls the Maestro investment endpoints under a single base URL.
type Client struct {
	base string
	auth AuthProvider
	http *http.Client
}

// NewClient returns a client for the Maestro API rooted at base.
func NewClient(base string, auth AuthProvider) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		auth: auth,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// jwget performs an authorized HTTP GET request and unmarshals the JSON
// response into the provided data structure.
func (c *Client) jwget(endpoint string, data any) error {
	req, err := http.NewRequest(http.MethodGet, c.base+endpoint, nil)
	if err != nil {
		return err
	}
	header, err := c.auth.AuthHeader()
	if err != nil {
		return fmt.Errorf("cannot authorize request to %q: %w", endpoint, err)
	}
	req.Header.Set("Authorization", header)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		resp.Body.Close()
		return fmt.Errorf("cannot http GET %v%v: %v", c.base, endpoint, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// stringsAt extracts the string at path from every element of a JSON
// collection. Numbers are accepted and rendered back to text, because some
// Maestro code fields come through as numbers.
func stringsAt(jobj any, path string) ([]string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: not a collection: %v", path, jval)
	}
	vals := make([]string, 0, len(jlist))
	for _, jitem := range jlist {
		switch v := jitem.(type) {
		case string:
			vals = append(vals, v)
		case float64:
			vals = append(vals, fmt.Sprintf("%g", v))
		default:
			return nil, fmt.Errorf("error parsing %q: not a string: %v", path, jitem)
		}
	}
	return vals, nil
}

// int64sAt extracts the integer at path from every element of a JSON
// collection. JSON numbers decode as float64, they are truncated here.
func int64sAt(jobj any, path string) ([]int64, error) {
	jvals, err := float64sAt(jobj, path)
	if err != nil {
		return nil, err
	}
	vals := make([]int64, 0, len(jvals))
	for _, v := range jvals {
		vals = append(vals, int64(v))
	}
	return vals, nil
}

// float64sAt extracts the number at path from every element of a JSON
// collection.
func float64sAt(jobj any, path string) ([]float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: not a collection: %v", path, jval)
	}
	vals := make([]float64, 0, len(jlist))
	for _, jitem := range jlist {
		v, ok := jitem.(float64)
		if !ok {
			return nil, fmt.Errorf("error parsing %q: not a number: %v", path, jitem)
		}
		vals = append(vals, v)
	}
	return vals, nil
}
