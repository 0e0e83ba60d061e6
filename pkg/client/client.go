// Package client constructs and transmits the authenticated HTTP requests the branding
// operations are built from. A Client is bound to one session and one negotiated API
// version; it carries the bearer token in the authorization header and encodes the
// version into the accept header ('<mediatype>;version=<version>').
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jondwaite/vcd-h5-themes/pkg/apiversion"
	"github.com/jondwaite/vcd-h5-themes/pkg/session"
)

// MediaTypeJSON is the media type used for all JSON exchanges
const MediaTypeJSON = "application/json"

// Client represents an authenticated API client bound to one endpoint, session and version
type Client struct {
	endpoint string
	token    string
	version  apiversion.Version
	http     *http.Client
}

// New creates a new client from a resolved session and a negotiated API version
func New(ses *session.Session, version apiversion.Version, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint: ses.Endpoint,
		token:    ses.Token,
		version:  version,
		http:     httpClient,
	}
}

// Endpoint provides the endpoint this client targets
func (client *Client) Endpoint() string {
	return client.endpoint
}

// Version provides the negotiated API version this client encodes into its requests
func (client *Client) Version() apiversion.Version {
	return client.version
}

// NewRequest constructs an authenticated request against the client's endpoint.
// The path has to be absolute ('/cloudapi/...'); the accept header is derived from the
// given media type and the negotiated version. The request is not transmitted.
func (client *Client) NewRequest(ctx context.Context, method, path string, body io.Reader, mediaType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("https://%s%s", client.endpoint, path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+client.token)
	req.Header.Set("Accept", fmt.Sprintf("%s;version=%s", mediaType, client.version))
	return req, nil
}

// Do transmits a request and normalizes non-2xx responses into a StatusError.
// For successful responses the caller owns (and has to close) the response body.
func (client *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := client.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
		}
		apiErr := new(APIError)
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err == nil && (apiErr.MinorErrorCode != "" || apiErr.Message != "") {
			statusErr.API = apiErr
		}
		resp.Body.Close()
		return nil, statusErr
	}
	return resp, nil
}

// GetJSON performs a GET request against the given path and decodes the JSON response into out
func (client *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	req, err := client.NewRequest(ctx, http.MethodGet, path, nil, MediaTypeJSON)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

// PostJSON performs a POST request carrying in as its JSON body against the given path.
// If out is non-nil, the response body is decoded into it. The response headers are
// returned so callers can pick up follow-up links.
func (client *Client) PostJSON(ctx context.Context, path string, in, out interface{}) (http.Header, error) {
	return client.writeJSON(ctx, http.MethodPost, path, in, out)
}

// PutJSON performs a PUT request carrying in as its JSON body against the given path.
// If out is non-nil, the response body is decoded into it.
func (client *Client) PutJSON(ctx context.Context, path string, in, out interface{}) error {
	_, err := client.writeJSON(ctx, http.MethodPut, path, in, out)
	return err
}

func (client *Client) writeJSON(ctx context.Context, method, path string, in, out interface{}) (http.Header, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := client.NewRequest(ctx, method, path, bytes.NewReader(body), MediaTypeJSON)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", MediaTypeJSON)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return nil, err
		}
	}
	return resp.Header, nil
}

// Delete performs a DELETE request against the given path
func (client *Client) Delete(ctx context.Context, path string) error {
	req, err := client.NewRequest(ctx, http.MethodDelete, path, nil, MediaTypeJSON)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// GetRaw performs a GET request against the given path, accepting the given media type,
// and returns the raw response bytes
func (client *Client) GetRaw(ctx context.Context, path, mediaType string) ([]byte, error) {
	req, err := client.NewRequest(ctx, http.MethodGet, path, nil, mediaType)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// PutRaw performs a PUT request carrying raw bytes of the given content type against the given path
func (client *Client) PutRaw(ctx context.Context, path, contentType string, data []byte) error {
	req, err := client.NewRequest(ctx, http.MethodPut, path, bytes.NewReader(data), MediaTypeJSON)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// Upload streams raw bytes to an absolute URI, as handed out by an upload registration.
// Unlike the path-based helpers, the URI is used verbatim.
func (client *Client) Upload(ctx context.Context, uri, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uri, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+client.token)
	req.Header.Set("Content-Type", contentType)
	if size > 0 {
		req.ContentLength = size
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// FirstLink extracts the target URI of the first 'Link' header of a response
// ('<https://host/transfer/abc>;rel="upload:default";type="text/css"').
// It returns an empty string if the response carries no parseable link.
func FirstLink(header http.Header) string {
	link := header.Get("Link")
	if link == "" {
		return ""
	}
	start := strings.Index(link, "<")
	end := strings.Index(link, ">")
	if start != 0 || end < 1 {
		return ""
	}
	return link[1:end]
}
