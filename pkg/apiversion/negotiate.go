package apiversion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DiscoveryError is returned when the supported API versions of an endpoint could not
// be retrieved. An untrusted TLS certificate is the most common cause in practice, so
// the error message points at it.
type DiscoveryError struct {
	Endpoint string
	Err      error
}

func (err *DiscoveryError) Error() string {
	msg := fmt.Sprintf("could not retrieve the supported API versions from '%s' (untrusted certificate?)", err.Endpoint)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying transport error
func (err *DiscoveryError) Unwrap() error {
	return err.Err
}

// UnsupportedError is returned when an operation requires a higher API version than the
// endpoint negotiated
type UnsupportedError struct {
	Feature    string
	Required   Version
	Negotiated Version
}

func (err *UnsupportedError) Error() string {
	return fmt.Sprintf("%s requires API version %s or later, but '%s' is the highest the endpoint supports",
		err.Feature, err.Required, err.Negotiated)
}

type versionInfo struct {
	Version    string `json:"version"`
	Deprecated bool   `json:"deprecated"`
}

type supportedVersions struct {
	VersionInfo []versionInfo `json:"versionInfo"`
}

// Negotiate fetches the list of API versions the endpoint supports, discards deprecated
// ones and returns the numerically highest remaining version. The result is never cached;
// every operation re-negotiates.
func Negotiate(ctx context.Context, httpClient *http.Client, endpoint string) (Version, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("https://%s/api/versions", endpoint), nil)
	if err != nil {
		return Version{}, &DiscoveryError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/*+json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return Version{}, &DiscoveryError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Version{}, &DiscoveryError{Endpoint: endpoint, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	supported := new(supportedVersions)
	if err := json.NewDecoder(resp.Body).Decode(supported); err != nil {
		return Version{}, &DiscoveryError{Endpoint: endpoint, Err: err}
	}

	found := false
	highest := Version{}
	for _, info := range supported.VersionInfo {
		if info.Deprecated {
			continue
		}
		version, err := Parse(info.Version)
		if err != nil {
			// Ignore entries in formats this library does not understand (alpha builds etc.)
			continue
		}
		if !found || version.Compare(highest) > 0 {
			highest = version
			found = true
		}
	}
	if !found {
		return Version{}, &DiscoveryError{Endpoint: endpoint, Err: fmt.Errorf("no supported API versions advertised")}
	}

	return highest, nil
}
