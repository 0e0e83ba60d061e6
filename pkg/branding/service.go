// Package branding implements the operations of the Cloud Director HTML5 portal
// branding API: reading and writing the portal branding, managing custom themes and
// transferring CSS, logo and icon assets. Every operation resolves its target session,
// re-negotiates the endpoint's API version and verifies the operation's minimum
// version before a single branding request is sent.
package branding

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jondwaite/vcd-h5-themes/pkg/apiversion"
	"github.com/jondwaite/vcd-h5-themes/pkg/client"
	"github.com/jondwaite/vcd-h5-themes/pkg/config"
	"github.com/jondwaite/vcd-h5-themes/pkg/session"
)

// Service bundles the collaborators every branding operation needs
type Service struct {
	Registry session.Registry
	HTTP     *http.Client
	Logger   zerolog.Logger

	// DefaultEndpoint is the endpoint targeted when an operation does not name one
	// and more than one session is active. A single active session always wins.
	DefaultEndpoint string
}

// New creates a new branding service on top of the given session registry.
// A nil HTTP client falls back to http.DefaultClient.
func New(registry session.Registry, httpClient *http.Client) *Service {
	return &Service{
		Registry: registry,
		HTTP:     httpClient,
		Logger:   log.Logger,
	}
}

// NewFromConfig creates a new branding service using the configured HTTP client
// settings and default endpoint
func NewFromConfig(registry session.Registry, cfg *config.Config) *Service {
	service := New(registry, config.NewHTTPClient(cfg))
	service.DefaultEndpoint = cfg.DefaultEndpoint
	return service
}

// resolveSession resolves the session an operation targets.
// When no endpoint is named and resolution is ambiguous, the configured default
// endpoint (if any) breaks the tie.
func (service *Service) resolveSession(ctx context.Context, endpoint string) (*session.Session, error) {
	ses, err := session.Resolve(ctx, service.Registry, endpoint)
	if err != nil && endpoint == "" && service.DefaultEndpoint != "" {
		var ambiguous *session.AmbiguousEndpointError
		if errors.As(err, &ambiguous) {
			return session.Resolve(ctx, service.Registry, service.DefaultEndpoint)
		}
	}
	return ses, err
}

// connect performs the preamble shared by all operations: resolve the target session,
// negotiate the endpoint's API version and reject the call if the negotiated version
// is below the operation's minimum.
func (service *Service) connect(ctx context.Context, endpoint, feature string, minimum apiversion.Version) (*client.Client, error) {
	ses, err := service.resolveSession(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	version, err := apiversion.Negotiate(ctx, service.HTTP, ses.Endpoint)
	if err != nil {
		return nil, err
	}
	service.Logger.Debug().
		Str("endpoint", ses.Endpoint).
		Str("version", version.String()).
		Msg("negotiated API version")

	if !version.AtLeast(minimum) {
		return nil, &apiversion.UnsupportedError{
			Feature:    feature,
			Required:   minimum,
			Negotiated: version,
		}
	}

	return client.New(ses, version, service.HTTP), nil
}

// minimumFor returns the version gate of an operation, raised to the tenant tier
// when a tenant-scoped variant is requested
func minimumFor(base apiversion.Version, tenant string) apiversion.Version {
	if tenant != "" && base.Compare(apiversion.TenantFeatures) < 0 {
		return apiversion.TenantFeatures
	}
	return base
}
