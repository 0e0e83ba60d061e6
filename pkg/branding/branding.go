package branding

import (
	"context"
	"fmt"

	"github.com/jondwaite/vcd-h5-themes/pkg/apiversion"
	"github.com/jondwaite/vcd-h5-themes/pkg/client"
)

// brandingReadPath selects the path the branding configuration is read from.
// The system-level read moved to the themes sub-path at a later API version;
// tenant-scoped reads are unaffected by the move.
func brandingReadPath(version apiversion.Version, tenant string) string {
	if tenant != "" {
		return fmt.Sprintf("/cloudapi/branding/tenant/%s", tenant)
	}
	if version.AtLeast(apiversion.BrandingThemesPath) {
		return "/cloudapi/branding/themes"
	}
	return "/cloudapi/branding"
}

// brandingWritePath selects the path the branding configuration is written to
func brandingWritePath(tenant string) string {
	if tenant != "" {
		return fmt.Sprintf("/cloudapi/branding/tenant/%s", tenant)
	}
	return "/cloudapi/branding"
}

// GetBranding reads the current branding configuration of the resolved endpoint.
// A non-empty tenant narrows the read to that tenant's branding and raises the
// operation's minimum API version to the tenant tier.
func (service *Service) GetBranding(ctx context.Context, endpoint, tenant string) (*Settings, error) {
	cl, err := service.connect(ctx, endpoint, "reading branding", minimumFor(apiversion.Baseline, tenant))
	if err != nil {
		return nil, err
	}
	return service.getBranding(ctx, cl, tenant)
}

func (service *Service) getBranding(ctx context.Context, cl *client.Client, tenant string) (*Settings, error) {
	settings := new(Settings)
	if err := cl.GetJSON(ctx, brandingReadPath(cl.Version(), tenant), settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetBranding applies a partial branding update to the resolved endpoint.
// The current configuration is always read first and only the fields the update names
// are replaced before the merged record is written back; the remote API would null out
// every omitted field otherwise. The written record is returned.
func (service *Service) SetBranding(ctx context.Context, endpoint, tenant string, update *SettingsUpdate) (*Settings, error) {
	cl, err := service.connect(ctx, endpoint, "writing branding", minimumFor(apiversion.Baseline, tenant))
	if err != nil {
		return nil, err
	}
	return service.setBranding(ctx, cl, tenant, update)
}

func (service *Service) setBranding(ctx context.Context, cl *client.Client, tenant string, update *SettingsUpdate) (*Settings, error) {
	prior, err := service.getBranding(ctx, cl, tenant)
	if err != nil {
		return nil, fmt.Errorf("could not read the current branding: %w", err)
	}

	merged := update.Apply(prior)
	if err := cl.PutJSON(ctx, brandingWritePath(tenant), merged, nil); err != nil {
		return nil, err
	}

	service.Logger.Info().
		Str("endpoint", cl.Endpoint()).
		Str("tenant", tenant).
		Str("portal_name", merged.PortalName).
		Msg("branding updated")
	return merged, nil
}
