package branding

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jondwaite/vcd-h5-themes/pkg/apiversion"
	"github.com/jondwaite/vcd-h5-themes/pkg/client"
)

// MediaTypeCSS is the media type of theme stylesheets
const MediaTypeCSS = "text/css"

// contentsRequest registers an upload intent with a theme's contents endpoint
type contentsRequest struct {
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}

// UploadCSS replaces the stylesheet of a custom theme.
// The upload is a two-step protocol: the file name and size are registered with the
// theme's contents endpoint first, then the bytes are PUT to the transfer URI the
// registration hands back in its link header. Both steps have to succeed. A failed
// second step leaves the registration behind on the remote side; that is logged but
// not cleaned up.
func (service *Service) UploadCSS(ctx context.Context, endpoint, theme, fileName string, size int64, css io.Reader) error {
	if err := validateThemeName(theme); err != nil {
		return err
	}
	cl, err := service.connect(ctx, endpoint, "uploading theme CSS", apiversion.Baseline)
	if err != nil {
		return err
	}

	themes := []*Theme{}
	if err := cl.GetJSON(ctx, "/cloudapi/branding/themes", &themes); err != nil {
		return err
	}
	if matchTheme(themes, theme) == nil {
		return &ThemeNotFoundError{Name: theme}
	}

	register := &contentsRequest{FileName: fileName, Size: size}
	header, err := cl.PostJSON(ctx, fmt.Sprintf("/cloudapi/branding/themes/%s/contents", theme), register, nil)
	if err != nil {
		return err
	}
	uploadURI := client.FirstLink(header)
	if uploadURI == "" {
		return fmt.Errorf("the upload registration for theme '%s' returned no transfer link", theme)
	}

	if err := cl.Upload(ctx, uploadURI, MediaTypeCSS, css, size); err != nil {
		service.Logger.Warn().
			Str("endpoint", cl.Endpoint()).
			Str("theme", theme).
			Str("transfer_uri", uploadURI).
			Msg("CSS transfer failed after registration; an orphaned registration may remain")
		return err
	}

	service.Logger.Info().
		Str("endpoint", cl.Endpoint()).
		Str("theme", theme).
		Str("file", fileName).
		Int64("size", size).
		Msg("theme CSS uploaded")
	return nil
}

// GetCSS retrieves the stylesheet of a theme.
// It returns nil bytes without an error when the theme exists but has no stylesheet yet.
func (service *Service) GetCSS(ctx context.Context, endpoint, theme string) ([]byte, error) {
	if err := validateThemeName(theme); err != nil {
		return nil, err
	}
	cl, err := service.connect(ctx, endpoint, "reading theme CSS", apiversion.Baseline)
	if err != nil {
		return nil, err
	}

	css, err := cl.GetRaw(ctx, fmt.Sprintf("/cloudapi/branding/themes/%s/css", theme), MediaTypeCSS)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return css, nil
}

func logoPath(tenant string) string {
	if tenant != "" {
		return fmt.Sprintf("/cloudapi/branding/tenant/%s/logo", tenant)
	}
	return "/cloudapi/branding/logo"
}

func iconPath(tenant string) string {
	if tenant != "" {
		return fmt.Sprintf("/cloudapi/branding/tenant/%s/icon", tenant)
	}
	return "/cloudapi/branding/icon"
}

// GetLogo retrieves the portal logo image of the resolved endpoint
func (service *Service) GetLogo(ctx context.Context, endpoint, tenant string) ([]byte, error) {
	cl, err := service.connect(ctx, endpoint, "reading the portal logo", minimumFor(apiversion.Baseline, tenant))
	if err != nil {
		return nil, err
	}
	return cl.GetRaw(ctx, logoPath(tenant), "image/*")
}

// SetLogo replaces the portal logo image of the resolved endpoint.
// An empty content type is sniffed from the image bytes.
func (service *Service) SetLogo(ctx context.Context, endpoint, tenant, contentType string, image []byte) error {
	cl, err := service.connect(ctx, endpoint, "writing the portal logo", minimumFor(apiversion.Baseline, tenant))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = http.DetectContentType(image)
	}
	if err := cl.PutRaw(ctx, logoPath(tenant), contentType, image); err != nil {
		return err
	}

	service.Logger.Info().
		Str("endpoint", cl.Endpoint()).
		Str("tenant", tenant).
		Str("content_type", contentType).
		Int("size", len(image)).
		Msg("portal logo updated")
	return nil
}

// GetIcon retrieves the portal browser icon of the resolved endpoint
func (service *Service) GetIcon(ctx context.Context, endpoint, tenant string) ([]byte, error) {
	cl, err := service.connect(ctx, endpoint, "reading the portal icon", apiversion.TenantFeatures)
	if err != nil {
		return nil, err
	}
	return cl.GetRaw(ctx, iconPath(tenant), "image/*")
}

// SetIcon replaces the portal browser icon of the resolved endpoint.
// An empty content type is sniffed from the image bytes.
func (service *Service) SetIcon(ctx context.Context, endpoint, tenant, contentType string, image []byte) error {
	cl, err := service.connect(ctx, endpoint, "writing the portal icon", apiversion.TenantFeatures)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = http.DetectContentType(image)
	}
	if err := cl.PutRaw(ctx, iconPath(tenant), contentType, image); err != nil {
		return err
	}

	service.Logger.Info().
		Str("endpoint", cl.Endpoint()).
		Str("tenant", tenant).
		Str("content_type", contentType).
		Int("size", len(image)).
		Msg("portal icon updated")
	return nil
}
