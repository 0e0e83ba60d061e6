package branding

import (
	"context"
	"fmt"

	"github.com/jondwaite/vcd-h5-themes/pkg/apiversion"
)

// Theme types as the API spells them
const (
	ThemeTypeBuiltIn = "BUILT_IN"
	ThemeTypeCustom  = "CUSTOM"
)

// Theme represents a named UI customization bundle
type Theme struct {
	ThemeType string `json:"themeType"`
	Name      string `json:"name"`
}

// ThemeExistsError is returned when a theme creation names an already existing theme
type ThemeExistsError struct {
	Name string
}

func (err *ThemeExistsError) Error() string {
	return fmt.Sprintf("a theme named '%s' already exists", err.Name)
}

// ThemeNotFoundError is returned when an operation names a theme that does not exist
type ThemeNotFoundError struct {
	Name string
}

func (err *ThemeNotFoundError) Error() string {
	return fmt.Sprintf("no theme named '%s' exists", err.Name)
}

func validateThemeName(name string) error {
	if name == "" {
		return fmt.Errorf("theme name must not be empty")
	}
	return nil
}

// ListThemes retrieves all themes the resolved endpoint knows, built-in and custom
func (service *Service) ListThemes(ctx context.Context, endpoint string) ([]*Theme, error) {
	cl, err := service.connect(ctx, endpoint, "listing themes", apiversion.Baseline)
	if err != nil {
		return nil, err
	}

	themes := []*Theme{}
	if err := cl.GetJSON(ctx, "/cloudapi/branding/themes", &themes); err != nil {
		return nil, err
	}
	return themes, nil
}

// GetTheme retrieves a single theme by name.
// It returns nil if no theme of that name exists.
func (service *Service) GetTheme(ctx context.Context, endpoint, name string) (*Theme, error) {
	if err := validateThemeName(name); err != nil {
		return nil, err
	}
	themes, err := service.ListThemes(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return matchTheme(themes, name), nil
}

func matchTheme(themes []*Theme, name string) *Theme {
	for _, theme := range themes {
		if theme.Name == name {
			return theme
		}
	}
	return nil
}

// CreateTheme creates a new custom theme.
// The theme list is checked first and a ThemeExistsError is returned without sending
// the creation request when a theme of that name already exists; the remote API's
// conflict status would be a lot less helpful.
func (service *Service) CreateTheme(ctx context.Context, endpoint, name string) (*Theme, error) {
	if err := validateThemeName(name); err != nil {
		return nil, err
	}
	cl, err := service.connect(ctx, endpoint, "creating a theme", apiversion.Baseline)
	if err != nil {
		return nil, err
	}

	themes := []*Theme{}
	if err := cl.GetJSON(ctx, "/cloudapi/branding/themes", &themes); err != nil {
		return nil, err
	}
	if matchTheme(themes, name) != nil {
		return nil, &ThemeExistsError{Name: name}
	}

	created := new(Theme)
	create := &Theme{ThemeType: ThemeTypeCustom, Name: name}
	if _, err := cl.PostJSON(ctx, "/cloudapi/branding/themes/", create, created); err != nil {
		return nil, err
	}
	if created.Name == "" {
		created = create
	}

	service.Logger.Info().
		Str("endpoint", cl.Endpoint()).
		Str("theme", name).
		Msg("theme created")
	return created, nil
}

// DeleteTheme deletes a custom theme by name.
// A ThemeNotFoundError is returned without sending the deletion request when no theme
// of that name exists.
func (service *Service) DeleteTheme(ctx context.Context, endpoint, name string) error {
	if err := validateThemeName(name); err != nil {
		return err
	}
	cl, err := service.connect(ctx, endpoint, "deleting a theme", apiversion.Baseline)
	if err != nil {
		return err
	}

	themes := []*Theme{}
	if err := cl.GetJSON(ctx, "/cloudapi/branding/themes", &themes); err != nil {
		return err
	}
	if matchTheme(themes, name) == nil {
		return &ThemeNotFoundError{Name: name}
	}

	if err := cl.Delete(ctx, fmt.Sprintf("/cloudapi/branding/themes/%s", name)); err != nil {
		return err
	}

	service.Logger.Info().
		Str("endpoint", cl.Endpoint()).
		Str("theme", name).
		Msg("theme deleted")
	return nil
}

// ActivateTheme selects the named theme as the portal's active theme.
// The theme has to exist; activation is a read-modify-write of the branding
// configuration so no other branding field is disturbed.
func (service *Service) ActivateTheme(ctx context.Context, endpoint, name string) error {
	if err := validateThemeName(name); err != nil {
		return err
	}
	cl, err := service.connect(ctx, endpoint, "activating a theme", apiversion.Baseline)
	if err != nil {
		return err
	}

	themes := []*Theme{}
	if err := cl.GetJSON(ctx, "/cloudapi/branding/themes", &themes); err != nil {
		return err
	}
	theme := matchTheme(themes, name)
	if theme == nil {
		return &ThemeNotFoundError{Name: name}
	}

	update := &SettingsUpdate{
		Theme: &ThemeRef{ThemeType: theme.ThemeType, Name: theme.Name},
	}
	if _, err := service.setBranding(ctx, cl, "", update); err != nil {
		return err
	}

	service.Logger.Info().
		Str("endpoint", cl.Endpoint()).
		Str("theme", name).
		Msg("theme activated")
	return nil
}
