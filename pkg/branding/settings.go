package branding

// ColorRemove is the sentinel a SettingsUpdate carries in PortalColor to clear the
// configured portal color instead of replacing it
const ColorRemove = "Remove"

// ThemeRef identifies the theme a branding configuration selects
type ThemeRef struct {
	ThemeType string `json:"themeType"`
	Name      string `json:"name"`
}

// CustomLink represents a single custom menu entry of the portal
type CustomLink struct {
	Name         string `json:"name"`
	MenuItemType string `json:"menuItemType"`
	URL          string `json:"url"`
}

// Settings represents the portal branding configuration as it travels on the wire
type Settings struct {
	PortalName    string       `json:"portalName"`
	PortalColor   string       `json:"portalColor"`
	SelectedTheme ThemeRef     `json:"selectedTheme"`
	CustomLinks   []CustomLink `json:"customLinks"`
}

// SettingsUpdate describes a partial change to the branding configuration.
// Nil fields keep their previous value; the remote API replaces the whole record on
// write, so every update is applied on top of a freshly read Settings before being
// written back.
type SettingsUpdate struct {
	PortalName  *string
	PortalColor *string
	Theme       *ThemeRef
	CustomLinks []CustomLink
}

// Apply overlays the update onto prior and returns the merged record to write back.
// A PortalColor equal to ColorRemove clears the stored color.
func (update *SettingsUpdate) Apply(prior *Settings) *Settings {
	merged := *prior

	if update.PortalName != nil {
		merged.PortalName = *update.PortalName
	}
	if update.PortalColor != nil {
		if *update.PortalColor == ColorRemove {
			merged.PortalColor = ""
		} else {
			merged.PortalColor = *update.PortalColor
		}
	}
	if update.Theme != nil {
		merged.SelectedTheme = *update.Theme
	}
	if update.CustomLinks != nil {
		merged.CustomLinks = update.CustomLinks
	}

	return &merged
}
