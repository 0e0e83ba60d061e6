package branding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jondwaite/vcd-h5-themes/pkg/session"
	"github.com/jondwaite/vcd-h5-themes/pkg/session/inmem"
)

// fakeAPI is an in-process stand-in for the Cloud Director branding API
type fakeAPI struct {
	srv      *httptest.Server
	endpoint string
	version  string

	// brandingOnThemesPath serves the branding record on the themes sub-path,
	// emulating endpoints past the read-path move
	brandingOnThemesPath bool

	settings       *Settings
	tenantSettings map[string]*Settings
	themes         []*Theme
	css            map[string][]byte
	logo           []byte
	logoType       string
	icon           []byte

	cloudapiCalls int
	createCalls   int
	deleteCalls   int
	contentsCalls int
	lastContents  *contentsRequest
	uploadBody    []byte
	uploadPath    string
}

func newFakeAPI(t *testing.T, version string) *fakeAPI {
	fake := &fakeAPI{
		version: version,
		settings: &Settings{
			PortalName:    "A",
			PortalColor:   "#111111",
			SelectedTheme: ThemeRef{ThemeType: ThemeTypeBuiltIn, Name: "Default"},
			CustomLinks:   []CustomLink{},
		},
		tenantSettings: map[string]*Settings{},
		themes:         []*Theme{{ThemeType: ThemeTypeBuiltIn, Name: "Default"}},
		css:            map[string][]byte{},
	}

	router := chi.NewRouter()
	router.Get("/api/versions", fake.handleVersions)
	router.Group(func(router chi.Router) {
		router.Use(fake.countCloudapi)
		router.Get("/cloudapi/branding", fake.handleGetBranding)
		router.Put("/cloudapi/branding", fake.handlePutBranding)
		router.Get("/cloudapi/branding/tenant/{tenant}", fake.handleGetTenantBranding)
		router.Put("/cloudapi/branding/tenant/{tenant}", fake.handlePutTenantBranding)
		router.Get("/cloudapi/branding/themes", fake.handleThemes)
		router.Post("/cloudapi/branding/themes/", fake.handleCreateTheme)
		router.Delete("/cloudapi/branding/themes/{theme}", fake.handleDeleteTheme)
		router.Post("/cloudapi/branding/themes/{theme}/contents", fake.handleContents)
		router.Get("/cloudapi/branding/themes/{theme}/css", fake.handleCSS)
		router.Get("/cloudapi/branding/logo", fake.handleGetLogo)
		router.Put("/cloudapi/branding/logo", fake.handlePutLogo)
		router.Get("/cloudapi/branding/icon", fake.handleGetIcon)
		router.Put("/cloudapi/branding/icon", fake.handlePutIcon)
	})
	router.Put("/transfer/{id}", fake.handleUpload)

	fake.srv = httptest.NewTLSServer(router)
	fake.endpoint = fake.srv.Listener.Addr().String()
	t.Cleanup(fake.srv.Close)
	return fake
}

// newFakeService builds a branding service whose registry holds a single session
// bound to the fake API
func newFakeService(t *testing.T, fake *fakeAPI) *Service {
	registry, err := inmem.New()
	require.NoError(t, err)
	_, err = registry.Put(context.Background(), &session.Session{
		Endpoint: fake.endpoint,
		Token:    "test-token",
		User:     "administrator",
		Org:      "System",
	})
	require.NoError(t, err)

	service := New(registry, fake.srv.Client())
	service.Logger = zerolog.Nop()
	return service
}

func (fake *fakeAPI) countCloudapi(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		fake.cloudapiCalls++
		next.ServeHTTP(writer, request)
	})
}

func (fake *fakeAPI) handleVersions(writer http.ResponseWriter, _ *http.Request) {
	writeJSON(writer, map[string]interface{}{
		"versionInfo": []map[string]interface{}{
			{"version": "29.0", "deprecated": true},
			{"version": fake.version, "deprecated": false},
		},
	})
}

func (fake *fakeAPI) handleGetBranding(writer http.ResponseWriter, _ *http.Request) {
	writeJSON(writer, fake.settings)
}

func (fake *fakeAPI) handlePutBranding(writer http.ResponseWriter, request *http.Request) {
	settings := new(Settings)
	if err := json.NewDecoder(request.Body).Decode(settings); err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	fake.settings = settings
	writeJSON(writer, settings)
}

func (fake *fakeAPI) handleGetTenantBranding(writer http.ResponseWriter, request *http.Request) {
	settings, ok := fake.tenantSettings[chi.URLParam(request, "tenant")]
	if !ok {
		settings = fake.settings
	}
	writeJSON(writer, settings)
}

func (fake *fakeAPI) handlePutTenantBranding(writer http.ResponseWriter, request *http.Request) {
	settings := new(Settings)
	if err := json.NewDecoder(request.Body).Decode(settings); err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	fake.tenantSettings[chi.URLParam(request, "tenant")] = settings
	writeJSON(writer, settings)
}

func (fake *fakeAPI) handleThemes(writer http.ResponseWriter, _ *http.Request) {
	if fake.brandingOnThemesPath {
		writeJSON(writer, fake.settings)
		return
	}
	writeJSON(writer, fake.themes)
}

func (fake *fakeAPI) handleCreateTheme(writer http.ResponseWriter, request *http.Request) {
	fake.createCalls++
	theme := new(Theme)
	if err := json.NewDecoder(request.Body).Decode(theme); err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	fake.themes = append(fake.themes, theme)
	writer.WriteHeader(http.StatusCreated)
	writeJSON(writer, theme)
}

func (fake *fakeAPI) handleDeleteTheme(writer http.ResponseWriter, request *http.Request) {
	fake.deleteCalls++
	name := chi.URLParam(request, "theme")
	for i, theme := range fake.themes {
		if theme.Name == name {
			fake.themes = append(fake.themes[:i], fake.themes[i+1:]...)
			writer.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writer.WriteHeader(http.StatusNotFound)
}

func (fake *fakeAPI) handleContents(writer http.ResponseWriter, request *http.Request) {
	fake.contentsCalls++
	contents := new(contentsRequest)
	if err := json.NewDecoder(request.Body).Decode(contents); err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	fake.lastContents = contents
	writer.Header().Set("Link", fmt.Sprintf(`<%s/transfer/abc>;rel="upload:default";type="text/css"`, fake.srv.URL))
	writer.WriteHeader(http.StatusOK)
}

func (fake *fakeAPI) handleCSS(writer http.ResponseWriter, request *http.Request) {
	css, ok := fake.css[chi.URLParam(request, "theme")]
	if !ok {
		writer.WriteHeader(http.StatusNotFound)
		return
	}
	writer.Header().Set("Content-Type", "text/css")
	writer.Write(css)
}

func (fake *fakeAPI) handleUpload(writer http.ResponseWriter, request *http.Request) {
	body, err := io.ReadAll(request.Body)
	if err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	fake.uploadBody = body
	fake.uploadPath = request.URL.Path
	writer.WriteHeader(http.StatusOK)
}

func (fake *fakeAPI) handleGetLogo(writer http.ResponseWriter, _ *http.Request) {
	if fake.logo == nil {
		writer.WriteHeader(http.StatusNotFound)
		return
	}
	writer.Header().Set("Content-Type", fake.logoType)
	writer.Write(fake.logo)
}

func (fake *fakeAPI) handlePutLogo(writer http.ResponseWriter, request *http.Request) {
	body, err := io.ReadAll(request.Body)
	if err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	fake.logo = body
	fake.logoType = request.Header.Get("Content-Type")
	writer.WriteHeader(http.StatusNoContent)
}

func (fake *fakeAPI) handleGetIcon(writer http.ResponseWriter, _ *http.Request) {
	if fake.icon == nil {
		writer.WriteHeader(http.StatusNotFound)
		return
	}
	writer.Header().Set("Content-Type", "image/png")
	writer.Write(fake.icon)
}

func (fake *fakeAPI) handlePutIcon(writer http.ResponseWriter, request *http.Request) {
	body, err := io.ReadAll(request.Body)
	if err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	fake.icon = body
	writer.WriteHeader(http.StatusNoContent)
}

func writeJSON(writer http.ResponseWriter, value interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(value)
}
