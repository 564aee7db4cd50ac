package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/channel"
	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/panel"
	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/template"
	"github.com/GriffinCanCode/PanelOS/backend/internal/logging"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/id"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *panel.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logging.NewNop()
	manifest, err := template.ParseManifest([]byte(`
templates:
  settings:
    title: Settings
  inventory:
    title: Inventory
    badge: true
  toast:
    title: Toast
    destroy_on_hide: true
`))
	require.NoError(t, err)

	factory := template.NewFactory(manifest, log)
	registry := panel.NewRegistry(log)
	broker := channel.NewBroker(log)
	controller := panel.NewController(registry, broker, factory, log)

	handlers := NewHandlers(controller, factory)

	router := gin.New()
	router.POST("/panels/show", handlers.ShowPanel)
	router.POST("/panels/hide", handlers.HidePanel)
	router.POST("/panels/hide-all", handlers.HideAll)
	router.DELETE("/panels/:kind", handlers.DestroyKind)
	router.DELETE("/panels/:kind/:instance", handlers.DestroyPanel)
	router.GET("/panels", handlers.ListPanels)
	router.GET("/panels/:kind/active", handlers.ActivePanels)
	router.GET("/panels/:kind/badge", handlers.PanelBadge)
	router.POST("/data/send", handlers.SendData)
	router.POST("/data/broadcast", handlers.BroadcastData)
	router.GET("/health", handlers.Health)

	return router, controller
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestShowPanelEndpoint(t *testing.T) {
	router, controller := setupTestRouter(t)

	w := postJSON(t, router, "/panels/show", gin.H{
		"kind":     "settings",
		"instance": "user1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, controller.IsActive("settings", "user1"))

	var resp struct {
		Panel struct {
			Key    string `json:"key"`
			State  string `json:"state"`
			Active bool   `json:"active"`
		} `json:"panel"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "settings::user1", resp.Panel.Key)
	assert.Equal(t, "active", resp.Panel.State)
	assert.True(t, resp.Panel.Active)
}

func TestShowPanelDestroyedByHook(t *testing.T) {
	router, controller := setupTestRouter(t)

	postJSON(t, router, "/panels/show", gin.H{"kind": "settings", "instance": "user1"})
	postJSON(t, router, "/panels/hide", gin.H{"kind": "settings", "instance": "user1"})

	h, ok := controller.Registry().Lookup(id.New("settings", "user1"))
	require.True(t, ok)
	h.Handle.Hooks().OnShowComplete(func(p panel.Handle) {
		controller.Destroy(p)
	})

	// The record is gone before the handler can look it up again; the
	// response must still be a 200 built from the handle.
	w := postJSON(t, router, "/panels/show", gin.H{"kind": "settings", "instance": "user1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "settings::user1")
	assert.Equal(t, 0, controller.Registry().Len())
}

func TestShowUnknownKindEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := postJSON(t, router, "/panels/show", gin.H{"kind": "main_menu"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestShowMissingKind(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := postJSON(t, router, "/panels/show", gin.H{"instance": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHideEndpointKindWide(t *testing.T) {
	router, controller := setupTestRouter(t)

	postJSON(t, router, "/panels/show", gin.H{"kind": "settings", "instance": "user1"})
	postJSON(t, router, "/panels/show", gin.H{"kind": "settings", "instance": "user2"})

	w := postJSON(t, router, "/panels/hide", gin.H{"kind": "settings"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, controller.IsActive("settings", "user1"))
	assert.False(t, controller.IsActive("settings", "user2"))
}

func TestDestroyOnHideTemplateDefault(t *testing.T) {
	router, controller := setupTestRouter(t)

	postJSON(t, router, "/panels/show", gin.H{"kind": "toast"})
	postJSON(t, router, "/panels/hide", gin.H{"kind": "toast"})

	assert.Equal(t, 0, controller.Registry().Len(),
		"toast template defaults to destroy_on_hide")
}

func TestDestroyEndpointIdempotent(t *testing.T) {
	router, controller := setupTestRouter(t)

	postJSON(t, router, "/panels/show", gin.H{"kind": "settings", "instance": "user1"})

	req := httptest.NewRequest("DELETE", "/panels/settings/user1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, controller.Registry().Len())

	// Second delete is a silent no-op
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/panels/settings/user1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListAndActiveEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	postJSON(t, router, "/panels/show", gin.H{"kind": "settings", "instance": "user1"})
	postJSON(t, router, "/panels/show", gin.H{"kind": "settings", "instance": "user2"})
	postJSON(t, router, "/panels/hide", gin.H{"kind": "settings", "instance": "user2"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/panels?kind=settings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Panels []struct {
			Key    string `json:"key"`
			Active bool   `json:"active"`
		} `json:"panels"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Panels, 2)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/panels/settings/active", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Panels, 1)
	assert.Equal(t, "settings::user1", list.Panels[0].Key)
}

func TestBadgeEndpoint(t *testing.T) {
	router, controller := setupTestRouter(t)

	postJSON(t, router, "/panels/show", gin.H{"kind": "inventory"})

	badger, ok := panel.Component[template.Badger](controller, "inventory", "")
	require.True(t, ok)
	badger.SetBadge(7)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/panels/inventory/badge", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"badge": 7}`, w.Body.String())

	// Settings has no badge capability
	postJSON(t, router, "/panels/show", gin.H{"kind": "settings"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/panels/settings/badge", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendDataEndpoint(t *testing.T) {
	router, controller := setupTestRouter(t)

	var received interface{}
	controller.Subscribe("settings::user1", func(data interface{}) {
		received = data
	})

	w := postJSON(t, router, "/data/send", gin.H{
		"key":     "settings::user1",
		"payload": gin.H{"theme": "dark"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, received)

	payload, ok := received.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "dark", payload["theme"])
}

func TestSendDataNoSubscriberStillOK(t *testing.T) {
	router, _ := setupTestRouter(t)

	// Drop-on-no-subscriber is not an API error
	w := postJSON(t, router, "/data/send", gin.H{
		"key":     "nowhere",
		"payload": gin.H{"x": 1},
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBroadcastEndpoint(t *testing.T) {
	router, controller := setupTestRouter(t)

	postJSON(t, router, "/panels/show", gin.H{"kind": "settings", "instance": "user1"})
	postJSON(t, router, "/panels/show", gin.H{"kind": "settings", "instance": "user2"})

	var hits int
	controller.Subscribe("settings::user1", func(data interface{}) { hits++ })
	controller.Subscribe("settings::user2", func(data interface{}) { hits++ })

	w := postJSON(t, router, "/data/broadcast", gin.H{
		"kind":    "settings",
		"payload": gin.H{"refresh": true},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, hits)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
