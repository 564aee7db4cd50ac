package http

import (
	"net/http"

	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/panel"
	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/template"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	controller *panel.Controller
	factory    *template.Factory
}

// NewHandlers creates a new handler set
func NewHandlers(controller *panel.Controller, factory *template.Factory) *Handlers {
	return &Handlers{
		controller: controller,
		factory:    factory,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "PanelOS Backend",
		"version": "0.1.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"registry":  h.controller.Registry().Stats(),
		"templates": len(h.factory.Kinds()),
	})
}

// ShowPanel shows (and creates on demand) a panel
func (h *Handlers) ShowPanel(c *gin.Context) {
	var req types.ShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := []panel.ShowOption{}
	if req.Instance != "" {
		opts = append(opts, panel.WithInstance(req.Instance))
	}
	if req.Data != nil {
		opts = append(opts, panel.WithData(req.Data))
	}

	destroyOnHide := req.DestroyOnHide
	if !destroyOnHide {
		if tmpl, ok := h.factory.Template(req.Kind); ok {
			destroyOnHide = tmpl.DestroyOnHide
		}
	}
	if destroyOnHide {
		opts = append(opts, panel.WithDestroyOnHide())
	}

	handle, ok := h.controller.Show(req.Kind, opts...)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "panel not shown",
			"kind":  req.Kind,
		})
		return
	}

	// The record can be gone by now: a show-complete hook or a concurrent
	// destroy may have removed it. Answer from the handle in that case.
	if rec, ok := h.controller.Registry().Lookup(id.New(req.Kind, handle.Instance())); ok {
		c.JSON(http.StatusOK, gin.H{"panel": rec.Info()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"panel": types.PanelInfo{
		Key:      id.New(req.Kind, handle.Instance()).Key(),
		Kind:     handle.Kind(),
		Instance: handle.Instance(),
		HandleID: handle.ID().String(),
		State:    types.StateDestroyed,
	}})
}

// HidePanel hides one panel, or every panel of the kind when no instance is given
func (h *Handlers) HidePanel(c *gin.Context) {
	var req types.HideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.controller.Hide(req.Kind, req.Instance)
	c.JSON(http.StatusOK, gin.H{"hidden": true})
}

// HideAll hides every registered panel
func (h *Handlers) HideAll(c *gin.Context) {
	h.controller.HideAll()
	c.JSON(http.StatusOK, gin.H{"hidden": true})
}

// DestroyKind destroys every panel of a kind
func (h *Handlers) DestroyKind(c *gin.Context) {
	kind := types.Kind(c.Param("kind"))
	h.controller.DestroyAllOfKind(kind)
	c.JSON(http.StatusOK, gin.H{"destroyed": true})
}

// DestroyPanel destroys one panel instance. Destroying an unknown identity
// is a no-op, mirroring the idempotent destroy contract.
func (h *Handlers) DestroyPanel(c *gin.Context) {
	kind := types.Kind(c.Param("kind"))
	instance := c.Param("instance")

	if rec, ok := h.controller.Registry().Lookup(id.New(kind, instance)); ok {
		h.controller.Destroy(rec.Handle)
	}
	c.JSON(http.StatusOK, gin.H{"destroyed": true})
}

// ListPanels lists registered panels, optionally filtered by kind
func (h *Handlers) ListPanels(c *gin.Context) {
	registry := h.controller.Registry()

	var recs []panel.Record
	if kind := c.Query("kind"); kind != "" {
		recs = registry.AllOfKind(types.Kind(kind))
	} else {
		recs = registry.All()
	}

	infos := make([]types.PanelInfo, 0, len(recs))
	for _, rec := range recs {
		infos = append(infos, rec.Info())
	}

	c.JSON(http.StatusOK, gin.H{
		"panels": infos,
		"stats":  registry.Stats(),
	})
}

// ActivePanels lists the active panels of a kind
func (h *Handlers) ActivePanels(c *gin.Context) {
	kind := types.Kind(c.Param("kind"))

	recs := h.controller.ActiveOfKind(kind)
	infos := make([]types.PanelInfo, 0, len(recs))
	for _, rec := range recs {
		infos = append(infos, rec.Info())
	}
	c.JSON(http.StatusOK, gin.H{"panels": infos})
}

// PanelBadge reads the badge capability of a panel, demonstrating
// capability lookup across the HTTP boundary
func (h *Handlers) PanelBadge(c *gin.Context) {
	kind := types.Kind(c.Param("kind"))
	instance := c.Query("instance")

	badger, ok := panel.Component[template.Badger](h.controller, kind, instance)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "panel or capability not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"badge": badger.Badge()})
}

// SendData publishes a payload to a canonical panel key
func (h *Handlers) SendData(c *gin.Context) {
	var req types.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.controller.SendData(req.Key, req.Payload)
	c.JSON(http.StatusOK, gin.H{"sent": true})
}

// BroadcastData publishes a payload to every registered panel of a kind
func (h *Handlers) BroadcastData(c *gin.Context) {
	var req types.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.controller.SendDataToKind(req.Kind, req.Payload)
	c.JSON(http.StatusOK, gin.H{"sent": true})
}

// Stats returns registry statistics
func (h *Handlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller.Registry().Stats())
}
