package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/service"
)

// BuildHandler 装机方案（按会话）
type BuildHandler struct {
	svc *service.BuildService
}

func NewBuildHandler(svc *service.BuildService) *BuildHandler {
	return &BuildHandler{svc: svc}
}

// Get GET /api/v1/build
func (h *BuildHandler) Get(c *gin.Context) {
	Success(c, h.svc.Get(c.Request.Context(), GetSessionID(c)))
}

// readComponent resolves the request body to a component. A body holding
// nothing but an objectID is looked up in the catalog; anything else is
// decoded as a component record, as kind when the slot is known.
func (h *BuildHandler) readComponent(c *gin.Context, kind *entity.Kind) (entity.Component, bool) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		BadRequest(c, "failed to read request body")
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		BadRequest(c, "invalid JSON body")
		return nil, false
	}

	if raw, ok := fields["objectID"]; ok && len(fields) == 1 {
		var objectID string
		if err := json.Unmarshal(raw, &objectID); err != nil || objectID == "" {
			BadRequest(c, "objectID must be a non-empty string")
			return nil, false
		}
		comp, err := h.svc.Resolve(c.Request.Context(), objectID)
		if err != nil {
			respondError(c, err)
			return nil, false
		}
		return comp, true
	}

	var comp entity.Component
	if _, typed := fields["component_type"]; kind != nil && !typed {
		comp, err = entity.DecodeComponentAs(*kind, data)
	} else {
		comp, err = entity.DecodeComponent(data)
	}
	if err != nil {
		BadRequest(c, err.Error())
		return nil, false
	}
	return comp, true
}

func slotKind(c *gin.Context) (entity.Kind, bool) {
	kind, err := entity.ParseKind(c.Param("kind"))
	if err != nil {
		BadRequest(c, err.Error())
		return 0, false
	}
	return kind, true
}

// Add PUT /api/v1/build/components
func (h *BuildHandler) Add(c *gin.Context) {
	comp, ok := h.readComponent(c, nil)
	if !ok {
		return
	}
	snap, err := h.svc.Add(c.Request.Context(), GetSessionID(c), comp)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, snap)
}

// Replace PUT /api/v1/build/components/:kind
func (h *BuildHandler) Replace(c *gin.Context) {
	kind, ok := slotKind(c)
	if !ok {
		return
	}
	comp, ok := h.readComponent(c, &kind)
	if !ok {
		return
	}
	snap, err := h.svc.Replace(c.Request.Context(), GetSessionID(c), kind, comp)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, snap)
}

// Remove DELETE /api/v1/build/components/:kind
func (h *BuildHandler) Remove(c *gin.Context) {
	kind, ok := slotKind(c)
	if !ok {
		return
	}
	snap, err := h.svc.Remove(c.Request.Context(), GetSessionID(c), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, snap)
}

// Clear DELETE /api/v1/build
func (h *BuildHandler) Clear(c *gin.Context) {
	Success(c, h.svc.Clear(c.Request.Context(), GetSessionID(c)))
}
