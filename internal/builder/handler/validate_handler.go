package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/engine"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

// ValidateHandler 无状态兼容性校验
type ValidateHandler struct{}

func NewValidateHandler() *ValidateHandler {
	return &ValidateHandler{}
}

// Validate POST /api/v1/validate?overclocking=true
//
// The body is a Build; the response carries every value derived from it.
func (h *ValidateHandler) Validate(c *gin.Context) {
	var b entity.Build
	if err := c.ShouldBindJSON(&b); err != nil {
		BadRequest(c, "invalid build: "+err.Error())
		return
	}

	d := engine.Derive(b)
	if c.Query("overclocking") == "true" && b.CPU != nil {
		d.Power, _ = engine.AnalyzeBuildPower(b, true)
	}
	Success(c, d)
}

// CompatibilityRequest 候选组件兼容性查询
type CompatibilityRequest struct {
	Candidate json.RawMessage `json:"candidate" binding:"required"`
	Build     entity.Build    `json:"build"`
}

// Check POST /api/v1/compatibility
func (h *ValidateHandler) Check(c *gin.Context) {
	var req CompatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	candidate, err := entity.DecodeComponent(req.Candidate)
	if err != nil {
		BadRequest(c, "invalid candidate: "+err.Error())
		return
	}
	Success(c, engine.CheckComponentCompatibility(candidate, req.Build))
}
