package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/engine"
)

// PowerHandler 电源功耗计算
//
// Responses are the bare PowerAnalysis or {"error": "..."}, without the
// usual envelope.
type PowerHandler struct{}

func NewPowerHandler() *PowerHandler {
	return &PowerHandler{}
}

// number accepts JSON numbers only; strings, booleans and null are rejected.
func number(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// parsePowerInput reads a loosely-typed request body. Only the CPU figure is
// required; malformed optional fields are treated as absent.
func parsePowerInput(body map[string]any) engine.PowerInput {
	var in engine.PowerInput
	if cpu, ok := body["cpu"].(map[string]any); ok {
		if tdp, ok := number(cpu["tdp_watts"]); ok {
			in.CPU = &engine.CPUDraw{TDPWatts: tdp}
			if maxTDP, ok := number(cpu["max_tdp_watts"]); ok {
				in.CPU.MaxTDPWatts = &maxTDP
			}
		}
	}
	if gpu, ok := body["gpu"].(map[string]any); ok {
		if tdp, ok := number(gpu["tdp_watts"]); ok {
			in.GPU = &engine.GPUDraw{TDPWatts: tdp}
		}
	}
	in.Overclocking, _ = body["overclocking"].(bool)
	return in
}

// Calculate POST /api/power
func (h *PowerHandler) Calculate(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	body := map[string]any{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
	}

	analysis, err := engine.CalculatePower(parsePowerInput(body))
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis)
}
