package engine

import (
	"slices"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

// Constraint classifies a rule for single-candidate checks.
type Constraint int

const (
	// Hard rules block a candidate outright.
	Hard Constraint = iota
	// Soft rules only warn about a candidate.
	Soft
)

// Rule 兼容性规则描述
type Rule struct {
	Code       string
	Severity   entity.Severity
	Constraint Constraint
	Message    string
	Suggestion string
	// Requires lists the slots that must be filled for the rule to apply.
	Requires []entity.Kind
	// Involves lists every slot the rule reads; a superset of Requires.
	Involves []entity.Kind
	// Violated is only called when every required slot is filled.
	Violated func(b entity.Build) bool
}

// Applies reports whether every required slot is filled.
func (r Rule) Applies(b entity.Build) bool {
	for _, k := range r.Requires {
		if !b.Has(k) {
			return false
		}
	}
	return true
}

// Touches reports whether the rule reads the kind's slot.
func (r Rule) Touches(k entity.Kind) bool {
	return slices.Contains(r.Involves, k)
}

// Evaluate returns the rule's issue for b, if it fires.
func (r Rule) Evaluate(b entity.Build) (entity.Issue, bool) {
	if !r.Applies(b) || !r.Violated(b) {
		return entity.Issue{}, false
	}
	affected := []entity.Kind{}
	for _, k := range r.Involves {
		if b.Has(k) {
			affected = append(affected, k)
		}
	}
	return entity.Issue{
		Type:       r.Severity,
		Code:       r.Code,
		Message:    r.Message,
		Affected:   affected,
		Suggestion: r.Suggestion,
	}, true
}

const (
	CodeSocketMismatch     = "socket_mismatch"
	CodeMemoryTypeMismatch = "memory_type_mismatch"
	CodeGPUClearance       = "gpu_clearance"
	CodeCoolerHeight       = "cooler_height"
	CodeCoolerSocket       = "cooler_socket"
	CodeFormFactorMismatch = "form_factor_mismatch"
	CodePSUInsufficient    = "psu_insufficient"
	CodePSUTight           = "psu_tight"
)

// Rules is evaluated in order; the order is part of the output contract.
var Rules = []Rule{
	{
		Code:       CodeSocketMismatch,
		Severity:   entity.SeverityError,
		Constraint: Hard,
		Message:    "CPU socket does not match motherboard socket",
		Suggestion: "Choose a motherboard with the same socket as the CPU",
		Requires:   []entity.Kind{entity.KindCPU, entity.KindMotherboard},
		Involves:   []entity.Kind{entity.KindCPU, entity.KindMotherboard},
		Violated: func(b entity.Build) bool {
			return b.CPU.Socket != b.Motherboard.Socket
		},
	},
	{
		Code:       CodeMemoryTypeMismatch,
		Severity:   entity.SeverityError,
		Constraint: Hard,
		Message:    "RAM memory type incompatible with motherboard",
		Suggestion: "Choose RAM of a memory type the motherboard supports",
		Requires:   []entity.Kind{entity.KindMotherboard, entity.KindRAM},
		Involves:   []entity.Kind{entity.KindMotherboard, entity.KindRAM},
		Violated: func(b entity.Build) bool {
			return !slices.Contains(b.Motherboard.MemoryType, b.RAM.MemoryType)
		},
	},
	{
		Code:       CodeGPUClearance,
		Severity:   entity.SeverityWarning,
		Constraint: Soft,
		Message:    "GPU may not fit in case (clearance)",
		Suggestion: "Check the case's GPU clearance or pick a shorter card",
		Requires:   []entity.Kind{entity.KindGPU, entity.KindCase},
		Involves:   []entity.Kind{entity.KindGPU, entity.KindCase},
		Violated: func(b entity.Build) bool {
			return b.GPU.LengthMM > b.Case.MaxGPULengthMM
		},
	},
	{
		Code:       CodeCoolerHeight,
		Severity:   entity.SeverityWarning,
		Constraint: Soft,
		Message:    "Cooler may not fit in case (height)",
		Suggestion: "Pick a lower-profile cooler or a case with more clearance",
		Requires:   []entity.Kind{entity.KindCooler, entity.KindCase},
		Involves:   []entity.Kind{entity.KindCooler, entity.KindCase},
		Violated: func(b entity.Build) bool {
			return b.Cooler.HeightMM > b.Case.MaxCoolerHeightMM
		},
	},
	{
		Code:       CodeCoolerSocket,
		Severity:   entity.SeverityError,
		Constraint: Hard,
		Message:    "Cooler does not support CPU socket",
		Suggestion: "Choose a cooler that lists the CPU socket, or fit a mounting kit",
		Requires:   []entity.Kind{entity.KindCooler, entity.KindCPU},
		Involves:   []entity.Kind{entity.KindCooler, entity.KindCPU},
		Violated: func(b entity.Build) bool {
			return !slices.Contains(b.Cooler.SocketSupport, b.CPU.Socket)
		},
	},
	{
		Code:       CodeFormFactorMismatch,
		Severity:   entity.SeverityError,
		Constraint: Hard,
		Message:    "Motherboard form factor not supported by case",
		Suggestion: "Choose a case that supports the motherboard form factor",
		Requires:   []entity.Kind{entity.KindMotherboard, entity.KindCase},
		Involves:   []entity.Kind{entity.KindMotherboard, entity.KindCase},
		Violated: func(b entity.Build) bool {
			return !slices.Contains(b.Case.FormFactorSupport, b.Motherboard.FormFactor)
		},
	},
	{
		Code:       CodePSUInsufficient,
		Severity:   entity.SeverityError,
		Constraint: Soft,
		Message:    "PSU wattage insufficient for estimated system draw",
		Suggestion: "Choose a PSU at or above the recommended wattage",
		Requires:   []entity.Kind{entity.KindCPU, entity.KindPSU},
		Involves:   []entity.Kind{entity.KindCPU, entity.KindGPU, entity.KindPSU},
		Violated: func(b entity.Build) bool {
			draw, ok := estimatedDraw(b)
			return ok && float64(b.PSU.Wattage) < draw
		},
	},
	{
		Code:       CodePSUTight,
		Severity:   entity.SeverityWarning,
		Constraint: Soft,
		Message:    "PSU wattage is tight; consider higher capacity",
		Suggestion: "Leave at least 20% headroom above the estimated draw",
		Requires:   []entity.Kind{entity.KindCPU, entity.KindPSU},
		Involves:   []entity.Kind{entity.KindCPU, entity.KindGPU, entity.KindPSU},
		Violated: func(b entity.Build) bool {
			draw, ok := estimatedDraw(b)
			if !ok {
				return false
			}
			w := float64(b.PSU.Wattage)
			// w < draw*1.2, compared without the inexact 1.2 literal
			return w >= draw && w*5 < draw*6
		},
	},
}

// estimatedDraw is the sustained system draw without overclocking.
func estimatedDraw(b entity.Build) (float64, bool) {
	analysis, err := AnalyzeBuildPower(b, false)
	if err != nil {
		return 0, false
	}
	return analysis.Breakdown.TotalDraw, true
}

// ValidateBuild evaluates every rule against the build, in table order.
func ValidateBuild(b entity.Build) entity.ValidationResult {
	issues := []entity.Issue{}
	for _, r := range Rules {
		if issue, fired := r.Evaluate(b); fired {
			issues = append(issues, issue)
		}
	}
	return entity.ValidationResult{Issues: issues}
}
