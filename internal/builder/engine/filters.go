package engine

import (
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

// DeriveFilters narrows catalog browsing to parts that fit what is already
// chosen. The motherboard, when present, is the most constraining part and
// takes precedence over the CPU.
func DeriveFilters(b entity.Build) entity.ActiveFilters {
	var f entity.ActiveFilters
	switch {
	case b.Motherboard != nil:
		f.Socket = nonEmpty(b.Motherboard.Socket)
		if len(b.Motherboard.MemoryType) > 0 {
			f.MemoryType = nonEmpty(b.Motherboard.MemoryType[0])
		}
		f.FormFactor = nonEmpty(b.Motherboard.FormFactor)
	case b.CPU != nil:
		f.Socket = nonEmpty(b.CPU.Socket)
		if len(b.CPU.MemoryType) == 1 {
			f.MemoryType = nonEmpty(b.CPU.MemoryType[0])
		}
	}
	return f
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
