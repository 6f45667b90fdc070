package engine

import (
	"errors"
	"fmt"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

// ErrKindMismatch is returned when a component is put in another kind's slot.
var ErrKindMismatch = errors.New("component kind does not match slot")

// Derived 由 Build 重新计算的派生数据，从不单独持久化
type Derived struct {
	TotalPrice float64                 `json:"total_price"`
	TotalTDP   int                     `json:"total_tdp"`
	Validation entity.ValidationResult `json:"validation"`
	Filters    entity.ActiveFilters    `json:"filters"`
	Power      *PowerAnalysis          `json:"power"`
	Missing    []entity.Kind           `json:"missing"`
	Complete   bool                    `json:"complete"`
}

// Snapshot is a build together with the values derived from it.
type Snapshot struct {
	Build entity.Build `json:"build"`
	Derived
}

// Derive recomputes every derived value from b.
func Derive(b entity.Build) Derived {
	d := Derived{
		TotalPrice: b.TotalPrice(),
		TotalTDP:   totalTDP(b),
		Validation: ValidateBuild(b),
		Filters:    DeriveFilters(b),
		Missing:    b.MissingKinds(),
		Complete:   b.IsComplete(),
	}
	if power, err := AnalyzeBuildPower(b, false); err == nil {
		d.Power = power
	}
	return d
}

// totalTDP sums the rated (not overclocked) TDP of CPU and GPU.
func totalTDP(b entity.Build) int {
	total := 0
	if b.CPU != nil {
		total += b.CPU.TDPWatts
	}
	if b.GPU != nil {
		total += b.GPU.TDPWatts
	}
	return total
}

// Rehydrate derives a snapshot for a build loaded from storage.
func Rehydrate(b entity.Build) Snapshot {
	return Snapshot{Build: b, Derived: Derive(b)}
}

// Add places c in its slot, replacing any previous occupant.
func Add(b entity.Build, c entity.Component) Snapshot {
	return Rehydrate(b.With(c))
}

// Replace puts c in the slot for kind; c must be of that kind.
func Replace(b entity.Build, kind entity.Kind, c entity.Component) (Snapshot, error) {
	if c == nil || c.Kind() != kind {
		return Snapshot{}, fmt.Errorf("%w: slot %s", ErrKindMismatch, kind)
	}
	return Rehydrate(b.With(c)), nil
}

// Remove empties the slot for kind.
func Remove(b entity.Build, kind entity.Kind) Snapshot {
	return Rehydrate(b.Without(kind))
}

// Clear returns the empty build.
func Clear() Snapshot {
	return Rehydrate(entity.Build{})
}
