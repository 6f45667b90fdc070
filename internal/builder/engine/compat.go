package engine

import (
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

// CheckComponentCompatibility answers whether adding candidate would
// introduce a problem against the existing selections.
//
// The candidate takes its own slot in a hypothetical build, so whatever
// currently occupies that slot is ignored. Only rules that read the
// candidate's slot and whose other required slots are filled are evaluated;
// if none are, the status is unknown.
func CheckComponentCompatibility(candidate entity.Component, b entity.Build) entity.CompatibilityReport {
	report := entity.CompatibilityReport{Status: entity.StatusUnknown, Issues: []entity.Issue{}}
	if candidate == nil || !candidate.Kind().Valid() {
		return report
	}

	kind := candidate.Kind()
	hypothetical := b.With(candidate)

	evaluated := false
	for _, r := range Rules {
		if !r.Touches(kind) || !r.Applies(hypothetical) {
			continue
		}
		evaluated = true
		issue, fired := r.Evaluate(hypothetical)
		if !fired {
			continue
		}
		report.Issues = append(report.Issues, issue)
		if r.Constraint == Hard {
			report.Status = entity.StatusIncompatible
		} else if report.Status != entity.StatusIncompatible {
			report.Status = entity.StatusWarning
		}
	}

	if evaluated && len(report.Issues) == 0 {
		report.Status = entity.StatusCompatible
	}
	return report
}

// AnnotateCompatibility computes the status of every candidate against b.
func AnnotateCompatibility(candidates []entity.Component, b entity.Build) []entity.CompatibilityReport {
	out := make([]entity.CompatibilityReport, len(candidates))
	for i, c := range candidates {
		out[i] = CheckComponentCompatibility(c, b)
	}
	return out
}
