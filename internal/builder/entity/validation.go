package entity

// Severity 问题级别
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue 兼容性问题
type Issue struct {
	Type       Severity `json:"type"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Affected   []Kind   `json:"affected_components"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// ValidationResult holds issues in rule-evaluation order.
type ValidationResult struct {
	Issues []Issue `json:"issues"`
}

func (r ValidationResult) HasErrors() bool {
	for _, is := range r.Issues {
		if is.Type == SeverityError {
			return true
		}
	}
	return false
}

func (r ValidationResult) HasWarnings() bool {
	for _, is := range r.Issues {
		if is.Type == SeverityWarning {
			return true
		}
	}
	return false
}

// Valid reports whether no error-level issue is present. Warnings do not
// invalidate a build.
func (r ValidationResult) Valid() bool {
	return !r.HasErrors()
}

// Errors returns only the error-level issues, order preserved.
func (r ValidationResult) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns only the warning-level issues, order preserved.
func (r ValidationResult) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r ValidationResult) filter(s Severity) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Type == s {
			out = append(out, is)
		}
	}
	return out
}

// CompatibilityStatus 单个候选组件相对当前方案的兼容状态
type CompatibilityStatus string

const (
	StatusCompatible   CompatibilityStatus = "compatible"
	StatusWarning      CompatibilityStatus = "warning"
	StatusIncompatible CompatibilityStatus = "incompatible"
	StatusUnknown      CompatibilityStatus = "unknown"
)

// CompatibilityReport explains a candidate's status.
type CompatibilityReport struct {
	Status CompatibilityStatus `json:"status"`
	Issues []Issue             `json:"issues"`
}

// ActiveFilters 根据已选组件推导的搜索约束
type ActiveFilters struct {
	Socket     *string `json:"socket"`
	MemoryType *string `json:"memory_type"`
	FormFactor *string `json:"form_factor"`
}

// IsZero reports whether no constraint is set.
func (f ActiveFilters) IsZero() bool {
	return f.Socket == nil && f.MemoryType == nil && f.FormFactor == nil
}
