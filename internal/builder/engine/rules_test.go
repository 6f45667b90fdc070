package engine

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

func TestValidateBuildCompatible(t *testing.T) {
	result := ValidateBuild(compatibleBuild())
	if len(result.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", result.Issues)
	}
	if !result.Valid() {
		t.Fatal("expected build to be valid")
	}
}

func TestValidateBuildEmpty(t *testing.T) {
	result := ValidateBuild(entity.Build{})
	if result.Issues == nil || len(result.Issues) != 0 {
		t.Fatalf("expected empty non-nil issue list, got %#v", result.Issues)
	}
}

func TestValidateBuildScenarios(t *testing.T) {
	tests := []struct {
		name     string
		build    entity.Build
		code     string
		severity entity.Severity
		contains string
	}{
		{
			name:     "socket mismatch",
			build:    entity.Build{CPU: testCPU("AM5", 120), Motherboard: testBoard("LGA1700", "ATX", "DDR5")},
			code:     CodeSocketMismatch,
			severity: entity.SeverityError,
			contains: "socket",
		},
		{
			name:     "memory type mismatch",
			build:    entity.Build{Motherboard: testBoard("AM5", "ATX", "DDR5"), RAM: testRAM("DDR4")},
			code:     CodeMemoryTypeMismatch,
			severity: entity.SeverityError,
			contains: "memory type",
		},
		{
			name:     "gpu clearance",
			build:    entity.Build{GPU: testGPU(336, 320), Case: testCase(325, 170, "ATX")},
			code:     CodeGPUClearance,
			severity: entity.SeverityWarning,
			contains: "clearance",
		},
		{
			name:     "cooler height",
			build:    entity.Build{Cooler: testCooler(168, "AM5"), Case: testCase(400, 160, "ATX")},
			code:     CodeCoolerHeight,
			severity: entity.SeverityWarning,
			contains: "height",
		},
		{
			name:     "cooler socket",
			build:    entity.Build{CPU: testCPU("LGA1851", 125), Cooler: testCooler(150, "AM5", "LGA1700")},
			code:     CodeCoolerSocket,
			severity: entity.SeverityError,
			contains: "socket",
		},
		{
			name:     "form factor",
			build:    entity.Build{Motherboard: testBoard("AM5", "E-ATX", "DDR5"), Case: testCase(400, 170, "ATX", "Micro-ATX")},
			code:     CodeFormFactorMismatch,
			severity: entity.SeverityError,
			contains: "form factor",
		},
		{
			name:     "psu insufficient",
			build:    entity.Build{CPU: testCPU("LGA1700", 253), GPU: testGPU(300, 450), PSU: testPSU(500)},
			code:     CodePSUInsufficient,
			severity: entity.SeverityError,
			contains: "PSU wattage insufficient",
		},
		{
			name:     "psu tight",
			build:    entity.Build{CPU: testCPU("AM5", 105), GPU: testGPU(300, 220), PSU: testPSU(550)},
			code:     CodePSUTight,
			severity: entity.SeverityWarning,
			contains: "tight",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateBuild(tt.build)
			if len(result.Issues) != 1 {
				t.Fatalf("expected exactly one issue, got %v", issueCodes(result.Issues))
			}
			is := result.Issues[0]
			if is.Code != tt.code || is.Type != tt.severity {
				t.Fatalf("expected %s/%s, got %s/%s", tt.code, tt.severity, is.Code, is.Type)
			}
			if !strings.Contains(is.Message, tt.contains) {
				t.Fatalf("message %q does not mention %q", is.Message, tt.contains)
			}
			if len(is.Affected) < 2 {
				t.Fatalf("expected at least two affected kinds, got %v", is.Affected)
			}
		})
	}
}

func TestValidateBuildPSUBoundaries(t *testing.T) {
	// draw = 100 + 105 + 220 + 75 = 500
	base := entity.Build{CPU: testCPU("AM5", 105), GPU: testGPU(300, 220)}
	tests := []struct {
		watts int
		want  []string
	}{
		{499, []string{CodePSUInsufficient}},
		{500, []string{CodePSUTight}},
		{599, []string{CodePSUTight}},
		{600, []string{}},
		{1000, []string{}},
	}
	for _, tt := range tests {
		b := base.With(testPSU(tt.watts))
		got := issueCodes(ValidateBuild(b).Issues)
		if !slices.Equal(got, tt.want) {
			t.Errorf("%dW: expected %v, got %v", tt.watts, tt.want, got)
		}
	}
}

func TestValidateBuildPSUSkippedWithoutCPU(t *testing.T) {
	b := entity.Build{GPU: testGPU(300, 450), PSU: testPSU(300)}
	if got := ValidateBuild(b).Issues; len(got) != 0 {
		t.Fatalf("expected PSU rules to be skipped without a CPU, got %v", issueCodes(got))
	}
}

func TestValidateBuildWithoutCPUNeverReportsCPURules(t *testing.T) {
	b := entity.Build{
		Motherboard: testBoard("AM5", "E-ATX", "DDR5"),
		GPU:         testGPU(400, 450),
		RAM:         testRAM("DDR4"),
		PSU:         testPSU(200),
		Case:        testCase(300, 150, "ATX"),
		Cooler:      testCooler(170, "LGA1700"),
	}
	for _, is := range ValidateBuild(b).Issues {
		switch is.Code {
		case CodeSocketMismatch, CodeCoolerSocket, CodePSUInsufficient, CodePSUTight:
			t.Fatalf("rule %s fired without a CPU", is.Code)
		}
	}
}

func TestValidateBuildOrderAndDeterminism(t *testing.T) {
	b := entity.Build{
		CPU:         testCPU("AM5", 253),
		Motherboard: testBoard("LGA1700", "E-ATX", "DDR5"),
		GPU:         testGPU(400, 450),
		RAM:         testRAM("DDR4"),
		PSU:         testPSU(400),
		Case:        testCase(300, 150, "ATX"),
		Cooler:      testCooler(170, "LGA1700"),
	}
	want := []string{
		CodeSocketMismatch,
		CodeMemoryTypeMismatch,
		CodeGPUClearance,
		CodeCoolerHeight,
		CodeCoolerSocket,
		CodeFormFactorMismatch,
		CodePSUInsufficient,
	}
	first := ValidateBuild(b)
	if got := issueCodes(first.Issues); !slices.Equal(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
	second := ValidateBuild(b)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two evaluations of the same build differ")
	}
	if first.Valid() || !first.HasWarnings() {
		t.Fatal("expected errors and warnings to be reported")
	}
	if len(first.Errors())+len(first.Warnings()) != len(first.Issues) {
		t.Fatal("errors and warnings do not partition the issues")
	}
}

func TestPSUIssueAffectedKinds(t *testing.T) {
	b := entity.Build{CPU: testCPU("AM5", 253), GPU: testGPU(300, 450), PSU: testPSU(500)}
	is := ValidateBuild(b).Issues[0]
	want := []entity.Kind{entity.KindCPU, entity.KindGPU, entity.KindPSU}
	if !slices.Equal(is.Affected, want) {
		t.Fatalf("expected affected %v, got %v", want, is.Affected)
	}

	noGPU := ValidateBuild(entity.Build{CPU: testCPU("AM5", 253), PSU: testPSU(300)}).Issues[0]
	if !slices.Equal(noGPU.Affected, []entity.Kind{entity.KindCPU, entity.KindPSU}) {
		t.Fatalf("absent GPU should not be listed, got %v", noGPU.Affected)
	}
}

func TestRulesTable(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Rules {
		if seen[r.Code] {
			t.Fatalf("duplicate rule code %s", r.Code)
		}
		seen[r.Code] = true
		for _, k := range r.Requires {
			if !r.Touches(k) {
				t.Fatalf("rule %s requires %s but does not involve it", r.Code, k)
			}
		}
		if r.Applies(entity.Build{}) {
			t.Fatalf("rule %s applies to an empty build", r.Code)
		}
	}
}
