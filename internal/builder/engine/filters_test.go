package engine

import (
	"testing"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

func strOrNil(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestDeriveFilters(t *testing.T) {
	tests := []struct {
		name                   string
		build                  entity.Build
		socket, memory, factor string
	}{
		{"empty", entity.Build{}, "<nil>", "<nil>", "<nil>"},
		{"cpu with one memory type", entity.Build{CPU: testCPU("AM5", 120, "DDR5")}, "AM5", "DDR5", "<nil>"},
		{"cpu with two memory types", entity.Build{CPU: testCPU("LGA1700", 125, "DDR4", "DDR5")}, "LGA1700", "<nil>", "<nil>"},
		{"cpu without memory types", entity.Build{CPU: testCPU("AM4", 65)}, "AM4", "<nil>", "<nil>"},
		{"motherboard only", entity.Build{Motherboard: testBoard("LGA1700", "Micro-ATX", "DDR5", "DDR4")}, "LGA1700", "DDR5", "Micro-ATX"},
		{
			"motherboard wins over cpu",
			entity.Build{CPU: testCPU("AM5", 120, "DDR5"), Motherboard: testBoard("AM4", "ATX", "DDR4")},
			"AM4", "DDR4", "ATX",
		},
		{"unrelated parts", entity.Build{GPU: testGPU(300, 250), Case: testCase(360, 170, "ATX")}, "<nil>", "<nil>", "<nil>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DeriveFilters(tt.build)
			if got := strOrNil(f.Socket); got != tt.socket {
				t.Fatalf("socket: expected %s, got %s", tt.socket, got)
			}
			if got := strOrNil(f.MemoryType); got != tt.memory {
				t.Fatalf("memory_type: expected %s, got %s", tt.memory, got)
			}
			if got := strOrNil(f.FormFactor); got != tt.factor {
				t.Fatalf("form_factor: expected %s, got %s", tt.factor, got)
			}
		})
	}
}

func TestDeriveFiltersEmptyIsZero(t *testing.T) {
	if !DeriveFilters(entity.Build{}).IsZero() {
		t.Fatal("expected no filters for an empty build")
	}
}
