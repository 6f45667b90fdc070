package engine

import "github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"

func intPtr(v int) *int { return &v }

func testCPU(socket string, tdp int, mem ...string) *entity.CPU {
	return &entity.CPU{
		Base:       entity.Base{ObjectID: "cpu-" + socket, ComponentType: "CPU", Brand: "AMD", Model: "Test CPU", PriceUSD: 300},
		Socket:     socket,
		TDPWatts:   tdp,
		Cores:      8,
		Threads:    16,
		MemoryType: mem,
	}
}

func testBoard(socket, formFactor string, mem ...string) *entity.Motherboard {
	return &entity.Motherboard{
		Base:        entity.Base{ObjectID: "mb-" + socket, ComponentType: "Motherboard", Brand: "ASUS", Model: "Test Board", PriceUSD: 200},
		Socket:      socket,
		FormFactor:  formFactor,
		MemoryType:  mem,
		MemorySlots: 4,
		MaxMemoryGB: 128,
	}
}

func testGPU(length, tdp int) *entity.GPU {
	return &entity.GPU{
		Base:     entity.Base{ObjectID: "gpu-test", ComponentType: "GPU", Brand: "NVIDIA", Model: "GeForce RTX Test", PriceUSD: 800},
		LengthMM: length,
		TDPWatts: tdp,
		VRAMGB:   16,
	}
}

func testRAM(mem string) *entity.RAM {
	return &entity.RAM{
		Base:       entity.Base{ObjectID: "ram-" + mem, ComponentType: "RAM", Brand: "G.Skill", Model: "Test Kit", PriceUSD: 120},
		MemoryType: mem,
		SpeedMHz:   6000,
		CapacityGB: 16,
		Modules:    2,
	}
}

func testPSU(watts int) *entity.PSU {
	return &entity.PSU{
		Base:             entity.Base{ObjectID: "psu-test", ComponentType: "PSU", Brand: "Corsair", Model: "Test PSU", PriceUSD: 110},
		Wattage:          watts,
		EfficiencyRating: "80+ Gold",
		Modular:          "Full",
	}
}

func testCase(maxGPU, maxCooler int, formFactors ...string) *entity.Case {
	return &entity.Case{
		Base:              entity.Base{ObjectID: "case-test", ComponentType: "Case", Brand: "Fractal", Model: "Test Case", PriceUSD: 150},
		FormFactorSupport: formFactors,
		MaxGPULengthMM:    maxGPU,
		MaxCoolerHeightMM: maxCooler,
	}
}

func testCooler(height int, sockets ...string) *entity.Cooler {
	return &entity.Cooler{
		Base:          entity.Base{ObjectID: "cooler-test", ComponentType: "Cooler", Brand: "Noctua", Model: "Test Cooler", PriceUSD: 100},
		CoolerType:    "Air",
		SocketSupport: sockets,
		HeightMM:      height,
		TDPRating:     220,
	}
}

// compatibleBuild has every slot filled and raises no issue.
func compatibleBuild() entity.Build {
	return entity.Build{
		CPU:         testCPU("AM5", 120, "DDR5"),
		Motherboard: testBoard("AM5", "ATX", "DDR5"),
		GPU:         testGPU(300, 250),
		RAM:         testRAM("DDR5"),
		PSU:         testPSU(850),
		Case:        testCase(360, 170, "ATX", "Micro-ATX", "Mini-ITX"),
		Cooler:      testCooler(158, "AM5", "AM4", "LGA1700"),
	}
}

func issueCodes(issues []entity.Issue) []string {
	codes := make([]string, 0, len(issues))
	for _, is := range issues {
		codes = append(codes, is.Code)
	}
	return codes
}
