package testutil

import "github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"

func base(id, kind, brand, model string, price float64) entity.Base {
	return entity.Base{ObjectID: id, ComponentType: kind, Brand: brand, Model: model, PriceUSD: price, PerformanceTier: "mid-range"}
}

// SampleCatalog returns a small catalog spanning two platforms (AM5/DDR5 and
// LGA1700/DDR4) with one part of every kind.
func SampleCatalog() []entity.Component {
	return []entity.Component{
		&entity.CPU{Base: base("cpu-amd-ryzen-7-7700x", "CPU", "AMD", "Ryzen 7 7700X", 299), Socket: "AM5", TDPWatts: 105, Cores: 8, Threads: 16, MemoryType: []string{"DDR5"}},
		&entity.CPU{Base: base("cpu-intel-core-i5-12400", "CPU", "Intel", "Core i5-12400", 149), Socket: "LGA1700", TDPWatts: 65, Cores: 6, Threads: 12, MemoryType: []string{"DDR4", "DDR5"}, IntegratedGraphics: true},
		&entity.Motherboard{Base: base("motherboard-asus-tuf-b650-plus", "Motherboard", "ASUS", "TUF B650-PLUS", 189), Socket: "AM5", FormFactor: "ATX", MemoryType: []string{"DDR5"}, MemorySlots: 4, MaxMemoryGB: 192},
		&entity.Motherboard{Base: base("motherboard-msi-pro-b660m-a", "Motherboard", "MSI", "PRO B660M-A DDR4", 129), Socket: "LGA1700", FormFactor: "Micro-ATX", MemoryType: []string{"DDR4"}, MemorySlots: 4, MaxMemoryGB: 128},
		&entity.GPU{Base: base("gpu-nvidia-rtx-4070", "GPU", "NVIDIA", "GeForce RTX 4070", 549), LengthMM: 244, TDPWatts: 200, VRAMGB: 12},
		&entity.GPU{Base: base("gpu-nvidia-rtx-4090", "GPU", "NVIDIA", "GeForce RTX 4090", 1599), LengthMM: 336, TDPWatts: 450, VRAMGB: 24},
		&entity.RAM{Base: base("ram-gskill-flare-x5-32gb", "RAM", "G.Skill", "Flare X5 32GB", 109), MemoryType: "DDR5", SpeedMHz: 6000, CapacityGB: 16, Modules: 2},
		&entity.RAM{Base: base("ram-corsair-vengeance-lpx-16gb", "RAM", "Corsair", "Vengeance LPX 16GB", 45), MemoryType: "DDR4", SpeedMHz: 3200, CapacityGB: 8, Modules: 2},
		&entity.PSU{Base: base("psu-corsair-rm850x", "PSU", "Corsair", "RM850x", 139), Wattage: 850, EfficiencyRating: "80+ Gold", Modular: "Full"},
		&entity.PSU{Base: base("psu-evga-500-w1", "PSU", "EVGA", "500 W1", 45), Wattage: 500, EfficiencyRating: "80+", Modular: "No"},
		&entity.Case{Base: base("case-fractal-pop-air", "Case", "Fractal", "Pop Air", 89), FormFactorSupport: []string{"ATX", "Micro-ATX", "Mini-ITX"}, MaxGPULengthMM: 405, MaxCoolerHeightMM: 170},
		&entity.Case{Base: base("case-nzxt-h1", "Case", "NZXT", "H1", 299), FormFactorSupport: []string{"Mini-ITX"}, MaxGPULengthMM: 325, MaxCoolerHeightMM: 60},
		&entity.Cooler{Base: base("cooler-noctua-nh-d15", "Cooler", "Noctua", "NH-D15", 109), CoolerType: "Air", SocketSupport: []string{"AM5", "AM4", "LGA1700"}, HeightMM: 165, TDPRating: 250},
		&entity.Cooler{Base: base("cooler-intel-laminar-rm1", "Cooler", "Intel", "Laminar RM1", 20), CoolerType: "Air", SocketSupport: []string{"LGA1700"}, HeightMM: 60, TDPRating: 65},
	}
}

// FindSample returns the sample component with the given objectID.
func FindSample(objectID string) entity.Component {
	for _, c := range SampleCatalog() {
		if c.Info().ObjectID == objectID {
			return c
		}
	}
	return nil
}
