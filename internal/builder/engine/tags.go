package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

// band is an inclusive [lo, hi] range mapped to a tag.
type band struct {
	tag    string
	lo, hi float64
}

type bands []band

// pick returns the first band containing v, falling back to the last tag.
func (bs bands) pick(v float64) string {
	for _, b := range bs {
		if v >= b.lo && v <= b.hi {
			return b.tag
		}
	}
	return bs[len(bs)-1].tag
}

var (
	tdpCategories = bands{
		{"low-tdp", 0, 65},
		{"mid-tdp", 66, 125},
		{"high-tdp", 126, 200},
		{"extreme-tdp", 201, math.Inf(1)},
	}
	vramTiers = bands{
		{"vram-4gb", 0, 4},
		{"vram-8gb", 5, 8},
		{"vram-12gb", 9, 12},
		{"vram-16gb", 13, 16},
		{"vram-24gb", 17, 24},
		{"vram-32gb-plus", 25, math.Inf(1)},
	}
	gpuLengthCategories = bands{
		{"compact-gpu", 0, 250},
		{"standard-gpu", 251, 310},
		{"long-gpu", 311, 350},
		{"extra-long-gpu", 351, math.Inf(1)},
	}
	coolerHeightCategories = bands{
		{"low-profile", 0, 70},
		{"mid-height", 71, 130},
		{"tower-cooler", 131, 165},
		{"tall-tower", 166, math.Inf(1)},
	}
	caseGPUClearance = bands{
		{"compact-clearance", 0, 280},
		{"standard-clearance", 281, 330},
		{"extended-clearance", 331, 380},
		{"full-clearance", 381, math.Inf(1)},
	}
	psuWattageTiers = bands{
		{"psu-450w", 0, 500},
		{"psu-550w", 501, 600},
		{"psu-650w", 601, 700},
		{"psu-750w", 701, 800},
		{"psu-850w", 801, 900},
		{"psu-1000w", 901, 1100},
		{"psu-1200w-plus", 1101, math.Inf(1)},
	}
)

type tagSet map[string]struct{}

func (s tagSet) add(tags ...string) {
	for _, t := range tags {
		if t != "" {
			s[t] = struct{}{}
		}
	}
}

func (s tagSet) sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func lowerDash(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

func pcieTag(version string) string {
	if version == "" {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower("pcie"+version), ".", "")
}

// GenerateTags derives display/facet tags from a component's specs. Tags
// are sorted and de-duplicated.
func GenerateTags(c entity.Component) []string {
	s := tagSet{}
	switch v := c.(type) {
	case *entity.CPU:
		cpuTags(s, v)
	case *entity.GPU:
		gpuTags(s, v)
	case *entity.Motherboard:
		motherboardTags(s, v)
	case *entity.RAM:
		ramTags(s, v)
	case *entity.PSU:
		psuTags(s, v)
	case *entity.Case:
		caseTags(s, v)
	case *entity.Cooler:
		coolerTags(s, v)
	}
	return s.sorted()
}

func cpuTags(s tagSet, v *entity.CPU) {
	s.add(strings.ToLower(v.Socket))
	for _, m := range v.MemoryType {
		s.add(strings.ToLower(m))
	}
	s.add(pcieTag(v.PCIeVersion))

	tdp := v.TDPWatts
	if tdp == 0 && v.MaxTDPWatts != nil {
		tdp = *v.MaxTDPWatts
	}
	if tdp > 0 {
		s.add(tdpCategories.pick(float64(tdp)))
	}

	if v.IntegratedGraphics {
		s.add("igpu")
	} else {
		s.add("no-igpu")
	}

	switch {
	case v.Cores <= 0:
	case v.Cores <= 4:
		s.add("quad-core")
	case v.Cores <= 8:
		s.add("octa-core")
	case v.Cores <= 16:
		s.add("high-core-count")
	default:
		s.add("extreme-core-count")
	}
	s.add(v.PerformanceTier)
}

func gpuTags(s tagSet, v *entity.GPU) {
	if v.TDPWatts > 0 {
		s.add(tdpCategories.pick(float64(v.TDPWatts)))
		if v.TDPWatts >= 300 {
			s.add("high-power-gpu")
		}
		if v.TDPWatts >= 400 {
			s.add("extreme-power-gpu")
		}
	}
	if v.VRAMGB > 0 {
		s.add(vramTiers.pick(float64(v.VRAMGB)))
	}
	if v.LengthMM > 0 {
		s.add(gpuLengthCategories.pick(float64(v.LengthMM)))
	}
	s.add(pcieTag(v.PCIeVersion))
	s.add(strings.ToLower(v.MemoryType))

	brand := strings.ToLower(v.Brand)
	model := strings.ToLower(v.Model)
	switch {
	case strings.Contains(brand, "nvidia") || strings.Contains(model, "geforce"):
		s.add("nvidia")
		if strings.Contains(model, "rtx") {
			s.add("rtx", "ray-tracing")
		}
		if strings.Contains(model, "gtx") {
			s.add("gtx")
		}
	case strings.Contains(brand, "amd") || strings.Contains(model, "radeon"):
		s.add("amd")
		if strings.Contains(model, "rx") {
			s.add("rdna")
		}
	}
	s.add(v.PerformanceTier)
}

func motherboardTags(s tagSet, v *entity.Motherboard) {
	s.add(strings.ToLower(v.Socket))
	for _, m := range v.MemoryType {
		s.add(strings.ToLower(m))
	}
	s.add(lowerDash(v.FormFactor))
	s.add(strings.ToLower(v.Chipset))
	if v.WiFi {
		s.add("wifi")
	}
	switch {
	case v.M2Slots >= 4:
		s.add("many-m2")
	case v.M2Slots >= 2:
		s.add("multi-m2")
	}
	if v.MemorySlots >= 4 {
		s.add("4-dimm")
	} else {
		s.add("2-dimm")
	}
	s.add(v.PerformanceTier)
}

func ramTags(s tagSet, v *entity.RAM) {
	mem := strings.ToLower(v.MemoryType)
	s.add(mem)

	if v.SpeedMHz > 0 {
		switch {
		case strings.Contains(mem, "ddr5"):
			switch {
			case v.SpeedMHz >= 6400:
				s.add("high-speed-ddr5")
			case v.SpeedMHz >= 5600:
				s.add("mid-speed-ddr5")
			default:
				s.add("standard-ddr5")
			}
		case strings.Contains(mem, "ddr4"):
			switch {
			case v.SpeedMHz >= 3600:
				s.add("high-speed-ddr4")
			case v.SpeedMHz >= 3200:
				s.add("mid-speed-ddr4")
			default:
				s.add("standard-ddr4")
			}
		}
	}

	modules := v.Modules
	if modules == 0 {
		modules = 1
	}
	total := v.CapacityGB * modules
	switch {
	case total >= 64:
		s.add("64gb-plus")
	case total >= 32:
		s.add("32gb")
	case total >= 16:
		s.add("16gb")
	default:
		s.add("8gb-or-less")
	}

	switch modules {
	case 2:
		s.add("dual-channel")
	case 4:
		s.add("quad-channel")
	}
	if v.RGB {
		s.add("rgb")
	}

	switch {
	case v.CASLatency <= 0:
	case v.CASLatency <= 16:
		s.add("low-latency")
	case v.CASLatency <= 22:
		s.add("mid-latency")
	default:
		s.add("high-latency")
	}
}

func psuTags(s tagSet, v *entity.PSU) {
	if v.Wattage > 0 {
		s.add(psuWattageTiers.pick(float64(v.Wattage)))
	}

	eff := strings.ToLower(v.EfficiencyRating)
	switch {
	case eff == "":
	case strings.Contains(eff, "titanium"):
		s.add("80plus-titanium")
	case strings.Contains(eff, "platinum"):
		s.add("80plus-platinum")
	case strings.Contains(eff, "gold"):
		s.add("80plus-gold")
	case strings.Contains(eff, "silver"):
		s.add("80plus-silver")
	case strings.Contains(eff, "bronze"):
		s.add("80plus-bronze")
	case strings.Contains(eff, "80") || strings.Contains(eff, "plus"):
		s.add("80plus")
	}

	mod := strings.ToLower(v.Modular)
	switch {
	case mod == "":
	case strings.Contains(mod, "full"):
		s.add("full-modular")
	case strings.Contains(mod, "semi"):
		s.add("semi-modular")
	default:
		s.add("non-modular")
	}
	s.add(strings.ToLower(v.FormFactor))
}

func caseTags(s tagSet, v *entity.Case) {
	for _, ff := range v.FormFactorSupport {
		if ff != "" {
			s.add("supports-" + lowerDash(ff))
		}
	}
	if v.MaxGPULengthMM > 0 {
		s.add(caseGPUClearance.pick(float64(v.MaxGPULengthMM)))
	}
	switch h := v.MaxCoolerHeightMM; {
	case h <= 0:
	case h >= 170:
		s.add("tall-cooler-support")
	case h >= 155:
		s.add("tower-cooler-support")
	case h >= 120:
		s.add("mid-cooler-support")
	default:
		s.add("low-profile-only")
	}
	for _, rad := range v.RadiatorSupport {
		if rad != "" {
			s.add("rad-" + strings.ToLower(rad))
		}
	}
}

func coolerTags(s tagSet, v *entity.Cooler) {
	for _, sock := range v.SocketSupport {
		if sock != "" {
			s.add("supports-" + strings.ToLower(sock))
		}
	}

	kind := strings.ToLower(v.CoolerType)
	switch {
	case kind == "":
	case strings.Contains(kind, "aio") || strings.Contains(kind, "liquid") || strings.Contains(kind, "water"):
		s.add("aio", "liquid-cooling")
	default:
		s.add("air-cooling")
	}

	if v.HeightMM > 0 {
		s.add(coolerHeightCategories.pick(float64(v.HeightMM)))
	}
	if v.RadiatorSizeMM > 0 {
		s.add(fmt.Sprintf("%dmm-rad", v.RadiatorSizeMM))
	}

	switch {
	case v.TDPRating <= 0:
	case v.TDPRating >= 250:
		s.add("high-tdp-cooling")
	case v.TDPRating >= 150:
		s.add("mid-tdp-cooling")
	default:
		s.add("low-tdp-cooling")
	}
	if v.RGB {
		s.add("rgb")
	}
}
