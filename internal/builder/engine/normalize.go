package engine

import (
	"math"
	"regexp"
	"strings"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

type mapping struct {
	re    *regexp.Regexp
	canon string
}

// ordered: first match wins
var socketMappings = []mapping{
	{regexp.MustCompile(`(?i)^am5$|socket\s*am5|amd\s*am5`), "AM5"},
	{regexp.MustCompile(`(?i)^am4$|socket\s*am4|amd\s*am4`), "AM4"},
	{regexp.MustCompile(`(?i)^str5$|socket\s*str5|strx4`), "sTRX4"},
	{regexp.MustCompile(`(?i)^sp5$|socket\s*sp5`), "SP5"},
	{regexp.MustCompile(`(?i)lga\s*1700|intel\s*1700`), "LGA1700"},
	{regexp.MustCompile(`(?i)lga\s*1851|intel\s*1851`), "LGA1851"},
	{regexp.MustCompile(`(?i)lga\s*1200|intel\s*1200`), "LGA1200"},
	{regexp.MustCompile(`(?i)lga\s*1151`), "LGA1151"},
	{regexp.MustCompile(`(?i)lga\s*2066`), "LGA2066"},
	{regexp.MustCompile(`(?i)lga\s*4677`), "LGA4677"},
}

var memoryTypeMappings = []mapping{
	{regexp.MustCompile(`(?i)gddr6x`), "GDDR6X"},
	{regexp.MustCompile(`(?i)gddr6`), "GDDR6"},
	{regexp.MustCompile(`(?i)gddr5x`), "GDDR5X"},
	{regexp.MustCompile(`(?i)gddr5`), "GDDR5"},
	{regexp.MustCompile(`(?i)ddr5[-\s]*\d*`), "DDR5"},
	{regexp.MustCompile(`(?i)ddr4[-\s]*\d*`), "DDR4"},
	{regexp.MustCompile(`(?i)ddr3[-\s]*\d*`), "DDR3"},
	{regexp.MustCompile(`(?i)hbm3`), "HBM3"},
	{regexp.MustCompile(`(?i)hbm2e`), "HBM2e"},
	{regexp.MustCompile(`(?i)hbm2`), "HBM2"},
}

var formFactorMappings = []mapping{
	{regexp.MustCompile(`(?i)^atx$|full\s*atx`), "ATX"},
	{regexp.MustCompile(`(?i)micro[-\s]*atx|matx|m-atx`), "Micro-ATX"},
	{regexp.MustCompile(`(?i)mini[-\s]*itx|itx`), "Mini-ITX"},
	{regexp.MustCompile(`(?i)e[-\s]*atx|extended\s*atx`), "E-ATX"},
	{regexp.MustCompile(`(?i)sfx[-\s]*l`), "SFX-L"},
	{regexp.MustCompile(`(?i)^sfx$`), "SFX"},
}

func canonical(value string, table []mapping) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", true
	}
	for _, m := range table {
		if m.re.MatchString(value) {
			return m.canon, true
		}
	}
	return value, false
}

// NormalizeSocket maps vendor spellings ("Socket AM5", "lga 1700") to the
// canonical socket code. Unknown values are upper-cased with spaces removed.
func NormalizeSocket(value string) string {
	s, ok := canonical(value, socketMappings)
	if !ok {
		return strings.ReplaceAll(strings.ToUpper(s), " ", "")
	}
	return s
}

// NormalizeMemoryType strips speed suffixes: "DDR5-6000" → "DDR5".
func NormalizeMemoryType(value string) string {
	s, ok := canonical(value, memoryTypeMappings)
	if !ok {
		return strings.ToUpper(s)
	}
	return s
}

// NormalizeFormFactor maps "matx", "Mini ITX" and friends to mount standards.
func NormalizeFormFactor(value string) string {
	s, _ := canonical(value, formFactorMappings)
	return s
}

func normalizeAll(values []string, fn func(string) string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		n := fn(v)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

type tierLimit struct {
	tier     string
	maxPrice float64
	maxTDP   float64
}

var tierThresholds = map[entity.Kind][]tierLimit{
	entity.KindCPU: {
		{"budget", 150, 65},
		{"mid-range", 350, 105},
		{"high-end", 550, 170},
		{"enthusiast", math.Inf(1), math.Inf(1)},
	},
	entity.KindGPU: {
		{"budget", 250, 150},
		{"mid-range", 500, 250},
		{"high-end", 900, 350},
		{"enthusiast", math.Inf(1), math.Inf(1)},
	},
	entity.KindMotherboard: {
		{"budget", 150, math.Inf(1)},
		{"mid-range", 300, math.Inf(1)},
		{"high-end", 500, math.Inf(1)},
		{"enthusiast", math.Inf(1), math.Inf(1)},
	},
}

// DerivePerformanceTier picks the first tier whose price and TDP limits both
// hold. Kinds without thresholds default to "mid-range"; a zero tdp is
// treated as unknown.
func DerivePerformanceTier(kind entity.Kind, price float64, tdp int) string {
	limits, ok := tierThresholds[kind]
	if !ok {
		return "mid-range"
	}
	for _, l := range limits {
		if price <= l.maxPrice && (tdp == 0 || float64(tdp) <= l.maxTDP) {
			return l.tier
		}
	}
	return "enthusiast"
}

var (
	slugStrip = regexp.MustCompile(`[^\w\s-]`)
	slugDash  = regexp.MustCompile(`[-\s]+`)
)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStrip.ReplaceAllString(s, "")
	return slugDash.ReplaceAllString(s, "-")
}

// GenerateObjectID builds the slug id "<type>-<brand>-<model>".
func GenerateObjectID(kind entity.Kind, brand, model string) string {
	return slugify(kind.String()) + "-" + slugify(brand) + "-" + slugify(model)
}

// NormalizeComponent canonicalises a catalog record in place: socket, memory
// and form-factor spellings, a missing objectID and performance tier, and
// the generated compatibility tags.
func NormalizeComponent(c entity.Component) {
	info := c.Info()
	info.ComponentType = c.Kind().String()
	info.Brand = strings.TrimSpace(info.Brand)
	info.Model = strings.TrimSpace(info.Model)
	if info.ObjectID == "" {
		info.ObjectID = GenerateObjectID(c.Kind(), info.Brand, info.Model)
	}

	tdp := 0
	switch v := c.(type) {
	case *entity.CPU:
		v.Socket = NormalizeSocket(v.Socket)
		v.MemoryType = normalizeAll(v.MemoryType, NormalizeMemoryType)
		tdp = v.TDPWatts
	case *entity.Motherboard:
		v.Socket = NormalizeSocket(v.Socket)
		v.MemoryType = normalizeAll(v.MemoryType, NormalizeMemoryType)
		v.FormFactor = NormalizeFormFactor(v.FormFactor)
	case *entity.GPU:
		if v.MemoryType != "" {
			v.MemoryType = NormalizeMemoryType(v.MemoryType)
		}
		tdp = v.TDPWatts
	case *entity.RAM:
		v.MemoryType = NormalizeMemoryType(v.MemoryType)
	case *entity.PSU:
		if v.FormFactor != "" {
			v.FormFactor = NormalizeFormFactor(v.FormFactor)
		}
	case *entity.Case:
		v.FormFactorSupport = normalizeAll(v.FormFactorSupport, NormalizeFormFactor)
	case *entity.Cooler:
		v.SocketSupport = normalizeAll(v.SocketSupport, NormalizeSocket)
	}

	if info.PerformanceTier == "" {
		info.PerformanceTier = DerivePerformanceTier(c.Kind(), info.PriceUSD, tdp)
	}
	info.CompatibilityTags = GenerateTags(c)
}
