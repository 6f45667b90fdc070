package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind 未知的组件类型
var ErrUnknownKind = errors.New("unknown component type")

// Kind 组件类型（七种硬件槽位）
type Kind int

const (
	KindCPU Kind = iota
	KindMotherboard
	KindGPU
	KindRAM
	KindPSU
	KindCase
	KindCooler
)

// AllKinds lists every kind in slot order.
var AllKinds = []Kind{KindCPU, KindMotherboard, KindGPU, KindRAM, KindPSU, KindCase, KindCooler}

var kindNames = [...]string{
	KindCPU:         "CPU",
	KindMotherboard: "Motherboard",
	KindGPU:         "GPU",
	KindRAM:         "RAM",
	KindPSU:         "PSU",
	KindCase:        "Case",
	KindCooler:      "Cooler",
}

func (k Kind) Valid() bool {
	return k >= KindCPU && k <= KindCooler
}

// String returns the catalog discriminant, e.g. "Motherboard".
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind matches a component_type discriminant case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range AllKinds {
		if strings.EqualFold(kindNames[k], s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Component 目录中的一个硬件组件
type Component interface {
	Kind() Kind
	Info() *Base
}

// Base 所有组件共有的字段
type Base struct {
	ObjectID          string   `json:"objectID"`
	ComponentType     string   `json:"component_type"`
	Brand             string   `json:"brand"`
	Model             string   `json:"model"`
	PriceUSD          float64  `json:"price_usd"`
	PerformanceTier   string   `json:"performance_tier"`
	CompatibilityTags []string `json:"compatibility_tags"`
	ImageURL          string   `json:"image_url,omitempty"`
}

func (b *Base) Info() *Base { return b }

// DisplayName returns "Brand Model".
func (b *Base) DisplayName() string {
	return strings.TrimSpace(b.Brand + " " + b.Model)
}

// CPU 处理器
type CPU struct {
	Base
	Socket             string   `json:"socket"`
	TDPWatts           int      `json:"tdp_watts"`
	MaxTDPWatts        *int     `json:"max_tdp_watts,omitempty"`
	Cores              int      `json:"cores"`
	Threads            int      `json:"threads"`
	MemoryType         []string `json:"memory_type"`
	IntegratedGraphics bool     `json:"integrated_graphics"`
	BaseClockGHz       float64  `json:"base_clock_ghz,omitempty"`
	BoostClockGHz      float64  `json:"boost_clock_ghz,omitempty"`
	PCIeVersion        string   `json:"pcie_version,omitempty"`
}

func (*CPU) Kind() Kind { return KindCPU }

// Motherboard 主板
type Motherboard struct {
	Base
	Socket      string   `json:"socket"`
	FormFactor  string   `json:"form_factor"`
	MemoryType  []string `json:"memory_type"`
	MemorySlots int      `json:"memory_slots"`
	MaxMemoryGB int      `json:"max_memory_gb"`
	Chipset     string   `json:"chipset,omitempty"`
	M2Slots     int      `json:"m2_slots,omitempty"`
	WiFi        bool     `json:"wifi,omitempty"`
}

func (*Motherboard) Kind() Kind { return KindMotherboard }

// GPU 显卡
type GPU struct {
	Base
	LengthMM    int    `json:"length_mm"`
	TDPWatts    int    `json:"tdp_watts"`
	VRAMGB      int    `json:"vram_gb"`
	MemoryType  string `json:"memory_type,omitempty"`
	PCIeVersion string `json:"pcie_version,omitempty"`
}

func (*GPU) Kind() Kind { return KindGPU }

// RAM 内存
type RAM struct {
	Base
	MemoryType string `json:"memory_type"`
	SpeedMHz   int    `json:"speed_mhz"`
	CapacityGB int    `json:"capacity_gb"`
	Modules    int    `json:"modules"`
	CASLatency int    `json:"cas_latency,omitempty"`
	RGB        bool   `json:"rgb,omitempty"`
}

func (*RAM) Kind() Kind { return KindRAM }

// PSU 电源
type PSU struct {
	Base
	Wattage          int    `json:"wattage"`
	EfficiencyRating string `json:"efficiency_rating"`
	Modular          string `json:"modular"`
	FormFactor       string `json:"form_factor,omitempty"`
}

func (*PSU) Kind() Kind { return KindPSU }

// Case 机箱
type Case struct {
	Base
	FormFactorSupport []string `json:"form_factor_support"`
	MaxGPULengthMM    int      `json:"max_gpu_length_mm"`
	MaxCoolerHeightMM int      `json:"max_cooler_height_mm"`
	RadiatorSupport   []string `json:"radiator_support,omitempty"`
}

func (*Case) Kind() Kind { return KindCase }

// Cooler 散热器
type Cooler struct {
	Base
	CoolerType     string   `json:"cooler_type"`
	SocketSupport  []string `json:"socket_support"`
	HeightMM       int      `json:"height_mm"`
	TDPRating      int      `json:"tdp_rating"`
	RadiatorSizeMM int      `json:"radiator_size_mm,omitempty"`
	RGB            bool     `json:"rgb,omitempty"`
}

func (*Cooler) Kind() Kind { return KindCooler }

// NewComponent returns an empty component of the given kind.
func NewComponent(k Kind) (Component, error) {
	switch k {
	case KindCPU:
		return &CPU{}, nil
	case KindMotherboard:
		return &Motherboard{}, nil
	case KindGPU:
		return &GPU{}, nil
	case KindRAM:
		return &RAM{}, nil
	case KindPSU:
		return &PSU{}, nil
	case KindCase:
		return &Case{}, nil
	case KindCooler:
		return &Cooler{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
}

// DecodeComponent decodes a catalog record using its component_type discriminant.
func DecodeComponent(data []byte) (Component, error) {
	var head struct {
		ComponentType string `json:"component_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode component: %w", err)
	}
	kind, err := ParseKind(head.ComponentType)
	if err != nil {
		return nil, err
	}
	c, _ := NewComponent(kind)
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	c.Info().ComponentType = kind.String()
	return c, nil
}

// DecodeComponentAs decodes a record that must be of the given kind, filling
// in a missing discriminant.
func DecodeComponentAs(k Kind, data []byte) (Component, error) {
	c, err := NewComponent(k)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", k, err)
	}
	info := c.Info()
	if info.ComponentType != "" {
		declared, err := ParseKind(info.ComponentType)
		if err != nil {
			return nil, err
		}
		if declared != k {
			return nil, fmt.Errorf("component_type %q does not match %s", info.ComponentType, k)
		}
	}
	info.ComponentType = k.String()
	return c, nil
}
