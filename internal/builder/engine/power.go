package engine

import (
	"fmt"
	"math"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
)

const (
	// BasePowerWatts covers motherboard, fans and drives.
	BasePowerWatts = 100

	// OverclockBufferWatts is reserved when the user plans to overclock.
	OverclockBufferWatts = 60

	// HeadroomFactor keeps the PSU below full load.
	HeadroomFactor = 1.2

	// wattageStep is the granularity recommendations are rounded up to.
	wattageStep = 50

	highPowerGPUWatts   = 300
	midPowerGPUWatts    = 200
	highPowerBuildWatts = 800
)

const (
	NoteOverclocking   = "Overclocking adds significant transient load"
	NoteHighPowerGPU   = "High-power GPU detected"
	NoteHighPowerBuild = "High-power build — consider a higher-efficiency PSU"
)

// PSUTier 标准电源档位
type PSUTier struct {
	Watts int
	Label string
}

// PSUTiers is ordered ascending; the last tier is open-ended.
var PSUTiers = []PSUTier{
	{550, "550W"},
	{650, "650W"},
	{750, "750W"},
	{850, "850W"},
	{1000, "1000W"},
	{1200, "1200W+"},
}

// ErrCPUTDPRequired is returned when power cannot be sized without a CPU figure.
var ErrCPUTDPRequired = &ValidationError{Field: "cpu.tdp_watts", Message: "CPU TDP is required"}

// ValidationError 输入校验错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CPUDraw is the CPU's contribution to power input.
type CPUDraw struct {
	TDPWatts    float64
	MaxTDPWatts *float64
}

// GPUDraw is the GPU's contribution to power input.
type GPUDraw struct {
	TDPWatts float64
}

// PowerInput 功耗计算输入
type PowerInput struct {
	CPU          *CPUDraw
	GPU          *GPUDraw
	Overclocking bool
}

// PowerBreakdown 功耗分项
type PowerBreakdown struct {
	CPUPower        float64 `json:"cpuPower"`
	GPUPower        float64 `json:"gpuPower"`
	BasePower       float64 `json:"basePower"`
	TransientBuffer float64 `json:"transientBuffer"`
	OverclockBuffer float64 `json:"overclockBuffer"`
	TotalDraw       float64 `json:"totalDraw"`
}

// PowerAnalysis 功耗分析结果
type PowerAnalysis struct {
	Breakdown          PowerBreakdown `json:"breakdown"`
	RecommendedWattage int            `json:"recommendedWattage"`
	RecommendedTier    string         `json:"recommendedTier"`
	EfficiencyAtLoad   string         `json:"efficiencyAtLoad"`
	Notes              []string       `json:"notes"`
}

// CalculatePower sizes the power supply for the given draw figures.
func CalculatePower(in PowerInput) (*PowerAnalysis, error) {
	if in.CPU == nil || !isFinite(in.CPU.TDPWatts) {
		return nil, ErrCPUTDPRequired
	}

	cpuPower := in.CPU.TDPWatts
	if in.CPU.MaxTDPWatts != nil && isFinite(*in.CPU.MaxTDPWatts) {
		cpuPower = *in.CPU.MaxTDPWatts
	}

	gpuPower := 0.0
	if in.GPU != nil && isFinite(in.GPU.TDPWatts) {
		gpuPower = in.GPU.TDPWatts
	}

	overclockBuffer := 0.0
	if in.Overclocking {
		overclockBuffer = OverclockBufferWatts
	}

	b := PowerBreakdown{
		CPUPower:        cpuPower,
		GPUPower:        gpuPower,
		BasePower:       BasePowerWatts,
		TransientBuffer: TransientBuffer(gpuPower),
		OverclockBuffer: overclockBuffer,
	}
	b.TotalDraw = b.BasePower + b.CPUPower + b.GPUPower + b.TransientBuffer + b.OverclockBuffer

	recommended := RecommendedWattage(b.TotalDraw)
	tier := TierFor(recommended)

	notes := []string{}
	if in.Overclocking {
		notes = append(notes, NoteOverclocking)
	}
	if gpuPower >= highPowerGPUWatts {
		notes = append(notes, NoteHighPowerGPU)
	}
	if b.TotalDraw > highPowerBuildWatts {
		notes = append(notes, NoteHighPowerBuild)
	}

	return &PowerAnalysis{
		Breakdown:          b,
		RecommendedWattage: recommended,
		RecommendedTier:    tier.Label,
		EfficiencyAtLoad:   efficiencyAtLoad(b.TotalDraw, tier, recommended),
		Notes:              notes,
	}, nil
}

// TransientBuffer is a step function of sustained GPU draw.
func TransientBuffer(gpuPower float64) float64 {
	switch {
	case gpuPower >= highPowerGPUWatts:
		return 150
	case gpuPower >= midPowerGPUWatts:
		return 75
	}
	return 0
}

// RecommendedWattage applies the headroom factor and rounds up to the next
// 50 W step.
func RecommendedWattage(totalDraw float64) int {
	if totalDraw <= 0 {
		return 0
	}
	// totalDraw*6/5 keeps whole-watt inputs exact where *1.2 would not.
	withHeadroom := totalDraw * 6 / 5
	return int(math.Ceil(withHeadroom/wattageStep)) * wattageStep
}

// TierFor returns the smallest tier covering watts, or the open-ended top tier.
func TierFor(watts int) PSUTier {
	for _, t := range PSUTiers {
		if t.Watts >= watts {
			return t
		}
	}
	return PSUTiers[len(PSUTiers)-1]
}

func efficiencyAtLoad(totalDraw float64, tier PSUTier, recommended int) string {
	capacity := float64(tier.Watts)
	if recommended > tier.Watts {
		capacity = float64(recommended)
	}
	pct := int(math.Round(totalDraw / capacity * 100))
	return fmt.Sprintf("%d%% load", pct)
}

// PowerInputFromBuild collects the draw figures of the selected CPU and GPU.
func PowerInputFromBuild(b entity.Build, overclocking bool) PowerInput {
	in := PowerInput{Overclocking: overclocking}
	if b.CPU != nil {
		in.CPU = &CPUDraw{TDPWatts: float64(b.CPU.TDPWatts)}
		if b.CPU.MaxTDPWatts != nil {
			maxTDP := float64(*b.CPU.MaxTDPWatts)
			in.CPU.MaxTDPWatts = &maxTDP
		}
	}
	if b.GPU != nil {
		in.GPU = &GPUDraw{TDPWatts: float64(b.GPU.TDPWatts)}
	}
	return in
}

// AnalyzeBuildPower runs the calculator over a build. It fails when no CPU is selected.
func AnalyzeBuildPower(b entity.Build, overclocking bool) (*PowerAnalysis, error) {
	return CalculatePower(PowerInputFromBuild(b, overclocking))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
