package calculator

import (
	"fmt"
	"math"
)

// VelocityRange 曲线采样的速度范围，m/s
type VelocityRange struct {
	Min       float64
	Max       float64
	NumPoints int
}

func (r VelocityRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsInf(r.Min, 0) || r.Min <= 0 {
		return &InvalidParameterError{Name: "v_min", Value: r.Min, Reason: "must be finite and > 0"}
	}
	if math.IsNaN(r.Max) || math.IsInf(r.Max, 0) || r.Max <= r.Min {
		return &InvalidParameterError{Name: "v_max", Value: r.Max, Reason: "must be finite and > v_min"}
	}
	if r.NumPoints < 2 {
		return &InvalidParameterError{Name: "num_points", Value: float64(r.NumPoints), Reason: "must be >= 2"}
	}
	maxPoints := calCfg.Analysis.MaxPoints
	if maxPoints < 2 {
		maxPoints = defaultMaxPoints
	}
	if r.NumPoints > maxPoints {
		return &InvalidParameterError{Name: "num_points", Value: float64(r.NumPoints),
			Reason: fmt.Sprintf("must be <= %d", maxPoints)}
	}
	// 范围太窄时相邻采样点会因舍入而重合
	prev := r.at(0)
	for i := 1; i < r.NumPoints; i++ {
		v := r.at(i)
		if v <= prev {
			return &InvalidParameterError{Name: "num_points", Value: float64(r.NumPoints),
				Reason: "too many points for the velocity range, samples would not be strictly increasing"}
		}
		prev = v
	}
	return nil
}

// 第 i 个采样速度，最后一个点严格等于 Max
func (r VelocityRange) at(i int) float64 {
	if i == r.NumPoints-1 {
		return r.Max
	}
	step := (r.Max - r.Min) / float64(r.NumPoints-1)
	return r.Min + float64(i)*step
}

type CurveSample struct {
	Velocity   float64 `json:"velocity"`
	FlowRate   float64 `json:"flow_rate"`
	SystemHead float64 `json:"system_head"`
	PumpHead   float64 `json:"pump_head"`
}

// CurveSet is ordered by increasing velocity, and therefore by increasing
// flow rate.
type CurveSet struct {
	Samples []CurveSample `json:"samples"`
}

func (c CurveSet) Len() int {
	return len(c.Samples)
}

func (c CurveSet) column(f func(s CurveSample) float64) []float64 {
	res := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		res[i] = f(s)
	}
	return res
}

// 以下按列导出，供绘图使用

func (c CurveSet) Velocities() []float64 {
	return c.column(func(s CurveSample) float64 { return s.Velocity })
}

func (c CurveSet) FlowRates() []float64 {
	return c.column(func(s CurveSample) float64 { return s.FlowRate })
}

func (c CurveSet) SystemHeads() []float64 {
	return c.column(func(s CurveSample) float64 { return s.SystemHead })
}

func (c CurveSet) PumpHeads() []float64 {
	return c.column(func(s CurveSample) float64 { return s.PumpHead })
}

// GenerateCurves samples numPoints evenly spaced velocities from vMin to
// vMax inclusive. The range is validated before anything is computed.
func (m *HydraulicModel) GenerateCurves(vMin, vMax float64, numPoints int) (CurveSet, error) {
	r := VelocityRange{Min: vMin, Max: vMax, NumPoints: numPoints}
	if err := r.Validate(); err != nil {
		return CurveSet{}, err
	}
	samples := make([]CurveSample, r.NumPoints)
	for i := range samples {
		v := r.at(i)
		ha, err := m.SystemHead(v)
		if err != nil {
			return CurveSet{}, err
		}
		samples[i] = CurveSample{
			Velocity:   v,
			FlowRate:   m.FlowRate(v),
			SystemHead: ha,
			PumpHead:   pumpHead(v),
		}
	}
	return CurveSet{Samples: samples}, nil
}
