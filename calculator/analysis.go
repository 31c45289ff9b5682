package calculator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"pumpsys/model"
)

// 系统配置信息
type SystemInfo struct {
	Diameter        float64 `json:"diameter"`
	Area            float64 `json:"area"`
	StaticHead      float64 `json:"static_head"`
	PumpMaxHead     float64 `json:"pump_max_head"`
	RoughnessFactor float64 `json:"roughness_factor"`
}

func (m *HydraulicModel) SystemInfo() SystemInfo {
	return SystemInfo{
		Diameter:        m.params.Diameter(),
		Area:            m.params.Area(),
		StaticHead:      StaticHead,
		PumpMaxHead:     PumpMaxHead,
		RoughnessFactor: RoughnessFactor,
	}
}

// Analysis bundles everything a presentation layer needs for one user
// action.
type Analysis struct {
	ID             string         `json:"id"`
	Curves         CurveSet       `json:"curves"`
	OperatingPoint OperatingPoint `json:"operating_point"`
	SystemInfo     SystemInfo     `json:"system_info"`
}

// AnalyzeComplete generates the curves and searches the operating point
// from the default initial guess. Only an invalid range is an error; a
// failed search is reported inside Analysis.OperatingPoint.
func (m *HydraulicModel) AnalyzeComplete(vMin, vMax float64, numPoints int) (Analysis, error) {
	curves, err := m.GenerateCurves(vMin, vMax, numPoints)
	if err != nil {
		return Analysis{}, err
	}
	a := Analysis{
		ID:             uuid.New().String(),
		Curves:         curves,
		OperatingPoint: m.FindOperatingPointDefault(),
		SystemInfo:     m.SystemInfo(),
	}
	log.WithFields(log.Fields{
		"id":        a.ID,
		"diameter":  a.SystemInfo.Diameter,
		"vMin":      vMin,
		"vMax":      vMax,
		"numPoints": numPoints,
		"success":   a.OperatingPoint.Success,
	}).Info("分析完成")
	return a, nil
}

// Report 文本形式的分析结果
func (a Analysis) Report() string {
	var b strings.Builder
	op := a.OperatingPoint
	if op.Success {
		b.WriteString("Operating point found:\n")
		fmt.Fprintf(&b, "Velocity (v): %.4f m/s\n", op.Velocity)
		fmt.Fprintf(&b, "Flow rate (Q): %.6f m³/s = %.4f L/s\n", op.FlowRate, op.FlowRateLs)
		fmt.Fprintf(&b, "ha = Ha = %.4f m\n", op.SystemHead)
		fmt.Fprintf(&b, "Check - Ha: %.4f m\n", op.PumpHead)
		fmt.Fprintf(&b, "Difference: %.6f m\n", op.Difference)
	} else {
		fmt.Fprintf(&b, "No operating point found in the specified range: %s\n", op.Error)
	}

	b.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	b.WriteString("SYSTEM INFORMATION\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Pipe diameter: %g m\n", a.SystemInfo.Diameter)
	fmt.Fprintf(&b, "Cross-sectional area: %.6f m²\n", a.SystemInfo.Area)
	if op.Success {
		fmt.Fprintf(&b, "\nFriction factor (F) at operating point: %.6f\n", op.FrictionFactor)
		fmt.Fprintf(&b, "Partial Reynolds (%g * v): %.2f\n", ReynoldsCoefficient, op.ReynoldsPartial)
	}
	return b.String()
}

// 速度范围未给出时使用配置中的默认范围
func withDefaults(req model.AnalyzeReq) model.AnalyzeReq {
	if req.VMin == 0 && req.VMax == 0 && req.NumPoints == 0 {
		req.VMin = calCfg.Analysis.VMin
		req.VMax = calCfg.Analysis.VMax
		req.NumPoints = calCfg.Analysis.NumPoints
	}
	if req.InitialGuess == 0 {
		req.InitialGuess = calCfg.Analysis.InitialGuess
	}
	return req
}

// Analyze builds a model for req.Diameter and runs a complete analysis.
// Invalid diameters and ranges are reported before any computation.
func Analyze(req model.AnalyzeReq) (Analysis, error) {
	req = withDefaults(req)
	m, err := NewHydraulicModel(req.Diameter, WithInitialGuess(req.InitialGuess))
	if err != nil {
		return Analysis{}, err
	}
	return m.AnalyzeComplete(req.VMin, req.VMax, req.NumPoints)
}

// FindOperatingPointFor 只计算工况点
func FindOperatingPointFor(req model.AnalyzeReq) (OperatingPoint, error) {
	req = withDefaults(req)
	m, err := NewHydraulicModel(req.Diameter)
	if err != nil {
		return OperatingPoint{}, err
	}
	return m.FindOperatingPoint(req.InitialGuess), nil
}
