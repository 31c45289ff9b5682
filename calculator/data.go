package calculator

import (
	"fmt"

	"pumpsys/model"
)

// 推送给前端的曲线数据，按列组织，与绘图接口一致
type CurveData struct {
	Velocities []float64 `json:"velocities"`
	FlowRates  []float64 `json:"flow_rates"`
	SystemHead []float64 `json:"system_head"`
	PumpHead   []float64 `json:"pump_head"`
}

// 推送给前端的完整分析结果
type PushData struct {
	ID                 string         `json:"id"`
	Curves             CurveData      `json:"curves"`
	OperatingPoint     OperatingPoint `json:"operating_point"`
	OperatingPointRows []model.Row    `json:"operating_point_rows"`
	SystemInfo         SystemInfo     `json:"system_info"`
	SystemInfoRows     []model.Row    `json:"system_info_rows"`
}

func (c CurveSet) BuildData() CurveData {
	return CurveData{
		Velocities: c.Velocities(),
		FlowRates:  c.FlowRates(),
		SystemHead: c.SystemHeads(),
		PumpHead:   c.PumpHeads(),
	}
}

func (a Analysis) BuildData() *PushData {
	return &PushData{
		ID:                 a.ID,
		Curves:             a.Curves.BuildData(),
		OperatingPoint:     a.OperatingPoint,
		OperatingPointRows: a.OperatingPoint.Rows(),
		SystemInfo:         a.SystemInfo,
		SystemInfoRows:     a.SystemInfo.Rows(),
	}
}

// 工况点结果表格，失败时只有一行 Error
func (op OperatingPoint) Rows() []model.Row {
	if !op.Success {
		msg := op.Error
		if msg == "" {
			msg = "Unknown error"
		}
		return []model.Row{{Label: "Error", Value: msg}}
	}
	return []model.Row{
		{Label: "Velocity (v)", Value: fmt.Sprintf("%.4f m/s", op.Velocity)},
		{Label: "Flow Rate (Q)", Value: fmt.Sprintf("%.6f m³/s", op.FlowRate)},
		{Label: "Flow Rate (Q)", Value: fmt.Sprintf("%.4f L/s", op.FlowRateLs)},
		{Label: "Operating Head (h)", Value: fmt.Sprintf("%.4f m", op.SystemHead)},
		{Label: "Pump Head (Ha)", Value: fmt.Sprintf("%.4f m", op.PumpHead)},
		{Label: "Friction Factor (F)", Value: fmt.Sprintf("%.6f", op.FrictionFactor)},
		{Label: "Reynolds (partial)", Value: fmt.Sprintf("%.2f", op.ReynoldsPartial)},
		{Label: "Head Difference", Value: fmt.Sprintf("%.6f m", op.Difference)},
	}
}

// 系统信息表格
func (s SystemInfo) Rows() []model.Row {
	return []model.Row{
		{Label: "Pipe Diameter", Value: fmt.Sprintf("%.4f m", s.Diameter)},
		{Label: "Cross-sectional Area", Value: fmt.Sprintf("%.6f m²", s.Area)},
		{Label: "Static Head", Value: fmt.Sprintf("%.2f m", s.StaticHead)},
		{Label: "Pump Max Head", Value: fmt.Sprintf("%.2f m", s.PumpMaxHead)},
		{Label: "Roughness Factor", Value: fmt.Sprintf("%.2f", s.RoughnessFactor)},
	}
}
