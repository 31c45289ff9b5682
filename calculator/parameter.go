package calculator

import (
	"math"
)

// 泵与管路的标定常数，只适用于这一组泵/管路，不在运行时推导
const (
	RoughnessFactor     = 81.2    // 3.7 * D/ε
	ReynoldsCoefficient = 22706.9 // 雷诺数系数，Re ≈ ReynoldsCoefficient * v
	StaticHead          = 7.85    // 静扬程 m
	LossCoefficient1    = 8694.6  // 沿程损失系数
	LossCoefficient2    = 23.65   // 局部损失系数
	GravityFactor       = 19.62   // 2g

	PumpMaxHead        = 24.4 // 泵最大扬程 m
	PumpCoefficient    = 0.0678
	PumpVelocityFactor = 19.42
)

// SystemParameters holds the pipe geometry of one analysis run. Only the
// diameter is caller supplied; everything else is a calibration constant.
// A SystemParameters value is immutable once constructed.
type SystemParameters struct {
	diameter float64
	area     float64
}

// NewSystemParameters 根据管径构造系统参数
func NewSystemParameters(diameter float64) (SystemParameters, error) {
	if math.IsNaN(diameter) || math.IsInf(diameter, 0) {
		return SystemParameters{}, &InvalidParameterError{Name: "diameter", Value: diameter, Reason: "must be finite"}
	}
	if diameter <= 0 {
		return SystemParameters{}, &InvalidParameterError{Name: "diameter", Value: diameter, Reason: "must be > 0"}
	}
	return SystemParameters{
		diameter: diameter,
		area:     math.Pi * math.Pow(diameter/2, 2),
	}, nil
}

// 管径 m
func (p SystemParameters) Diameter() float64 {
	return p.diameter
}

// 截面积 m²
func (p SystemParameters) Area() float64 {
	return p.area
}
