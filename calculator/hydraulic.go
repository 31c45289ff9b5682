package calculator

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// HydraulicModel evaluates the friction, system head and pump head
// formulas for one pipe diameter and solves for their intersection.
// It holds no mutable state; one model may be shared between goroutines.
type HydraulicModel struct {
	params       SystemParameters
	solver       SolverConfig
	initialGuess float64
}

type Option func(m *HydraulicModel)

// WithSolverConfig 指定求解参数，零值字段保留默认值
func WithSolverConfig(cfg SolverConfig) Option {
	return func(m *HydraulicModel) {
		if cfg.Tolerance > 0 {
			m.solver.Tolerance = cfg.Tolerance
		}
		if cfg.MaxIterations > 0 {
			m.solver.MaxIterations = cfg.MaxIterations
		}
		if cfg.DerivativeStep > 0 {
			m.solver.DerivativeStep = cfg.DerivativeStep
		}
		if cfg.MaxVelocity > 0 {
			m.solver.MaxVelocity = cfg.MaxVelocity
		}
	}
}

// WithInitialGuess 指定 FindOperatingPointDefault 使用的初值
func WithInitialGuess(v float64) Option {
	return func(m *HydraulicModel) {
		m.initialGuess = v
	}
}

// 工厂方法
func NewHydraulicModel(diameter float64, opts ...Option) (*HydraulicModel, error) {
	params, err := NewSystemParameters(diameter)
	if err != nil {
		return nil, err
	}
	m := &HydraulicModel{
		params:       params,
		solver:       calCfg.Solver,
		initialGuess: calCfg.Analysis.InitialGuess,
	}
	for _, opt := range opts {
		opt(m)
	}
	log.WithFields(log.Fields{
		"diameter": params.Diameter(),
		"area":     params.Area(),
	}).Debug("创建水力模型")
	return m, nil
}

func (m *HydraulicModel) Parameters() SystemParameters {
	return m.params
}

func checkVelocity(quantity string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return &DomainError{Quantity: quantity, Velocity: v}
	}
	return nil
}

// FrictionFactor F(v), Colebrook-White 显式近似
func (m *HydraulicModel) FrictionFactor(v float64) (float64, error) {
	if err := checkVelocity("friction factor", v); err != nil {
		return 0, err
	}
	return frictionFactor(v), nil
}

// SystemHead ha(v), 管路所需扬程（系统阻力曲线）
func (m *HydraulicModel) SystemHead(v float64) (float64, error) {
	if err := checkVelocity("system head", v); err != nil {
		return 0, err
	}
	return systemHead(v), nil
}

// PumpHead Ha(v), 泵可提供扬程（泵特性曲线）
func (m *HydraulicModel) PumpHead(v float64) (float64, error) {
	if err := checkVelocity("pump head", v); err != nil {
		return 0, err
	}
	return pumpHead(v), nil
}

// FlowRate Q = v * A, m³/s
func (m *HydraulicModel) FlowRate(v float64) float64 {
	return v * m.params.Area()
}

// 以下为不做定义域检查的公式本体，调用方保证 v > 0（pumpHead 除外）

func frictionFactor(v float64) float64 {
	term1 := 1 / (3.7 * RoughnessFactor)
	term2 := 5.74 / math.Pow(ReynoldsCoefficient*v, 0.9)
	return 0.25 / math.Pow(math.Log10(term1+term2), 2)
}

func systemHead(v float64) float64 {
	f := frictionFactor(v)
	dynamicLoss := (LossCoefficient1*f + LossCoefficient2) * (v * v / GravityFactor)
	return StaticHead + dynamicLoss
}

// 对任意实数 v 有定义
func pumpHead(v float64) float64 {
	return PumpMaxHead - PumpCoefficient*math.Pow(PumpVelocityFactor*v, 2)
}
