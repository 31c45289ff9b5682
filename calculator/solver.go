package calculator

import (
	"errors"
	"math"

	log "github.com/sirupsen/logrus"
)

// OperatingPoint is the tagged result of FindOperatingPoint. Callers must
// check Success before reading the numeric fields; on failure only Error
// and Reason are set.
type OperatingPoint struct {
	Success bool `json:"success"`

	Velocity        float64 `json:"velocity,omitempty"`         // m/s
	SystemHead      float64 `json:"head,omitempty"`             // ha, m
	PumpHead        float64 `json:"head_pump,omitempty"`        // Ha, m
	FlowRate        float64 `json:"flow_rate_m3s,omitempty"`    // m³/s
	FlowRateLs      float64 `json:"flow_rate_ls,omitempty"`     // L/s
	FrictionFactor  float64 `json:"friction_factor,omitempty"`
	ReynoldsPartial float64 `json:"reynolds_partial,omitempty"` // ReynoldsCoefficient * v
	Difference      float64 `json:"difference"`                 // |ha - Ha|, m
	Iterations      int     `json:"iterations"`

	Error  string `json:"error,omitempty"`
	Reason string `json:"reason,omitempty"`

	failure *ConvergenceFailure
}

// Err 失败时返回 *ConvergenceFailure，成功时返回 nil
func (op OperatingPoint) Err() error {
	if op.Success {
		return nil
	}
	if op.failure != nil {
		return op.failure
	}
	return &ConvergenceFailure{Reason: op.Reason}
}

func failedPoint(f *ConvergenceFailure) OperatingPoint {
	return OperatingPoint{
		Success:    false,
		Iterations: f.Iterations,
		Error:      f.Error(),
		Reason:     f.Reason,
		failure:    f,
	}
}

// diff(v) = Ha(v) - ha(v)，在 v > 0 上严格单调递减
func (m *HydraulicModel) headDifference(v float64) (float64, error) {
	ha, err := m.SystemHead(v)
	if err != nil {
		return 0, err
	}
	return pumpHead(v) - ha, nil
}

// FindOperatingPointDefault 使用配置中的默认初值（0.5 m/s）
func (m *HydraulicModel) FindOperatingPointDefault() OperatingPoint {
	return m.FindOperatingPoint(m.initialGuess)
}

// FindOperatingPoint runs a Newton iteration on Ha(v) - ha(v), starting at
// initialGuess, with a central-difference derivative. It never panics and
// never returns an error: solver failures are reported in the result.
func (m *HydraulicModel) FindOperatingPoint(initialGuess float64) OperatingPoint {
	cfg := m.solver
	if math.IsNaN(initialGuess) || math.IsInf(initialGuess, 0) {
		return m.fail(&ConvergenceFailure{Reason: ReasonInvalidGuess, Velocity: initialGuess,
			Cause: &InvalidParameterError{Name: "initial_guess", Value: initialGuess, Reason: "must be finite"}})
	}

	v := initialGuess
	for i := 0; i < cfg.MaxIterations; i++ {
		d, err := m.headDifference(v)
		if err != nil {
			return m.fail(&ConvergenceFailure{Reason: ReasonDomain, Iterations: i, Velocity: v, Cause: err})
		}
		if math.Abs(d) < cfg.Tolerance {
			return m.operatingPointAt(v, i)
		}

		h := cfg.DerivativeStep * math.Max(1, math.Abs(v))
		slope, err := m.derivative(v, h)
		if err != nil {
			return m.fail(&ConvergenceFailure{Reason: ReasonDomain, Iterations: i, Velocity: v, Cause: err})
		}
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			return m.fail(&ConvergenceFailure{Reason: ReasonDivergence, Iterations: i, Velocity: v,
				Cause: errors.New("derivative vanished")})
		}

		next := v - d/slope
		log.WithFields(log.Fields{
			"iteration": i,
			"v":         v,
			"diff":      d,
			"next":      next,
		}).Trace("牛顿迭代")
		if math.IsNaN(next) || math.IsInf(next, 0) || math.Abs(next) > cfg.MaxVelocity {
			return m.fail(&ConvergenceFailure{Reason: ReasonDivergence, Iterations: i + 1, Velocity: next})
		}
		v = next
	}

	// 最后一次迭代后的点可能已满足精度
	if d, err := m.headDifference(v); err == nil && math.Abs(d) < cfg.Tolerance {
		return m.operatingPointAt(v, cfg.MaxIterations)
	}
	return m.fail(&ConvergenceFailure{Reason: ReasonMaxIterations, Iterations: cfg.MaxIterations, Velocity: v})
}

func (m *HydraulicModel) derivative(v, h float64) (float64, error) {
	lo := v - h
	if lo <= 0 {
		// 靠近 0 时改用前向差分
		lo = v
	}
	hi := v + h
	dLo, err := m.headDifference(lo)
	if err != nil {
		return 0, err
	}
	dHi, err := m.headDifference(hi)
	if err != nil {
		return 0, err
	}
	return (dHi - dLo) / (hi - lo), nil
}

func (m *HydraulicModel) operatingPointAt(v float64, iterations int) OperatingPoint {
	ha := systemHead(v)
	hp := pumpHead(v)
	q := m.FlowRate(v)
	op := OperatingPoint{
		Success:         true,
		Velocity:        v,
		SystemHead:      ha,
		PumpHead:        hp,
		FlowRate:        q,
		FlowRateLs:      q * 1000,
		FrictionFactor:  frictionFactor(v),
		ReynoldsPartial: ReynoldsCoefficient * v,
		Difference:      math.Abs(ha - hp),
		Iterations:      iterations,
	}
	log.WithFields(log.Fields{
		"diameter":   m.params.Diameter(),
		"velocity":   op.Velocity,
		"head":       op.SystemHead,
		"flowRate":   op.FlowRate,
		"iterations": iterations,
	}).Info("找到工况点")
	return op
}

func (m *HydraulicModel) fail(f *ConvergenceFailure) OperatingPoint {
	log.WithFields(log.Fields{
		"diameter": m.params.Diameter(),
		"reason":   f.Reason,
		"err":      f,
	}).Warn("未找到工况点")
	return failedPoint(f)
}
