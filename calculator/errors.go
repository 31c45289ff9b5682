package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter 调用方传入的配置不满足约束（管径、速度范围）
	ErrInvalidParameter = errors.New("calculator: invalid parameter")

	// ErrDomain 流速使公式无定义（v <= 0）
	ErrDomain = errors.New("calculator: velocity out of domain")

	// ErrConvergence 工况点求解发散或超过迭代次数
	ErrConvergence = errors.New("calculator: operating point search did not converge")
)

// InvalidParameterError is returned at the call that received a bad
// configuration value. It matches ErrInvalidParameter.
type InvalidParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// DomainError is returned when a formula is evaluated at a velocity where
// it is undefined. It matches ErrDomain.
type DomainError struct {
	Quantity string
	Velocity float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s undefined for velocity %g m/s (must be > 0)", e.Quantity, e.Velocity)
}

func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// 求解失败原因
const (
	ReasonInvalidGuess  = "invalid_guess"
	ReasonDomain        = "domain"
	ReasonDivergence    = "divergence"
	ReasonMaxIterations = "max_iterations"
)

// ConvergenceFailure describes why FindOperatingPoint gave up. It is
// carried inside a failed OperatingPoint, never returned from the search
// itself.
type ConvergenceFailure struct {
	Reason     string
	Iterations int
	Velocity   float64
	Cause      error
}

func (e *ConvergenceFailure) Error() string {
	msg := fmt.Sprintf("no operating point found (%s after %d iterations, last v=%g m/s)",
		e.Reason, e.Iterations, e.Velocity)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConvergenceFailure) Is(target error) bool {
	return target == ErrConvergence
}

func (e *ConvergenceFailure) Unwrap() error {
	return e.Cause
}
