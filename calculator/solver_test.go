package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// 交点速度，与管径无关
const refOperatingVelocity = 0.5948443597734095

// SolverSuite exercises the operating point search.
type SolverSuite struct {
	suite.Suite
	m *HydraulicModel
}

func (s *SolverSuite) SetupTest() {
	s.m = newRefModel(s.T())
}

// TestDefaultGuess converges from 0.5 m/s and satisfies ha ≈ Ha.
func (s *SolverSuite) TestDefaultGuess() {
	op := s.m.FindOperatingPointDefault()
	require.True(s.T(), op.Success, op.Error)
	require.NoError(s.T(), op.Err())
	require.InDelta(s.T(), refOperatingVelocity, op.Velocity, 1e-8)

	ha, err := s.m.SystemHead(op.Velocity)
	require.NoError(s.T(), err)
	hp, err := s.m.PumpHead(op.Velocity)
	require.NoError(s.T(), err)
	require.Less(s.T(), math.Abs(ha-hp), 1e-6)
	require.Less(s.T(), op.Difference, 1e-6)
	require.Equal(s.T(), ha, op.SystemHead)
	require.Equal(s.T(), hp, op.PumpHead)
	require.InDelta(s.T(), 15.352369810060807, op.SystemHead, 1e-6)
}

// TestDerivedFields checks flow rate, friction factor and Reynolds proxy.
func (s *SolverSuite) TestDerivedFields() {
	op := s.m.FindOperatingPoint(0.5)
	require.True(s.T(), op.Success)
	require.Equal(s.T(), s.m.FlowRate(op.Velocity), op.FlowRate)
	require.Equal(s.T(), op.FlowRate*1000, op.FlowRateLs)
	f, err := s.m.FrictionFactor(op.Velocity)
	require.NoError(s.T(), err)
	require.Equal(s.T(), f, op.FrictionFactor)
	require.Equal(s.T(), ReynoldsCoefficient*op.Velocity, op.ReynoldsPartial)
	require.Greater(s.T(), op.Iterations, 0)
}

// TestOtherGuesses converges to the same root from both sides.
func (s *SolverSuite) TestOtherGuesses() {
	for _, g := range []float64{0.05, 0.1, 1, 2, 5, 50} {
		op := s.m.FindOperatingPoint(g)
		require.True(s.T(), op.Success, "guess %v: %s", g, op.Error)
		require.InDelta(s.T(), refOperatingVelocity, op.Velocity, 1e-8, "guess %v", g)
	}
}

// TestNonPositiveGuess fails with a domain cause instead of panicking.
func (s *SolverSuite) TestNonPositiveGuess() {
	for _, g := range []float64{0, -0.5} {
		op := s.m.FindOperatingPoint(g)
		require.False(s.T(), op.Success)
		require.Equal(s.T(), ReasonDomain, op.Reason)
		require.NotEmpty(s.T(), op.Error)
		require.True(s.T(), errors.Is(op.Err(), ErrConvergence))
		require.True(s.T(), errors.Is(op.Err(), ErrDomain))

		var cf *ConvergenceFailure
		require.True(s.T(), errors.As(op.Err(), &cf))
		require.Equal(s.T(), g, cf.Velocity)
	}
}

// TestInvalidGuess rejects NaN and infinite guesses.
func (s *SolverSuite) TestInvalidGuess() {
	for _, g := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		op := s.m.FindOperatingPoint(g)
		require.False(s.T(), op.Success)
		require.Equal(s.T(), ReasonInvalidGuess, op.Reason)
	}
}

// TestMaxIterations gives up once the iteration budget is spent.
func (s *SolverSuite) TestMaxIterations() {
	m := newRefModel(s.T(), WithSolverConfig(SolverConfig{MaxIterations: 1}))
	op := m.FindOperatingPoint(5)
	require.False(s.T(), op.Success)
	require.Equal(s.T(), ReasonMaxIterations, op.Reason)
	require.Equal(s.T(), 1, op.Iterations)
	require.ErrorIs(s.T(), op.Err(), ErrConvergence)
	require.Zero(s.T(), op.Velocity)
}

// TestDivergence stops when an iterate leaves the velocity bound.
func (s *SolverSuite) TestDivergence() {
	m := newRefModel(s.T(), WithSolverConfig(SolverConfig{MaxVelocity: 1}))
	op := m.FindOperatingPoint(0.1)
	require.False(s.T(), op.Success)
	require.Equal(s.T(), ReasonDivergence, op.Reason)
}

// TestFailureRows shows one error row for a failed search.
func (s *SolverSuite) TestFailureRows() {
	op := s.m.FindOperatingPoint(-1)
	rows := op.Rows()
	require.Len(s.T(), rows, 1)
	require.Equal(s.T(), "Error", rows[0].Label)
	require.Equal(s.T(), op.Error, rows[0].Value)
}

func TestSolverSuite(t *testing.T) {
	suite.Run(t, new(SolverSuite))
}

func TestOperatingPoint_IndependentOfDiameter(t *testing.T) {
	small := newRefModel(t).FindOperatingPointDefault()
	big, err := NewHydraulicModel(0.05)
	require.NoError(t, err)
	op := big.FindOperatingPointDefault()
	require.True(t, op.Success)
	require.InDelta(t, small.Velocity, op.Velocity, 1e-12)
	require.Greater(t, op.FlowRate, small.FlowRate)
}
