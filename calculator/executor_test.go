package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpsys/model"
)

func TestAnalyzeBatch(t *testing.T) {
	reqs := []model.AnalyzeReq{
		{Diameter: 0.0203},
		{Diameter: -1},
		{Diameter: 0.05, VMin: 0.1, VMax: 1, NumPoints: 20},
		{Diameter: 0.03, VMin: 1, VMax: 0.1, NumPoints: 20},
		{Diameter: 0.01, InitialGuess: -2},
	}
	results := AnalyzeBatch(reqs, 3)
	require.Len(t, results, len(reqs))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}

	require.Nil(t, results[0].Err())
	assert.Equal(t, 0.0203, results[0].Result.SystemInfo.Diameter)
	assert.True(t, results[0].Result.OperatingPoint.Success)

	assert.ErrorIs(t, results[1].Err(), ErrInvalidParameter)
	assert.Nil(t, results[1].Result)
	assert.NotEmpty(t, results[1].Error)

	require.NotNil(t, results[2].Result)
	assert.Len(t, results[2].Result.Curves.Velocities, 20)

	assert.ErrorIs(t, results[3].Err(), ErrInvalidParameter)

	// 求解失败仍然是成功的分析结果
	require.Nil(t, results[4].Err())
	assert.False(t, results[4].Result.OperatingPoint.Success)
	assert.Equal(t, ReasonDomain, results[4].Result.OperatingPoint.Reason)
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	assert.Empty(t, AnalyzeBatch(nil, 4))
}

func TestAnalyzeBatch_MoreRequestsThanWorkers(t *testing.T) {
	reqs := make([]model.AnalyzeReq, 25)
	for i := range reqs {
		reqs[i] = model.AnalyzeReq{Diameter: 0.01 + float64(i)*0.001, VMin: 0.1, VMax: 2, NumPoints: 10}
	}
	results := AnalyzeBatch(reqs, 0)
	require.Len(t, results, 25)
	for i, r := range results {
		require.Nil(t, r.Err())
		assert.Equal(t, reqs[i].Diameter, r.Result.SystemInfo.Diameter)
	}
}

func TestAnalyzeBatch_OversizedRequest(t *testing.T) {
	reqs := []model.AnalyzeReq{
		{Diameter: 0.0203, VMin: 0.1, VMax: 2, NumPoints: 1 << 62},
		{Diameter: 0.0203, VMin: 0.1, VMax: 2, NumPoints: 10},
	}
	results := AnalyzeBatch(reqs, 2)
	require.Len(t, results, 2)

	assert.ErrorIs(t, results[0].Err(), ErrInvalidParameter)
	var ipe *InvalidParameterError
	require.ErrorAs(t, results[0].Err(), &ipe)
	assert.Equal(t, "num_points", ipe.Name)
	assert.Nil(t, results[0].Result)

	require.Nil(t, results[1].Err())
	assert.Len(t, results[1].Result.Curves.Velocities, 10)
}

func TestAnalyzeBatch_PanicFailsOnlyItsItem(t *testing.T) {
	orig := analyzeFn
	t.Cleanup(func() { analyzeFn = orig })
	analyzeFn = func(req model.AnalyzeReq) (Analysis, error) {
		if req.Diameter < 0.015 {
			panic("boom")
		}
		return orig(req)
	}

	reqs := []model.AnalyzeReq{
		{Diameter: 0.0203, VMin: 0.1, VMax: 2, NumPoints: 10},
		{Diameter: 0.01, VMin: 0.1, VMax: 2, NumPoints: 10},
		{Diameter: 0.03, VMin: 0.1, VMax: 2, NumPoints: 10},
	}
	results := AnalyzeBatch(reqs, 3)
	require.Len(t, results, 3)

	require.Nil(t, results[0].Err())
	require.Error(t, results[1].Err())
	assert.Contains(t, results[1].Error, "boom")
	assert.Nil(t, results[1].Result)
	require.Nil(t, results[2].Err())
	assert.Equal(t, 0.03, results[2].Result.SystemInfo.Diameter)
}
