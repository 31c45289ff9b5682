package calculator

// calculator 的接口定义

type Calculator interface {
	// 系统参数
	Parameters() SystemParameters
	SystemInfo() SystemInfo

	// 单点计算
	FrictionFactor(v float64) (float64, error)
	SystemHead(v float64) (float64, error)
	PumpHead(v float64) (float64, error)
	FlowRate(v float64) float64

	// 曲线与工况点
	GenerateCurves(vMin, vMax float64, numPoints int) (CurveSet, error)
	FindOperatingPoint(initialGuess float64) OperatingPoint

	// 完整分析
	AnalyzeComplete(vMin, vMax float64, numPoints int) (Analysis, error)
}

var _ Calculator = (*HydraulicModel)(nil)
