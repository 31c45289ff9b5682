package model

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 一次分析请求的输入参数，单位均为 SI
// 速度范围三项均为零时视为未提供，使用配置文件中的默认值
type AnalyzeReq struct {
	Diameter     float64 `json:"diameter"`      // 管径 m
	VMin         float64 `json:"v_min"`         // 最小流速 m/s
	VMax         float64 `json:"v_max"`         // 最大流速 m/s
	NumPoints    int     `json:"num_points"`    // 曲线采样点数
	InitialGuess float64 `json:"initial_guess"` // 求解初值 m/s，为零时使用默认值
}

// 表格中的一行，供前端直接展示
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
