package calculator

import (
	"gopkg.in/ini.v1"
)

// 单条曲线的默认最大采样点数
const defaultMaxPoints = 100000

var calCfg = DefaultConfig()

type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	Solver   SolverConfig
	Log      LogConfig
}

type ServerConfig struct {
	Addr            string
	WsPath          string
	ReadBufferSize  int
	WriteBufferSize int
}

// 分析请求未给出时使用的默认值
type AnalysisConfig struct {
	Diameter     float64
	VMin         float64
	VMax         float64
	NumPoints    int
	MaxPoints    int
	InitialGuess float64
	Workers      int
}

// 工况点求解参数
type SolverConfig struct {
	Tolerance      float64 // |Ha - ha| 收敛阈值
	MaxIterations  int
	DerivativeStep float64 // 中心差分步长（相对值）
	MaxVelocity    float64 // 超过该速度视为发散
}

type LogConfig struct {
	Level string
	JSON  bool
}

func DefaultConfig() Config {
	return loadCfg(ini.Empty())
}

// LoadConfig reads an ini file. Missing keys fall back to defaults; a
// missing or unreadable file yields the defaults together with the error,
// which the caller logs once logging is set up.
func LoadConfig(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return DefaultConfig(), err
	}
	return loadCfg(file), nil
}

// SetConfig 替换包级默认配置，NewHydraulicModel 未指定选项时使用
func SetConfig(cfg Config) {
	calCfg = cfg
}

func GetConfig() Config {
	return calCfg
}

func loadCfg(file *ini.File) Config {
	server := file.Section("server")
	analysis := file.Section("analysis")
	solver := file.Section("solver")
	logSec := file.Section("log")
	return Config{
		Server: ServerConfig{
			Addr:            server.Key("Addr").MustString(":9000"),
			WsPath:          server.Key("WsPath").MustString("/ws"),
			ReadBufferSize:  server.Key("ReadBufferSize").MustInt(1024),
			WriteBufferSize: server.Key("WriteBufferSize").MustInt(1024),
		},
		Analysis: AnalysisConfig{
			Diameter:     analysis.Key("Diameter").MustFloat64(0.0203),
			VMin:         analysis.Key("VMin").MustFloat64(0.1),
			VMax:         analysis.Key("VMax").MustFloat64(2.0),
			NumPoints:    analysis.Key("NumPoints").MustInt(500),
			MaxPoints:    analysis.Key("MaxPoints").MustInt(defaultMaxPoints),
			InitialGuess: analysis.Key("InitialGuess").MustFloat64(0.5),
			Workers:      analysis.Key("Workers").MustInt(4),
		},
		Solver: SolverConfig{
			Tolerance:      solver.Key("Tolerance").MustFloat64(1e-10),
			MaxIterations:  solver.Key("MaxIterations").MustInt(100),
			DerivativeStep: solver.Key("DerivativeStep").MustFloat64(1e-7),
			MaxVelocity:    solver.Key("MaxVelocity").MustFloat64(100),
		},
		Log: LogConfig{
			Level: logSec.Key("Level").MustString("info"),
			JSON:  logSec.Key("JSON").MustBool(false),
		},
	}
}
