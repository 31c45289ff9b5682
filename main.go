package main

import (
	"flag"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"pumpsys/calculator"
	"pumpsys/server"
)

var configPath = flag.String("config", "conf/config.ini", "path of the ini config file")

func setupLog(cfg calculator.LogConfig) {
	if cfg.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warn("unknown log level ", cfg.Level, ", using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// loadConfig 先按配置设置日志，再报告读取错误，读取失败时使用默认配置
func loadConfig(path string) calculator.Config {
	cfg, err := calculator.LoadConfig(path)
	setupLog(cfg.Log)
	if err != nil {
		log.WithFields(log.Fields{
			"path": path,
			"err":  err,
		}).Warn("配置文件读取错误，使用默认配置")
	}
	calculator.SetConfig(cfg)
	return cfg
}

func main() {
	flag.Parse()
	cfg := loadConfig(*configPath)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
	}
	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	s := server.NewServer(cfg, upgrader)
	if err := s.Serve(); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}
