package server

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"pumpsys/calculator"
	"pumpsys/model"
)

type Server struct {
	addr     string
	wsPath   string
	workers  int
	defaults calculator.AnalysisConfig
	upgrader websocket.Upgrader
}

func NewServer(cfg calculator.Config, upgrader websocket.Upgrader) *Server {
	wsPath := cfg.Server.WsPath
	if wsPath == "" {
		wsPath = "/ws"
	}
	return &Server{
		addr:     cfg.Server.Addr,
		wsPath:   wsPath,
		workers:  cfg.Analysis.Workers,
		defaults: cfg.Analysis,
		upgrader: upgrader,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade: ", err)
		return
	}
	defer conn.Close()
	hub := NewHub(conn, model.AnalyzeReq{Diameter: s.defaults.Diameter})
	go hub.handleRequest()
	go hub.handleResponse()
	log.WithField("remote", r.RemoteAddr).Info("websocket 连接建立")
	for {
		var msg model.Msg
		err = conn.ReadJSON(&msg)
		if err != nil {
			log.WithField("remote", r.RemoteAddr).Info("websocket 连接关闭: ", err)
			break
		}
		hub.msg <- msg
	}
	close(hub.msg)
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc(s.wsPath, s.serveWs)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	// 全部注册在根路由上，方法不匹配时 mux 才会返回 405
	r.HandleFunc("/api/v1/system", s.systemInfo).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/analysis", s.analysis).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/analysis/batch", s.batch).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/operating-point", s.operatingPoint).Methods(http.MethodPost)
	return r
}

// Handler 带访问日志和 panic 恢复的完整 handler
func (s *Server) Handler() http.Handler {
	logger := log.StandardLogger()
	logged := handlers.LoggingHandler(logger.WriterLevel(log.InfoLevel), s.Router())
	return handlers.RecoveryHandler(handlers.RecoveryLogger(logger), handlers.PrintRecoveryStack(true))(logged)
}

func (s *Server) Serve() error {
	log.WithFields(log.Fields{
		"addr":   s.addr,
		"wsPath": s.wsPath,
	}).Info("服务启动")
	return http.ListenAndServe(s.addr, s.Handler())
}
