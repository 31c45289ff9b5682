package server

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"pumpsys/calculator"
	"pumpsys/model"
)

// Hub serves one websocket connection. Requests are handled one at a time
// in arrival order; replies are written by a single goroutine.
type Hub struct {
	conn *websocket.Conn
	// 当前连接的分析参数，由 env 消息设置
	env model.AnalyzeReq
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
}

func NewHub(conn *websocket.Conn, env model.AnalyzeReq) *Hub {
	return &Hub{
		conn:  conn,
		env:   env,
		msg:   make(chan model.Msg, 10),
		reply: make(chan model.Msg, 10),
	}
}

func (h *Hub) handleResponse() {
	closed := false
	for reply := range h.reply {
		if closed {
			continue
		}
		err := h.conn.WriteJSON(&reply)
		if err != nil {
			log.Error("err: ", err)
		}
		if reply.Type == model.MsgStopped {
			h.conn.Close()
			closed = true
		}
	}
}

func (h *Hub) handleRequest() {
	defer close(h.reply)
	stopped := false
	for msg := range h.msg {
		if stopped {
			continue
		}
		reply, stop := h.handle(msg)
		h.reply <- reply
		stopped = stop
	}
}

// handle 处理一条请求，返回回复以及是否结束连接
func (h *Hub) handle(msg model.Msg) (model.Msg, bool) {
	switch msg.Type {
	case model.MsgEnv:
		var env model.AnalyzeReq
		if err := json.Unmarshal([]byte(msg.Content), &env); err != nil {
			return errorMsg(fmt.Errorf("bad env content: %w", err)), false
		}
		if _, err := calculator.NewSystemParameters(env.Diameter); err != nil {
			return errorMsg(err), false
		}
		// 范围全为 0 时 start 使用默认范围
		if env.VMin != 0 || env.VMax != 0 || env.NumPoints != 0 {
			r := calculator.VelocityRange{Min: env.VMin, Max: env.VMax, NumPoints: env.NumPoints}
			if err := r.Validate(); err != nil {
				return errorMsg(err), false
			}
		}
		h.env = env
		log.WithFields(log.Fields{
			"diameter":  env.Diameter,
			"vMin":      env.VMin,
			"vMax":      env.VMax,
			"numPoints": env.NumPoints,
		}).Info("设置分析参数")
		return model.Msg{Type: model.MsgEnvSet, Content: "env is set"}, false
	case model.MsgStart:
		a, err := calculator.Analyze(h.env)
		if err != nil {
			return errorMsg(err), false
		}
		return contentMsg(model.MsgResult, a.BuildData()), false
	case model.MsgInfo:
		m, err := calculator.NewHydraulicModel(h.env.Diameter)
		if err != nil {
			return errorMsg(err), false
		}
		return contentMsg(model.MsgInfo, newSystemInfoResp(m.SystemInfo())), false
	case model.MsgStop:
		return model.Msg{Type: model.MsgStopped, Content: "stopped"}, true
	default:
		log.Warn("no such type: ", msg.Type)
		return model.Msg{Type: model.MsgError, Content: "no such type: " + msg.Type}, false
	}
}

func errorMsg(err error) model.Msg {
	return model.Msg{Type: model.MsgError, Content: err.Error()}
}

func contentMsg(typ string, v interface{}) model.Msg {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("err: ", err)
		return errorMsg(err)
	}
	return model.Msg{Type: typ, Content: string(data)}
}
