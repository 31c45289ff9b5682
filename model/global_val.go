package model

// 消息类型
const (
	// request
	MsgEnv   = "env"
	MsgStart = "start"
	MsgInfo  = "info"
	MsgStop  = "stop"

	// response
	MsgEnvSet  = "envSet"
	MsgResult  = "result"
	MsgStopped = "stopped"
	MsgError   = "error"
)
