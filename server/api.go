package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"pumpsys/calculator"
	"pumpsys/model"
)

type HealthResp struct {
	Status string `json:"status"`
}

type ErrorResp struct {
	Error string `json:"error"`
}

type SystemInfoResp struct {
	SystemInfo calculator.SystemInfo `json:"system_info"`
	Rows       []model.Row           `json:"rows"`
}

func newSystemInfoResp(info calculator.SystemInfo) SystemInfoResp {
	return SystemInfoResp{SystemInfo: info, Rows: info.Rows()}
}

type OperatingPointResp struct {
	OperatingPoint calculator.OperatingPoint `json:"operating_point"`
	Rows           []model.Row               `json:"rows"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode response: ", err)
	}
}

// 参数错误和定义域错误返回 400
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, calculator.ErrInvalidParameter) || errors.Is(err, calculator.ErrDomain) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, ErrorResp{Error: err.Error()})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResp{Status: "ok"})
}

func (s *Server) systemInfo(w http.ResponseWriter, r *http.Request) {
	diameter := s.defaults.Diameter
	if raw := r.URL.Query().Get("diameter"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResp{Error: "diameter: " + err.Error()})
			return
		}
		diameter = d
	}
	m, err := calculator.NewHydraulicModel(diameter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSystemInfoResp(m.SystemInfo()))
}

func (s *Server) analysis(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Error: err.Error()})
		return
	}
	a, err := calculator.Analyze(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.BuildData())
}

// 未收敛不是错误，按 success=false 返回 200
func (s *Server) operatingPoint(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Error: err.Error()})
		return
	}
	op, err := calculator.FindOperatingPointFor(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OperatingPointResp{OperatingPoint: op, Rows: op.Rows()})
}

func (s *Server) batch(w http.ResponseWriter, r *http.Request) {
	var reqs []model.AnalyzeReq
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, calculator.AnalyzeBatch(reqs, s.workers))
}
