package calculator

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"pumpsys/model"
)

// 批量分析中单个请求的结果，Index 对应请求下标
type BatchResult struct {
	Index  int       `json:"index"`
	Result *PushData `json:"result,omitempty"`
	Error  string    `json:"error,omitempty"`

	err error
}

func (r BatchResult) Err() error {
	return r.err
}

type task struct {
	index int
	req   model.AnalyzeReq
}

// 基于请求的任务分配，每个 worker 为每个请求单独构建模型
type executor struct {
	workers      int
	dispatchChan chan task
	doneChan     chan BatchResult
}

func newExecutor(workers int) *executor {
	if workers < 1 {
		workers = 1
	}
	return &executor{
		workers:      workers,
		dispatchChan: make(chan task, workers),
		doneChan:     make(chan BatchResult, workers),
	}
}

func (e *executor) run() {
	for i := 0; i < e.workers; i++ {
		go func() {
			for t := range e.dispatchChan {
				e.doneChan <- runTask(t)
			}
		}()
	}
}

// 可在测试中替换
var analyzeFn = Analyze

// runTask 中的 panic 只影响本条请求
func runTask(t task) (res BatchResult) {
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("analysis panicked: %v", p)
			log.WithFields(log.Fields{
				"index": t.index,
				"err":   err,
			}).Error("批量分析任务异常")
			res = BatchResult{Index: t.index, Error: err.Error(), err: err}
		}
	}()
	a, err := analyzeFn(t.req)
	if err != nil {
		return BatchResult{Index: t.index, Error: err.Error(), err: err}
	}
	return BatchResult{Index: t.index, Result: a.BuildData()}
}

func (e *executor) dispatchTask(reqs []model.AnalyzeReq) ([]BatchResult, time.Duration) {
	start := time.Now()
	go func() {
		for i, req := range reqs {
			e.dispatchChan <- task{index: i, req: req}
		}
		close(e.dispatchChan)
	}()

	results := make([]BatchResult, len(reqs))
	for doneSoFar := 0; doneSoFar < len(reqs); doneSoFar++ {
		r := <-e.doneChan
		results[r.Index] = r
	}
	return results, time.Since(start)
}

// AnalyzeBatch runs independent analyses on a fixed pool of workers and
// returns the results in request order. A bad request only fails its own
// item.
func AnalyzeBatch(reqs []model.AnalyzeReq, workers int) []BatchResult {
	if len(reqs) == 0 {
		return []BatchResult{}
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}
	e := newExecutor(workers)
	e.run()
	results, cost := e.dispatchTask(reqs)
	log.WithFields(log.Fields{
		"requests": len(reqs),
		"workers":  e.workers,
		"cost":     cost,
	}).Info("批量分析完成")
	return results
}
