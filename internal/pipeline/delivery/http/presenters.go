package http

import (
	"intent-pipeline/internal/conversation"
	"intent-pipeline/internal/intent"
	"intent-pipeline/internal/pipeline"
	"intent-pipeline/pkg/response"
)

// --- Request DTOs ---

type createReq struct {
	SessionID string `json:"session_id" binding:"omitempty,max=128"`
}

type messageReq struct {
	Text string `json:"text" binding:"required,max=4000"`
}

type historyReq struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (r historyReq) normalize() historyReq {
	if r.Limit <= 0 || r.Limit > maxHistoryLimit {
		r.Limit = defaultHistoryLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
	return r
}

// --- Response DTOs ---

type createResp struct {
	SessionID string `json:"session_id"`
}

type messageResp struct {
	pipeline.Output
	ExecutionTimeSec float64 `json:"execution_time"`
}

func newMessageResp(out pipeline.Output) messageResp {
	return messageResp{
		Output:           out,
		ExecutionTimeSec: out.ExecutionTime.Seconds(),
	}
}

type detailResp struct {
	SessionID string                `json:"session_id"`
	Context   conversation.Snapshot `json:"context"`
}

type turnResp struct {
	Timestamp     response.DateTime `json:"timestamp"`
	UserInput     string            `json:"user_input"`
	Intent        intent.Intent     `json:"intent"`
	Confidence    float64           `json:"confidence"`
	Response      string            `json:"response"`
	ExecutionTime float64           `json:"execution_time"`
	Success       bool              `json:"success"`
}

type historyResp struct {
	SessionID string     `json:"session_id"`
	Source    string     `json:"source"`
	Turns     []turnResp `json:"turns"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

func newHistoryResp(sessionID, source string, turns []conversation.Turn, req historyReq) historyResp {
	out := historyResp{
		SessionID: sessionID,
		Source:    source,
		Turns:     make([]turnResp, 0, len(turns)),
		Limit:     req.Limit,
		Offset:    req.Offset,
	}
	for _, t := range turns {
		out.Turns = append(out.Turns, turnResp{
			Timestamp:     response.DateTime(t.Timestamp),
			UserInput:     t.UserInput,
			Intent:        t.ParsedIntent.Intent,
			Confidence:    t.ParsedIntent.Confidence,
			Response:      t.Response,
			ExecutionTime: t.ExecutionTime.Seconds(),
			Success:       t.Success,
		})
	}
	return out
}

// page applies limit and offset to the live history.
func page(turns []conversation.Turn, req historyReq) []conversation.Turn {
	if req.Offset >= len(turns) {
		return nil
	}
	turns = turns[req.Offset:]
	if len(turns) > req.Limit {
		turns = turns[:req.Limit]
	}
	return turns
}
