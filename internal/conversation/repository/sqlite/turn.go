package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"intent-pipeline/internal/conversation"
	repo "intent-pipeline/internal/conversation/repository"
	"intent-pipeline/internal/intent"
)

// SaveTurn appends one finalized turn.
func (r *implRepository) SaveTurn(ctx context.Context, opt repo.SaveTurnOptions) error {
	if opt.SessionID == "" {
		return repo.ErrSessionIDEmpty
	}

	const query = `
		INSERT INTO turns (session_id, timestamp, user_input, intent, confidence, target,
			details_json, original_text, response, execution_time, success)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	t := opt.Turn
	details, err := json.Marshal(t.ParsedIntent.Details)
	if err != nil {
		r.l.Errorf(ctx, "%s: encode details: %v", r.dsn("SaveTurn"), err)
		return repo.ErrFailedToInsert
	}

	_, err = r.db.ExecContext(ctx, query,
		opt.SessionID,
		formatTime(t.Timestamp),
		t.UserInput,
		string(t.ParsedIntent.Intent),
		t.ParsedIntent.Confidence,
		t.ParsedIntent.Target,
		string(details),
		t.ParsedIntent.OriginalText,
		t.Response,
		t.ExecutionTime.Seconds(),
		boolToInt(t.Success),
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SaveTurn"), err)
		return repo.ErrFailedToInsert
	}
	return nil
}

// ListTurns returns archived turns of a session, oldest first.
func (r *implRepository) ListTurns(ctx context.Context, opt repo.ListTurnsOptions) ([]conversation.Turn, error) {
	if opt.SessionID == "" {
		return nil, repo.ErrSessionIDEmpty
	}

	const query = `
		SELECT timestamp, user_input, intent, confidence, target, details_json,
			original_text, response, execution_time, success
		FROM turns WHERE session_id = ? ORDER BY id ASC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, opt.SessionID, limitOrDefault(opt.Limit), max(opt.Offset, 0))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTurns"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	turns := []conversation.Turn{}
	for rows.Next() {
		var (
			t        conversation.Turn
			ts       string
			in       string
			details  string
			execTime float64
			success  int
		)
		if err := rows.Scan(&ts, &t.UserInput, &in, &t.ParsedIntent.Confidence, &t.ParsedIntent.Target,
			&details, &t.ParsedIntent.OriginalText, &t.Response, &execTime, &success); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListTurns"), err)
			return nil, repo.ErrFailedToList
		}

		t.Timestamp = parseTime(ts)
		t.ParsedIntent.Intent = intent.Intent(in)
		t.ExecutionTime = time.Duration(execTime * float64(time.Second))
		t.Success = success != 0
		if details != "" && details != "null" {
			if err := json.Unmarshal([]byte(details), &t.ParsedIntent.Details); err != nil {
				r.l.Warnf(ctx, "%s: decode details: %v", r.dsn("ListTurns"), err)
			}
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListTurns"), err)
		return nil, repo.ErrFailedToList
	}
	return turns, nil
}
