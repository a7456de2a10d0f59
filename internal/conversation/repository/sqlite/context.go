package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"intent-pipeline/internal/conversation"
	repo "intent-pipeline/internal/conversation/repository"
	"intent-pipeline/internal/intent"
)

// SaveContext upserts the latest context of a session.
func (r *implRepository) SaveContext(ctx context.Context, c conversation.Context) error {
	if c.SessionID == "" {
		return repo.ErrSessionIDEmpty
	}

	const query = `
		INSERT INTO contexts (session_id, started_at, current_task, current_target,
			preferences_json, recent_actions_json, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			current_task = excluded.current_task,
			current_target = excluded.current_target,
			preferences_json = excluded.preferences_json,
			recent_actions_json = excluded.recent_actions_json,
			updated_at = excluded.updated_at`

	prefs, err := json.Marshal(c.UserPreferences)
	if err != nil {
		return repo.ErrFailedToInsert
	}
	actions, err := json.Marshal(c.RecentActions)
	if err != nil {
		return repo.ErrFailedToInsert
	}

	_, err = r.db.ExecContext(ctx, query,
		c.SessionID,
		formatTime(c.StartedAt),
		string(c.CurrentTask),
		c.CurrentTarget,
		string(prefs),
		string(actions),
		formatTime(time.Now()),
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SaveContext"), err)
		return repo.ErrFailedToInsert
	}
	return nil
}

func (r *implRepository) GetContext(ctx context.Context, sessionID string) (conversation.Context, error) {
	const query = `
		SELECT session_id, started_at, current_task, current_target, preferences_json, recent_actions_json
		FROM contexts WHERE session_id = ? LIMIT 1`

	var (
		c                   conversation.Context
		startedAt, task     string
		prefs, recentAction string
	)
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&c.SessionID, &startedAt, &task, &c.CurrentTarget, &prefs, &recentAction,
	)
	if err == sql.ErrNoRows {
		return conversation.Context{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetContext"), err)
		return conversation.Context{}, repo.ErrFailedToGet
	}

	c.StartedAt = parseTime(startedAt)
	c.CurrentTask = intent.Intent(task)
	c.UserPreferences = map[string]int{}
	c.RecentActions = []string{}
	if err := json.Unmarshal([]byte(prefs), &c.UserPreferences); err != nil {
		r.l.Warnf(ctx, "%s: decode preferences: %v", r.dsn("GetContext"), err)
	}
	if err := json.Unmarshal([]byte(recentAction), &c.RecentActions); err != nil {
		r.l.Warnf(ctx, "%s: decode recent actions: %v", r.dsn("GetContext"), err)
	}
	if c.UserPreferences == nil {
		c.UserPreferences = map[string]int{}
	}
	if c.RecentActions == nil {
		c.RecentActions = []string{}
	}
	return c, nil
}
