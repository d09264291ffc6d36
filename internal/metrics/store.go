package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ayurdiet/internal/llm"
)

// ExecutionMetric records metadata for a single LLM call.
type ExecutionMetric struct {
	AgentName        string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Timestamp        time.Time
}

// PlanMetric records the outcome of one plan generation.
type PlanMetric struct {
	Dosha          string
	Season         string
	PlanType       string
	TargetCalories int
	TotalCalories  int
	ItemCount      int
	LatencyMS      int64
	Timestamp      time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves an LLM execution metric to the database.
func (s *Store) Record(m ExecutionMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO execution_metrics (agent_name, model, prompt_tokens, completion_tokens, latency_ms, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.AgentName, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to insert execution metric: %w", err)
	}
	return nil
}

// RecordUsage records a metric directly from LLM token usage.
func (s *Store) RecordUsage(agentName string, usage llm.TokenUsage, latency time.Duration) error {
	if usage.PromptTokens == 0 && usage.CompletionTokens == 0 {
		return nil
	}
	return s.Record(ExecutionMetric{
		AgentName:        agentName,
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		LatencyMS:        latency.Milliseconds(),
		Timestamp:        time.Now().UTC(),
	})
}

// RecordPlan saves a plan-generation metric.
func (s *Store) RecordPlan(m PlanMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO plan_metrics (dosha, season, plan_type, target_calories, total_calories, item_count, latency_ms, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Dosha, m.Season, m.PlanType, m.TargetCalories, m.TotalCalories, m.ItemCount, m.LatencyMS, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan metric: %w", err)
	}
	return nil
}

// DailyUsage represents token totals for a single day.
type DailyUsage struct {
	Day              string
	PromptTokens     int64
	CompletionTokens int64
	Calls            int64
}

// DailyUsageSince aggregates LLM token usage per day, most recent first.
func (s *Store) DailyUsageSince(since time.Time) ([]DailyUsage, error) {
	rows, err := s.db.QueryContext(context.Background(),
		`SELECT date(timestamp) AS day,
		        SUM(prompt_tokens), SUM(completion_tokens), COUNT(*)
		 FROM execution_metrics WHERE timestamp >= ?
		 GROUP BY day ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Day, &u.PromptTokens, &u.CompletionTokens, &u.Calls); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage row: %w", err)
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes metric records older than the specified number of days.
func (s *Store) Cleanup(olderThanDays int) error {
	threshold := time.Now().AddDate(0, 0, -olderThanDays)
	_, err := s.db.ExecContext(context.Background(),
		`DELETE FROM execution_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return fmt.Errorf("failed to clean up execution metrics: %w", err)
	}
	_, err = s.db.ExecContext(context.Background(),
		`DELETE FROM plan_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return fmt.Errorf("failed to clean up plan metrics: %w", err)
	}
	return nil
}
