package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with the ent SQL builders and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionEventsTable.Name).
		Columns("sequence", "timestamp_ms", "session_id", "action",
			"questions_served", "correct_answers", "duration_secs").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Action,
			data.QuestionsServed, data.CorrectAnswers, data.DurationSecs).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(answerEventsTable.Name).
		Columns("sequence", "timestamp_ms", "session_id", "kind", "question_text",
			"correct_answer", "learner_answer", "correct", "time_ms").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Kind, data.QuestionText,
			data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.TimeMs).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, sessionID string, opts QueryOpts) ([]AnswerEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp_ms", "session_id", "kind", "question_text",
			"correct_answer", "learner_answer", "correct", "time_ms").
		From(entsql.Table(answerEventsTable.Name)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var e AnswerEvent
		var tsMs int64
		if err := rows.Scan(&e.ID, &e.Sequence, &tsMs, &e.SessionID, &e.Kind, &e.QuestionText,
			&e.CorrectAnswer, &e.LearnerAnswer, &e.Correct, &e.TimeMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		e.Timestamp = time.UnixMilli(tsMs)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) AccuracyByKind(ctx context.Context, sessionID string) ([]KindAccuracy, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("kind", entsql.Count("*"), "COALESCE(SUM(correct), 0)").
		From(entsql.Table(answerEventsTable.Name)).
		Where(entsql.EQ("session_id", sessionID)).
		GroupBy("kind").
		OrderBy("kind").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query accuracy by kind: %w", err)
	}
	defer rows.Close()

	var out []KindAccuracy
	for rows.Next() {
		var ka KindAccuracy
		if err := rows.Scan(&ka.Kind, &ka.Attempted, &ka.Correct); err != nil {
			return nil, fmt.Errorf("scan accuracy row: %w", err)
		}
		out = append(out, ka)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accuracy rows: %w", err)
	}
	return out, nil
}
