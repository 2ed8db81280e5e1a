package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryDSN())
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestMemoryDSNIsPrivate(t *testing.T) {
	s1 := openTestStore(t)
	s2 := openTestStore(t)
	ctx := context.Background()

	if err := s1.EventRepo().AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s", Kind: "sum"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := s2.EventRepo().QueryAnswerEvents(ctx, "s", QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("second store sees %d events from the first", len(events))
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"session_events", "answer_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestAnswerEvents_QueryNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "start"}); err != nil {
		t.Fatalf("append session: %v", err)
	}
	answers := []AnswerEventData{
		{SessionID: "s1", Kind: "sum", QuestionText: "q1", CorrectAnswer: "200", LearnerAnswer: "200", Correct: true, TimeMs: 1500},
		{SessionID: "s1", Kind: "sum", QuestionText: "q2", CorrectAnswer: "300", LearnerAnswer: "100", Correct: false},
		{SessionID: "other", Kind: "sum", QuestionText: "q3"},
		{SessionID: "s1", Kind: "bestPerformer", QuestionText: "q4", CorrectAnswer: "C", LearnerAnswer: "c", Correct: true},
	}
	for i, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append answer %d: %v", i, err)
		}
	}

	events, err := repo.QueryAnswerEvents(ctx, "s1", QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].QuestionText != "q4" || events[2].QuestionText != "q1" {
		t.Errorf("order = %q, %q, %q; want q4, q2, q1",
			events[0].QuestionText, events[1].QuestionText, events[2].QuestionText)
	}
	// The session start consumed sequence 1.
	if events[2].Sequence != 2 {
		t.Errorf("first answer sequence = %d, want 2", events[2].Sequence)
	}
	if !events[2].Correct || events[2].TimeMs != 1500 {
		t.Errorf("first answer = %+v", events[2].AnswerEventData)
	}
	if events[1].Correct {
		t.Error("second answer should be stored as wrong")
	}

	limited, err := repo.QueryAnswerEvents(ctx, "s1", QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].QuestionText != "q4" {
		t.Errorf("limited query = %+v", limited)
	}
}

func TestAccuracyByKind(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s1", Kind: "sum", Correct: true},
		{SessionID: "s1", Kind: "sum", Correct: false},
		{SessionID: "s1", Kind: "difference", Correct: true},
		{SessionID: "s2", Kind: "sum", Correct: true},
	}
	for i, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.AccuracyByKind(ctx, "s1")
	if err != nil {
		t.Fatalf("accuracy: %v", err)
	}
	want := []KindAccuracy{
		{Kind: "difference", Attempted: 1, Correct: 1},
		{Kind: "sum", Attempted: 2, Correct: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if got[1].Accuracy() != 0.5 {
		t.Errorf("sum accuracy = %v, want 0.5", got[1].Accuracy())
	}

	empty, err := repo.AccuracyByKind(ctx, "none")
	if err != nil {
		t.Fatalf("accuracy (empty): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no rows, got %+v", empty)
	}
	if (KindAccuracy{}).Accuracy() != 0 {
		t.Error("zero attempts should report 0 accuracy")
	}
}

func TestAutoMigrationCreatesIndexes(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, index := range []string{"answerevent_session_id_sequence", "answerevent_kind", "sessionevent_session_id"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", index,
		).Scan(&name)
		if err != nil {
			t.Errorf("index %s: %v", index, err)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EventRepo().AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s", Kind: "sum"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.migrate(ctx); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	seq, err := newSequenceCounter(ctx, s.drv)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	next, err := seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next != 2 {
		t.Errorf("next after reseed = %d, want 2", next)
	}
}
