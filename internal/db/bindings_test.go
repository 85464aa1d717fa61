package db

import (
	"reflect"
	"testing"
	"time"

	"github.com/quillsql/quill/internal/db/grammar"
)

// stubGrammar overrides the date format to prove the active grammar is
// consulted during normalization.
type stubGrammar struct {
	grammar.Grammar
}

func (stubGrammar) DateFormat() string {
	return "2006-01-02"
}

// TestPrepareBindings verifies binding normalization rules.
func TestPrepareBindings(t *testing.T) {
	c := New(nil, Options{})

	t.Run("formats dates with grammar layout", func(t *testing.T) {
		when := time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC)

		got := c.PrepareBindings([]any{when})
		if got[0] != "2026-08-25 14:30:05" {
			t.Errorf("PrepareBindings(time) = %v, want 2026-08-25 14:30:05", got[0])
		}
	})

	t.Run("consults the active grammar", func(t *testing.T) {
		swapped := New(nil, Options{Grammar: stubGrammar{grammar.NewSQLite()}})
		when := time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC)

		got := swapped.PrepareBindings([]any{when})
		if got[0] != "2026-08-25" {
			t.Errorf("PrepareBindings(time) = %v, want 2026-08-25", got[0])
		}
	})

	t.Run("rewrites false to zero", func(t *testing.T) {
		got := c.PrepareBindings([]any{false})
		if got[0] != int64(0) {
			t.Errorf("PrepareBindings(false) = %v (%T), want int64(0)", got[0], got[0])
		}
	})

	t.Run("leaves true unchanged", func(t *testing.T) {
		got := c.PrepareBindings([]any{true})
		if got[0] != true {
			t.Errorf("PrepareBindings(true) = %v, want true", got[0])
		}
	})

	t.Run("passes other values through", func(t *testing.T) {
		in := []any{"name", int64(7), 3.14, nil, Raw("count(*)")}

		got := c.PrepareBindings(in)
		if !reflect.DeepEqual(got, in) {
			t.Errorf("PrepareBindings(%v) = %v, want unchanged", in, got)
		}
	})

	t.Run("preserves length and order", func(t *testing.T) {
		when := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		in := []any{"a", false, when, true, nil}

		got := c.PrepareBindings(in)
		if len(got) != len(in) {
			t.Fatalf("PrepareBindings() len = %d, want %d", len(got), len(in))
		}
		if got[0] != "a" || got[3] != true || got[4] != nil {
			t.Errorf("PrepareBindings() reordered values: %v", got)
		}
	})

	t.Run("is idempotent on its own output", func(t *testing.T) {
		in := []any{"a", false, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), true, int64(9)}

		once := c.PrepareBindings(in)
		twice := c.PrepareBindings(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("PrepareBindings() not idempotent: %v != %v", once, twice)
		}
	})
}
