package processor

import (
	"errors"
	"testing"
)

// fakeResult implements sql.Result for insert-ID extraction tests.
type fakeResult struct {
	id  int64
	err error
}

func (r fakeResult) LastInsertId() (int64, error) { return r.id, r.err }
func (r fakeResult) RowsAffected() (int64, error) { return 0, nil }

// TestProcessSelect verifies the identity transform.
func TestProcessSelect(t *testing.T) {
	p := NewDefault()

	rows := []any{
		map[string]any{"id": int64(1)},
		map[string]any{"id": int64(2)},
	}

	got := p.ProcessSelect(rows)
	if len(got) != len(rows) {
		t.Fatalf("ProcessSelect() len = %d, want %d", len(got), len(rows))
	}
	for i := range rows {
		if &rows[i] != &got[i] {
			// Identity means the same backing slice, not a copy.
			t.Fatal("ProcessSelect() copied rows, want passthrough")
		}
	}
}

// TestProcessInsertGetID verifies generated-key extraction.
func TestProcessInsertGetID(t *testing.T) {
	p := NewDefault()

	t.Run("returns driver id", func(t *testing.T) {
		id, err := p.ProcessInsertGetID(fakeResult{id: 42})
		if err != nil {
			t.Fatalf("ProcessInsertGetID() error = %v", err)
		}
		if id != 42 {
			t.Errorf("ProcessInsertGetID() = %d, want 42", id)
		}
	})

	t.Run("propagates driver error", func(t *testing.T) {
		want := errors.New("not supported")
		_, err := p.ProcessInsertGetID(fakeResult{err: want})
		if !errors.Is(err, want) {
			t.Errorf("ProcessInsertGetID() error = %v, want %v", err, want)
		}
	})
}
