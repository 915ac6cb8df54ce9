package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestUpdateBuilderNumbersPlaceholders(t *testing.T) {
	b := newUpdate("tasks")
	b.set("title", "t")
	b.set("completed", true)

	sql, args := b.build(42, "id")

	want := "UPDATE tasks SET title = $1, completed = $2, updated_at = GREATEST(now(), updated_at) WHERE id = $3 RETURNING id"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 3 || args[0] != "t" || args[1] != true || args[2] != int64(42) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestUpdateBuilderBuildIsRepeatable(t *testing.T) {
	b := newUpdate("lists")
	b.set("name", "n")

	first, _ := b.build(1, "id")
	second, args := b.build(2, "id")
	if first != second {
		t.Fatalf("build mutated builder state: %q vs %q", first, second)
	}
	if args[len(args)-1] != int64(2) {
		t.Fatalf("unexpected id arg: %v", args)
	}
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", pgx.ErrNoRows), ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "ix_users_email"}, ErrDuplicateKey},
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "lists_user_id_fkey"}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateError(tt.err); !errors.Is(got, tt.want) {
				t.Fatalf("translateError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestTranslateErrorPassesThroughOthers(t *testing.T) {
	if translateError(nil) != nil {
		t.Fatal("nil should stay nil")
	}
	other := &pgconn.PgError{Code: "42P01"}
	got := translateError(other)
	if errors.Is(got, ErrNotFound) || errors.Is(got, ErrDuplicateKey) {
		t.Fatalf("unexpected classification: %v", got)
	}
}
