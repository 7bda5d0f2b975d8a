package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPgErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, "23505"},
		{"wrapped foreign key violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgForeignKeyViolation}), "23503"},
		{"plain error", errors.New("connection refused"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pgErrorCode(tt.err); got != tt.want {
				t.Errorf("pgErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}
