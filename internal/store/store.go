package store

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrEventNotFound signals a missing event record.
	ErrEventNotFound = errors.New("event not found")
	// ErrVenueNotFound signals a missing venue record.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrInvalidEvent indicates validation failure for event data.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrInvalidVenue indicates validation failure for venue data.
	ErrInvalidVenue = errors.New("invalid venue")
	// ErrInvalidBand indicates validation failure for band data.
	ErrInvalidBand = errors.New("invalid band")
	// ErrDuplicate signals a unique constraint violation.
	ErrDuplicate = errors.New("record already exists")
)

const dateLayout = "2006-01-02"

var wallClockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// Store provides persistence backed by Postgres.
type Store struct {
	db    *sql.DB
	newID func() string
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db, newID: uuid.NewString}
}

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func validWallClock(s string) bool {
	return s == "" || wallClockPattern.MatchString(s)
}

func requireOrg(orgID string, sentinel error) error {
	if strings.TrimSpace(orgID) == "" {
		return fmt.Errorf("%w: org id is required", sentinel)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}
