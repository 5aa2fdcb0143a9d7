// Package community persists development plans and their votes to SQLite.
package community

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"
)

// ErrPlanNotFound is returned when a plan ID does not exist.
var ErrPlanNotFound = errors.New("plan not found")

// Plan is a community development proposal up for voting.
type Plan struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	PlanType          string    `json:"plan_type"`
	ProposedStartDate string    `json:"proposed_start_date"`
	UploadDate        time.Time `json:"upload_date"`
	Upvotes           int       `json:"upvotes"`
	Downvotes         int       `json:"downvotes"`
}

// Vote is one recorded vote for a plan.
type Vote struct {
	PlanID   string    `json:"plan_id"`
	VoteType string    `json:"vote_type"`
	VotedAt  time.Time `json:"voted_at"`
}

// Filter narrows and orders ListPlans results.
type Filter struct {
	// Search matches case-insensitively against title and description.
	Search string
	// PlanType keeps only plans of this type; empty keeps all.
	PlanType string
	// SortBy is one of "upload_date" (newest first, the default),
	// "most_votes", or "title".
	SortBy string
}

// BoardSummary aggregates the whole board.
type BoardSummary struct {
	TotalPlans      int    `json:"total_plans"`
	TotalVotes      int    `json:"total_votes"`
	MostPopularPlan string `json:"most_popular_plan"`
}

// Store wraps the SQLite database holding plans and votes.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
}

// Open opens (or creates) the database at path and ensures the schema
// exists. A nil clock selects the real clock.
func Open(path string, clk clockwork.Clock) (*Store, error) {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("community: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, clock: clk}, nil
}

func initSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS plans (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    plan_type TEXT NOT NULL,
    proposed_start_date TEXT NOT NULL DEFAULT '',
    upload_date INTEGER NOT NULL,
    upvotes INTEGER NOT NULL DEFAULT 0,
    downvotes INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS vote_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    plan_id TEXT NOT NULL REFERENCES plans(id),
    vote_type TEXT NOT NULL,
    voted_at INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("community: init schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewPlan carries the fields for plan submission.
type NewPlan struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	PlanType          string `json:"plan_type"`
	ProposedStartDate string `json:"proposed_start_date"`
}

// CreatePlan validates and stores a new plan with a fresh 8-character ID.
func (s *Store) CreatePlan(ctx context.Context, np NewPlan) (Plan, error) {
	title := strings.TrimSpace(np.Title)
	description := strings.TrimSpace(np.Description)
	if title == "" {
		return Plan{}, errors.New("title is required")
	}
	if description == "" {
		return Plan{}, errors.New("description is required")
	}

	p := Plan{
		ID:                newPlanID(),
		Title:             title,
		Description:       description,
		PlanType:          np.PlanType,
		ProposedStartDate: np.ProposedStartDate,
		UploadDate:        s.clock.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO plans (id, title, description, plan_type, proposed_start_date, upload_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.PlanType, p.ProposedStartDate, p.UploadDate.Unix())
	if err != nil {
		return Plan{}, fmt.Errorf("community: create plan: %w", err)
	}
	return p, nil
}

// GetPlan fetches one plan by ID.
func (s *Store) GetPlan(ctx context.Context, id string) (Plan, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, plan_type, proposed_start_date, upload_date, upvotes, downvotes
		 FROM plans WHERE id = ?`, id)
	return scanPlan(row)
}

// ListPlans returns plans matching the filter in the requested order.
func (s *Store) ListPlans(ctx context.Context, f Filter) ([]Plan, error) {
	query := `SELECT id, title, description, plan_type, proposed_start_date, upload_date, upvotes, downvotes
	          FROM plans`
	var clauses []string
	var args []any

	if search := strings.TrimSpace(f.Search); search != "" {
		clauses = append(clauses, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		pattern := "%" + strings.ToLower(search) + "%"
		args = append(args, pattern, pattern)
	}
	if f.PlanType != "" {
		clauses = append(clauses, "plan_type = ?")
		args = append(args, f.PlanType)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	switch f.SortBy {
	case "most_votes":
		query += " ORDER BY upvotes + downvotes DESC, upload_date DESC"
	case "title":
		query += " ORDER BY LOWER(title) ASC"
	default:
		query += " ORDER BY upload_date DESC"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("community: list plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// CastVote records a vote and returns the updated plan.
func (s *Store) CastVote(ctx context.Context, planID, direction string) (Plan, error) {
	var column string
	switch direction {
	case "up":
		column = "upvotes"
	case "down":
		column = "downvotes"
	default:
		return Plan{}, fmt.Errorf("invalid vote direction %q", direction)
	}

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE plans SET %s = %s + 1 WHERE id = ?", column, column), planID)
	if err != nil {
		return Plan{}, fmt.Errorf("community: cast vote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Plan{}, fmt.Errorf("community: cast vote: %w", err)
	}
	if affected == 0 {
		return Plan{}, ErrPlanNotFound
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO vote_history (plan_id, vote_type, voted_at) VALUES (?, ?, ?)`,
		planID, direction, s.clock.Now().UTC().Unix())
	if err != nil {
		return Plan{}, fmt.Errorf("community: record vote history: %w", err)
	}

	return s.GetPlan(ctx, planID)
}

// VoteHistory returns the recorded votes for a plan, oldest first.
func (s *Store) VoteHistory(ctx context.Context, planID string) ([]Vote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT plan_id, vote_type, voted_at FROM vote_history WHERE plan_id = ? ORDER BY id ASC`, planID)
	if err != nil {
		return nil, fmt.Errorf("community: vote history: %w", err)
	}
	defer rows.Close()

	var votes []Vote
	for rows.Next() {
		var v Vote
		var ts int64
		if err := rows.Scan(&v.PlanID, &v.VoteType, &ts); err != nil {
			return nil, fmt.Errorf("community: scan vote: %w", err)
		}
		v.VotedAt = time.Unix(ts, 0).UTC()
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// Summary aggregates plan and vote totals; most popular is the plan with the
// highest upvote margin.
func (s *Store) Summary(ctx context.Context) (BoardSummary, error) {
	var sum BoardSummary
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(upvotes + downvotes), 0) FROM plans`)
	if err := row.Scan(&sum.TotalPlans, &sum.TotalVotes); err != nil {
		return BoardSummary{}, fmt.Errorf("community: summary: %w", err)
	}

	if sum.TotalPlans > 0 {
		row = s.db.QueryRowContext(ctx,
			`SELECT title FROM plans ORDER BY upvotes - downvotes DESC, upload_date DESC LIMIT 1`)
		if err := row.Scan(&sum.MostPopularPlan); err != nil {
			return BoardSummary{}, fmt.Errorf("community: summary: %w", err)
		}
	}
	return sum, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (Plan, error) {
	var p Plan
	var ts int64
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.PlanType, &p.ProposedStartDate, &ts, &p.Upvotes, &p.Downvotes)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrPlanNotFound
	}
	if err != nil {
		return Plan{}, fmt.Errorf("community: scan plan: %w", err)
	}
	p.UploadDate = time.Unix(ts, 0).UTC()
	return p, nil
}

func newPlanID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}
