package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"codearena/internal/common"
	"codearena/internal/domain/model"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	// Update replaces the judged fields of a submission and returns the row.
	Update(ctx context.Context, id string, verdict model.Verdict, executionTime float64, memory int, raw json.RawMessage) (*model.Submission, error)
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	ListByUser(ctx context.Context, userID string) ([]model.Submission, error)
	ExistsAcceptedFor(ctx context.Context, userID, problemID string) (bool, error)

	// For the dashboard
	CountByUser(ctx context.Context, userID string) (model.SubmissionCounts, error)
	DailyActivity(ctx context.Context, userID string, since time.Time) ([]model.DailyActivity, error)
	AcceptedDays(ctx context.Context, userID string) ([]string, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

const submissionColumns = `s.id, s.user_id, s.problem_id, s.problem_number, s.code, s.language, s.verdict,
       s.execution_time, s.memory, s.details, s.created_at, s.updated_at`

const submissionWithProblemColumns = submissionColumns + `,
       p.title, p.difficulty, p.category, p.problem_number`

func scanSubmission(row rowScanner, withProblem bool) (*model.Submission, error) {
	sub := &model.Submission{}
	var details []byte
	dest := []interface{}{
		&sub.ID, &sub.UserID, &sub.ProblemID, &sub.ProblemNumber, &sub.Code, &sub.Language, &sub.Verdict,
		&sub.ExecutionTime, &sub.Memory, &details, &sub.CreatedAt, &sub.UpdatedAt,
	}
	var summary model.ProblemSummary
	if withProblem {
		dest = append(dest, &summary.Title, &summary.Difficulty, &summary.Category, &summary.ProblemNumber)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if len(details) > 0 {
		sub.Details = json.RawMessage(details)
	}
	if withProblem {
		summary.ID = sub.ProblemID
		sub.Problem = &summary
	}
	return sub, nil
}

// nullableJSON turns an empty payload into SQL NULL.
func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func (r *pgSubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	sub.Verdict = model.VerdictPending
	query := `INSERT INTO submissions (id, user_id, problem_id, problem_number, code, language, verdict, execution_time, memory)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, sub.ID, sub.UserID, sub.ProblemID, sub.ProblemNumber, sub.Code, sub.Language, sub.Verdict).
		Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	sub.ExecutionTime = 0
	sub.Memory = 0
	return nil
}

func (r *pgSubmissionRepository) Update(ctx context.Context, id string, verdict model.Verdict, executionTime float64, memory int, raw json.RawMessage) (*model.Submission, error) {
	query := `UPDATE submissions s SET verdict = $1, execution_time = $2, memory = $3, details = $4, updated_at = CURRENT_TIMESTAMP
	          WHERE s.id = $5
	          RETURNING ` + submissionColumns
	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, verdict, executionTime, memory, nullableJSON(raw), id), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.Update: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT ` + submissionWithProblemColumns + `
	          FROM submissions s
	          JOIN problems p ON p.id = s.problem_id
	          WHERE s.id = $1`
	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByID: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) ListByUser(ctx context.Context, userID string) ([]model.Submission, error) {
	query := `SELECT ` + submissionWithProblemColumns + `
	          FROM submissions s
	          JOIN problems p ON p.id = s.problem_id
	          WHERE s.user_id = $1
	          ORDER BY s.created_at DESC, s.id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows, true)
		if err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListByUser scan: %w", err)
		}
		submissions = append(submissions, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListByUser rows.Err: %w", err)
	}
	return submissions, nil
}

func (r *pgSubmissionRepository) ExistsAcceptedFor(ctx context.Context, userID, problemID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM submissions WHERE user_id = $1 AND problem_id = $2 AND verdict = $3)`,
		userID, problemID, model.VerdictAccepted).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pgSubmissionRepository.ExistsAcceptedFor: %w", err)
	}
	return exists, nil
}

func (r *pgSubmissionRepository) CountByUser(ctx context.Context, userID string) (model.SubmissionCounts, error) {
	var c model.SubmissionCounts
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FILTER (WHERE verdict <> $2), COUNT(*) FILTER (WHERE verdict = $3)
		 FROM submissions WHERE user_id = $1`,
		userID, model.VerdictPending, model.VerdictAccepted).Scan(&c.Total, &c.Accepted)
	if err != nil {
		return c, fmt.Errorf("pgSubmissionRepository.CountByUser: %w", err)
	}
	return c, nil
}

func (r *pgSubmissionRepository) DailyActivity(ctx context.Context, userID string, since time.Time) ([]model.DailyActivity, error) {
	query := `
        SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
               COUNT(*),
               COUNT(*) FILTER (WHERE verdict = $3)
        FROM submissions
        WHERE user_id = $1 AND created_at >= $2
        GROUP BY day
        ORDER BY day ASC`
	rows, err := r.db.QueryContext(ctx, query, userID, since, model.VerdictAccepted)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.DailyActivity query: %w", err)
	}
	defer rows.Close()

	activity := []model.DailyActivity{}
	for rows.Next() {
		var a model.DailyActivity
		if err := rows.Scan(&a.Date, &a.Submissions, &a.Solved); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.DailyActivity scan: %w", err)
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.DailyActivity rows.Err: %w", err)
	}
	return activity, nil
}

func (r *pgSubmissionRepository) AcceptedDays(ctx context.Context, userID string) ([]string, error) {
	query := `
        SELECT DISTINCT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day
        FROM submissions
        WHERE user_id = $1 AND verdict = $2
        ORDER BY day DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, model.VerdictAccepted)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.AcceptedDays query: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.AcceptedDays scan: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.AcceptedDays rows.Err: %w", err)
	}
	return days, nil
}
