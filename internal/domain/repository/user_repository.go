package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"codearena/internal/common"
	"codearena/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, hashedPassword string) error

	// RecordSubmissionResult bumps total_submissions and, when accepted is
	// true and the pair has no solved row yet, total_solved. The first-solve
	// decision and both counters commit in one transaction.
	RecordSubmissionResult(ctx context.Context, userID, problemID string, accepted bool, at time.Time) (firstSolve bool, err error)
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, email, hashed_password, role,
	total_submissions, total_solved, last_solved_at, created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.Role,
		&user.TotalSubmissions, &user.TotalSolved, &user.LastSolvedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, email, hashed_password, role)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Username, user.Email, user.HashedPassword, user.Role).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) findOne(ctx context.Context, method, where string, arg interface{}) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.%s: %w", method, err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "FindByEmail", "email", email)
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "FindByUsername", "username", username)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, "FindByID", "id", id)
}

func (r *pgUserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET hashed_password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		hashedPassword, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdatePassword: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) RecordSubmissionResult(ctx context.Context, userID, problemID string, accepted bool, at time.Time) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.RecordSubmissionResult begin: %w", err)
	}
	defer tx.Rollback()

	firstSolve := false
	if accepted {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO user_solved_problems (user_id, problem_id, solved_at)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (user_id, problem_id) DO NOTHING`,
			userID, problemID, at)
		if err != nil {
			return false, fmt.Errorf("pgUserRepository.RecordSubmissionResult solved: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, fmt.Errorf("pgUserRepository.RecordSubmissionResult rows: %w", err)
		}
		firstSolve = n == 1
	}

	solvedIncrement := 0
	if firstSolve {
		solvedIncrement = 1
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE users SET
		     total_submissions = total_submissions + 1,
		     total_solved = total_solved + $2,
		     last_solved_at = CASE WHEN $3 THEN $4 ELSE last_solved_at END,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1`,
		userID, solvedIncrement, accepted, at)
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.RecordSubmissionResult update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, common.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("pgUserRepository.RecordSubmissionResult commit: %w", err)
	}
	return firstSolve, nil
}

func (r *pgUserRepository) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	query := `
        SELECT u.id, u.username, u.total_solved, u.total_submissions,
               COUNT(p.id) FILTER (WHERE p.difficulty = 'Easy'),
               COUNT(p.id) FILTER (WHERE p.difficulty = 'Medium'),
               COUNT(p.id) FILTER (WHERE p.difficulty = 'Hard')
        FROM users u
        LEFT JOIN user_solved_problems usp ON usp.user_id = u.id
        LEFT JOIN problems p ON p.id = usp.problem_id
        GROUP BY u.id, u.username, u.total_solved, u.total_submissions
        ORDER BY u.total_solved DESC, u.total_submissions ASC, u.username ASC
        LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.Leaderboard query: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.TotalSolved, &e.TotalSubmissions,
			&e.SolvedByDifficulty.Easy, &e.SolvedByDifficulty.Medium, &e.SolvedByDifficulty.Hard); err != nil {
			return nil, fmt.Errorf("pgUserRepository.Leaderboard scan: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.Leaderboard rows.Err: %w", err)
	}
	return entries, nil
}
