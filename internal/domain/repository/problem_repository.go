package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"codearena/internal/common"
	"codearena/internal/domain/model"

	"github.com/jackc/pgx/v5/pgtype"
)

type ProblemRepository interface {
	CreateProblem(ctx context.Context, problem *model.Problem) error
	FindProblemByID(ctx context.Context, id string) (*model.Problem, error)
	FindProblemByNumber(ctx context.Context, number int) (*model.Problem, error)
	ListProblems(ctx context.Context, filter model.ProblemFilter) ([]model.Problem, int, error)
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

var problemSortColumns = map[string]string{
	"problemNumber": "p.problem_number",
	"title":         "p.title",
	"difficulty":    "CASE p.difficulty WHEN 'Easy' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END",
	"createdAt":     "p.created_at",
}

const problemColumns = `p.id, p.problem_number, p.title, p.slug, p.description, p.difficulty, p.category,
       p.tags, p.input_example, p.expected_output, p.created_by, p.created_at, p.updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *pgProblemRepository) scanProblem(row rowScanner) (*model.Problem, error) {
	p := &model.Problem{}
	// pgtype.Map caches scan plans and is not safe for concurrent use.
	typeMap := pgtype.NewMap()
	err := row.Scan(
		&p.ID, &p.ProblemNumber, &p.Title, &p.Slug, &p.Description, &p.Difficulty, &p.Category,
		typeMap.SQLScanner(&p.Tags), &p.InputExample, &p.ExpectedOutput, &p.CreatedByID, &p.CreatedAt, &p.UpdatedAt,
	)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, err
}

func (r *pgProblemRepository) CreateProblem(ctx context.Context, p *model.Problem) error {
	query := `INSERT INTO problems (id, title, slug, description, difficulty, category, tags, input_example, expected_output, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING problem_number, created_at, updated_at`

	if p.Tags == nil {
		p.Tags = []string{}
	}
	err := r.db.QueryRowContext(ctx, query, p.ID, p.Title, p.Slug, p.Description, p.Difficulty, p.Category,
		p.Tags, p.InputExample, p.ExpectedOutput, p.CreatedByID).
		Scan(&p.ProblemNumber, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if common.IsUniqueViolation(err) { // Unique constraint for slug
			return fmt.Errorf("problem with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgProblemRepository.CreateProblem: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) findOne(ctx context.Context, method, where string, arg interface{}) (*model.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems p WHERE ` + where + ` = $1`
	problem, err := r.scanProblem(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.%s: %w", method, err)
	}
	return problem, nil
}

func (r *pgProblemRepository) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	return r.findOne(ctx, "FindProblemByID", "p.id", id)
}

func (r *pgProblemRepository) FindProblemByNumber(ctx context.Context, number int) (*model.Problem, error) {
	return r.findOne(ctx, "FindProblemByNumber", "p.problem_number", number)
}

func (r *pgProblemRepository) ListProblems(ctx context.Context, f model.ProblemFilter) ([]model.Problem, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if f.Difficulty != "" {
		conditions = append(conditions, fmt.Sprintf("p.difficulty = $%d", argID))
		args = append(args, f.Difficulty)
		argID++
	}
	if f.Category != "" {
		conditions = append(conditions, fmt.Sprintf("p.category ILIKE $%d", argID))
		args = append(args, f.Category)
		argID++
	}
	for _, tag := range f.Tags {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(p.tags)", argID))
		args = append(args, tag)
		argID++
	}
	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", argID, argID))
		args = append(args, "%"+f.Search+"%")
		argID++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM problems p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems count: %w", err)
	}

	sortColumn, ok := problemSortColumns[f.SortBy]
	if !ok {
		sortColumn = problemSortColumns["problemNumber"]
	}
	direction := "ASC"
	if f.Descending {
		direction = "DESC"
	}

	query := `SELECT ` + problemColumns + ` FROM problems p` + where +
		fmt.Sprintf(" ORDER BY %s %s, p.problem_number ASC LIMIT $%d OFFSET $%d", sortColumn, direction, argID, argID+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems query: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		p, err := r.scanProblem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems scan: %w", err)
		}
		problems = append(problems, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgProblemRepository.ListProblems rows.Err: %w", err)
	}

	return problems, total, nil
}
