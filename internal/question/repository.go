package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DBCatalog implements Catalog using MySQL.
type DBCatalog struct {
	db *sqlx.DB
}

// NewDBCatalog creates a new DBCatalog.
func NewDBCatalog(db *sqlx.DB) *DBCatalog {
	return &DBCatalog{db: db}
}

// Get returns the question with the given id.
func (c *DBCatalog) Get(ctx context.Context, id string) (*Question, error) {
	var q Question
	err := c.db.GetContext(ctx, &q, "SELECT * FROM questions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("question %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load question %s: %w", id, err)
	}
	return &q, nil
}

// List returns matching question ids for a course, ordered by id.
func (c *DBCatalog) List(ctx context.Context, courseID string, filter Filter) ([]string, error) {
	query := "SELECT id FROM questions WHERE course_id = ?"
	args := []interface{}{courseID}

	if len(filter.Types) > 0 {
		inQuery, inArgs, err := sqlx.In(" AND type IN (?)", filter.Types)
		if err != nil {
			return nil, fmt.Errorf("build type filter: %w", err)
		}
		query += inQuery
		args = append(args, inArgs...)
	}
	if filter.DifficultyMin > 0 {
		query += " AND difficulty >= ?"
		args = append(args, filter.DifficultyMin)
	}
	if filter.DifficultyMax > 0 {
		query += " AND difficulty <= ?"
		args = append(args, filter.DifficultyMax)
	}
	query += " ORDER BY id"

	var ids []string
	if err := c.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list questions for course %s: %w", courseID, err)
	}
	return ids, nil
}

// GetFixedSet returns the question ids of a named pre-built exam set.
func (c *DBCatalog) GetFixedSet(ctx context.Context, courseID string, name string) ([]string, error) {
	var ids []string
	err := c.db.SelectContext(ctx, &ids,
		`SELECT esq.question_id
		FROM exam_sets es
		JOIN exam_set_questions esq ON esq.exam_set_id = es.id
		WHERE es.course_id = ? AND es.name = ?
		ORDER BY esq.position`,
		courseID, name)
	if err != nil {
		return nil, fmt.Errorf("load exam set %s for course %s: %w", name, courseID, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("exam set %s for course %s: %w", name, courseID, ErrNotFound)
	}
	return ids, nil
}
