package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tgienger/byteme/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// timeLayout stores naive local date-times so that text comparison in SQL
// matches chronological order
const timeLayout = "2006-01-02T15:04:05"

const taskColumns = "id, kind, description, done, at, end_at, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

func parseTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.ParseInLocation(timeLayout, s.String, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		t         models.Task
		kind      string
		at, endAt sql.NullString
		createdAt sql.NullTime
	)
	if err := row.Scan(&t.ID, &kind, &t.Description, &t.Done, &at, &endAt, &createdAt); err != nil {
		return t, err
	}

	var err error
	if t.Kind, err = models.ParseKind(kind); err != nil {
		return t, err
	}
	if t.At, err = parseTime(at); err != nil {
		return t, err
	}
	if t.End, err = parseTime(endAt); err != nil {
		return t, err
	}
	t.CreatedAt = createdAt.Time
	return t, nil
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateTask stores a new task and returns it as read back from the database
func (db *DB) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	result, err := db.ExecContext(ctx, `
		INSERT INTO tasks (kind, description, done, at, end_at) VALUES (?, ?, ?, ?, ?)
	`, task.Kind.String(), task.Description, task.Done, formatTime(task.At), formatTime(task.End))
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetTask(ctx, id)
}

// GetTask retrieves a task by ID
func (db *DB) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	t, err := scanTask(db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasks returns all tasks in the order they were added
func (db *DB) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := db.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// TaskAt returns the task shown at the 1-based position of ListTasks
func (db *DB) TaskAt(ctx context.Context, position int) (*models.Task, error) {
	if position < 1 {
		return nil, ErrTaskNotFound
	}
	t, err := scanTask(db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks ORDER BY id ASC LIMIT 1 OFFSET ?", position-1))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListScheduledBetween returns the deadlines and events that may touch
// [start, end): everything starting before end that either starts or ends
// at or after start. Malformed spans that start inside the range are
// returned too, so callers get to reject them.
func (db *DB) ListScheduledBetween(ctx context.Context, start, end time.Time) ([]models.Task, error) {
	from, to := start.Format(timeLayout), end.Format(timeLayout)
	rows, err := db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE kind IN ('deadline', 'event')
		  AND at IS NOT NULL
		  AND at < ?
		  AND (at >= ? OR end_at >= ?)
		ORDER BY at ASC, id ASC
	`, to, from, from)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// FindTasks returns tasks whose description contains query, ignoring case
// and diacritics
func (db *DB) FindTasks(ctx context.Context, query string) ([]models.Task, error) {
	tasks, err := db.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	matcher := search.New(language.Und, search.IgnoreCase, search.IgnoreDiacritics)
	pattern := matcher.CompileString(query)

	var matches []models.Task
	for _, t := range tasks {
		if start, _ := pattern.IndexString(t.Description); start >= 0 {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

// MarkTaskDone flags a task as completed
func (db *DB) MarkTaskDone(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, "UPDATE tasks SET done = 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// DeleteTask deletes a task
func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// TaskCount returns the number of tasks
func (db *DB) TaskCount(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks").Scan(&count)
	return count, err
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
