package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sgoyal/qbank-go/internal/models"
)

// QuestionFilter narrows down ListQuestions results. Zero values mean "no filter".
type QuestionFilter struct {
	FileID     string
	Type       string
	Difficulty string
	Topic      string // partial, case-insensitive match
}

// QuestionUpdate holds the editable fields of a question. Nil pointers are
// left unchanged, mirroring a PUT with partial payload.
type QuestionUpdate struct {
	Question      *string                  `json:"question"`
	Options       *[]models.QuestionOption `json:"options"`
	CorrectAnswer *string                  `json:"correct_answer"`
	Explanation   *string                  `json:"explanation"`
	Difficulty    *string                  `json:"difficulty"`
	Topic         *string                  `json:"topic"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u QuestionUpdate) IsEmpty() bool {
	return u.Question == nil && u.Options == nil && u.CorrectAnswer == nil &&
		u.Explanation == nil && u.Difficulty == nil && u.Topic == nil
}

func marshalOptions(opts []models.QuestionOption) (sql.NullString, error) {
	if len(opts) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// SaveQuestions persists a batch of reviewed questions for a file and
// returns their new IDs.
func (s *Store) SaveQuestions(fileID string, questions []models.Question) ([]int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	ids := make([]int64, 0, len(questions))
	for _, q := range questions {
		opts, err := marshalOptions(q.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}
		res, err := tx.Exec(
			`INSERT INTO questions (file_id, type, question, options, correct_answer, explanation, difficulty, topic, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			fileID, q.Type, q.Question, opts, q.CorrectAnswer, q.Explanation, q.Difficulty, q.Topic, now, now)
		if err != nil {
			return nil, err
		}
		id, _ := res.LastInsertId()
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

func scanQuestion(row interface{ Scan(...any) error }) (*models.Question, error) {
	var q models.Question
	var opts, explanation, difficulty, topic sql.NullString
	err := row.Scan(&q.ID, &q.FileID, &q.Type, &q.Question, &opts,
		&q.CorrectAnswer, &explanation, &difficulty, &topic, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if opts.Valid {
		if err := json.Unmarshal([]byte(opts.String), &q.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options for question %d: %w", q.ID, err)
		}
	}
	q.Explanation = explanation.String
	q.Difficulty = difficulty.String
	q.Topic = topic.String
	return &q, nil
}

const questionColumns = "id, file_id, type, question, options, correct_answer, explanation, difficulty, topic, created_at, updated_at"

// ListQuestions returns stored questions with optional filters and
// skip/limit pagination.
func (s *Store) ListQuestions(skip, limit int, filter QuestionFilter) ([]*models.Question, error) {
	query := "SELECT " + questionColumns + " FROM questions"
	var clauses []string
	var args []any
	if filter.FileID != "" {
		clauses = append(clauses, "file_id = ?")
		args = append(args, filter.FileID)
	}
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.Difficulty != "" {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, filter.Difficulty)
	}
	if filter.Topic != "" {
		clauses = append(clauses, "topic LIKE ? COLLATE NOCASE")
		args = append(args, "%"+filter.Topic+"%")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetQuestionByID fetches a single stored question.
func (s *Store) GetQuestionByID(id int64) (*models.Question, error) {
	row := s.db.QueryRow("SELECT "+questionColumns+" FROM questions WHERE id = ?", id)
	return scanQuestion(row)
}

// UpdateQuestion applies a partial update. It returns sql.ErrNoRows when the
// question does not exist.
func (s *Store) UpdateQuestion(id int64, upd QuestionUpdate) error {
	var sets []string
	var args []any
	if upd.Question != nil {
		sets = append(sets, "question = ?")
		args = append(args, *upd.Question)
	}
	if upd.Options != nil {
		opts, err := marshalOptions(*upd.Options)
		if err != nil {
			return fmt.Errorf("failed to encode options: %w", err)
		}
		sets = append(sets, "options = ?")
		args = append(args, opts)
	}
	if upd.CorrectAnswer != nil {
		sets = append(sets, "correct_answer = ?")
		args = append(args, *upd.CorrectAnswer)
	}
	if upd.Explanation != nil {
		sets = append(sets, "explanation = ?")
		args = append(args, *upd.Explanation)
	}
	if upd.Difficulty != nil {
		sets = append(sets, "difficulty = ?")
		args = append(args, *upd.Difficulty)
	}
	if upd.Topic != nil {
		sets = append(sets, "topic = ?")
		args = append(args, *upd.Topic)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	res, err := s.db.Exec("UPDATE questions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteQuestion removes a single question.
func (s *Store) DeleteQuestion(id int64) error {
	res, err := s.db.Exec("DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
