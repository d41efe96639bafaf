package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"medprep/internal/domain"
	"medprep/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

func tableFor(examType domain.ExamType) string {
	if examType == domain.ExamTypeStep2 {
		return models.Step2Question{}.TableName()
	}
	return models.Question{}.TableName()
}

const commonColumns = `id, topic, subtopic, question, choices, answer, explanation, source, embedding, created_at`
const step2Columns = commonColumns + `, base_question, patient_details, composed_question, shelf_subject`

// whereClause builds the filter predicate and its positional arguments.
func whereClause(filter domain.ListFilter) (string, []interface{}) {
	where := "WHERE topic = $1"
	args := []interface{}{filter.Topic}
	if filter.Subtopic != "" {
		args = append(args, filter.Subtopic)
		where += " AND subtopic = $" + strconv.Itoa(len(args))
	}
	return where, args
}

// List implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Question, error) {
	where, args := whereClause(filter)
	args = append(args, filter.Limit, filter.Offset)
	paging := fmt.Sprintf("ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	if filter.ExamType == domain.ExamTypeStep2 {
		var modelQuestions []*models.Step2Question
		query := fmt.Sprintf("SELECT %s FROM %s %s %s", step2Columns, tableFor(filter.ExamType), where, paging)
		if err := a.db.SelectContext(ctx, &modelQuestions, query, args...); err != nil {
			return nil, fmt.Errorf("failed to list step2 questions: %w", err)
		}
		out := make([]*domain.Question, 0, len(modelQuestions))
		for _, m := range modelQuestions {
			q, err := toDomainStep2Question(m)
			if err != nil {
				return nil, err
			}
			out = append(out, q)
		}
		return out, nil
	}

	var modelQuestions []*models.Question
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", commonColumns, tableFor(filter.ExamType), where, paging)
	if err := a.db.SelectContext(ctx, &modelQuestions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	out := make([]*domain.Question, 0, len(modelQuestions))
	for _, m := range modelQuestions {
		q, err := toDomainQuestion(m)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// Count implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) Count(ctx context.Context, filter domain.ListFilter) (int, error) {
	where, args := whereClause(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", tableFor(filter.ExamType), where)

	var count int
	if err := a.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// GetByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetByID(ctx context.Context, examType domain.ExamType, id string) (*domain.Question, error) {
	if examType == domain.ExamTypeStep2 {
		var m models.Step2Question
		query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", step2Columns, tableFor(examType))
		if err := a.db.GetContext(ctx, &m, query, id); err != nil {
			if err == sql.ErrNoRows {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to get step2 question by ID %s: %w", id, err)
		}
		return toDomainStep2Question(&m)
	}

	var m models.Question
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", commonColumns, tableFor(examType))
	if err := a.db.GetContext(ctx, &m, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}
	return toDomainQuestion(&m)
}

// Create implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) Create(ctx context.Context, q *domain.Question) error {
	if q == nil {
		return fmt.Errorf("cannot create nil question")
	}

	if q.ExamType == domain.ExamTypeStep2 {
		m, err := toModelStep2Question(q)
		if err != nil {
			return err
		}
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			tableFor(q.ExamType), step2Columns)
		if _, err := a.db.ExecContext(ctx, query,
			m.ID, m.Topic, m.Subtopic, m.Question.Question, m.Choices, m.Answer, m.Explanation,
			m.Source, m.Embedding, m.CreatedAt,
			m.BaseQuestion, m.PatientDetails, m.ComposedQuestion, m.ShelfSubject,
		); err != nil {
			return fmt.Errorf("failed to create step2 question: %w", err)
		}
		return nil
	}

	m := toModelQuestion(q)
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tableFor(q.ExamType), commonColumns)
	if _, err := a.db.ExecContext(ctx, query,
		m.ID, m.Topic, m.Subtopic, m.Question, m.Choices, m.Answer, m.Explanation,
		m.Source, m.Embedding, m.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// Helper functions for model conversion

func toDomainQuestion(m *models.Question) (*domain.Question, error) {
	if m == nil {
		return nil, fmt.Errorf("cannot convert nil models.Question to domain.Question")
	}
	q := &domain.Question{
		ID:          m.ID,
		ExamType:    domain.ExamTypeStep1,
		Topic:       m.Topic,
		Subtopic:    m.Subtopic.String,
		Question:    m.Question,
		Choices:     []string(m.Choices),
		Answer:      m.Answer,
		Explanation: m.Explanation,
		Source:      m.Source,
		CreatedAt:   m.CreatedAt,
	}
	if m.Embedding.Valid && m.Embedding.String != "" {
		if err := json.Unmarshal([]byte(m.Embedding.String), &q.Embedding); err != nil {
			return nil, fmt.Errorf("failed to decode embedding for question %s: %w", m.ID, err)
		}
	}
	return q, nil
}

func toDomainStep2Question(m *models.Step2Question) (*domain.Question, error) {
	q, err := toDomainQuestion(&m.Question)
	if err != nil {
		return nil, err
	}
	q.ExamType = domain.ExamTypeStep2
	details := &domain.Step2Details{
		BaseQuestion:     m.BaseQuestion,
		ComposedQuestion: m.ComposedQuestion,
		ShelfSubject:     m.ShelfSubject,
	}
	if m.PatientDetails != "" {
		if err := json.Unmarshal([]byte(m.PatientDetails), &details.Patient); err != nil {
			return nil, fmt.Errorf("failed to decode patient details for question %s: %w", m.ID, err)
		}
	}
	q.Step2 = details
	return q, nil
}

func toModelQuestion(d *domain.Question) *models.Question {
	m := &models.Question{
		ID:          d.ID,
		Topic:       d.Topic,
		Question:    d.Question,
		Choices:     models.StringSlice(d.Choices),
		Answer:      d.Answer,
		Explanation: d.Explanation,
		Source:      d.Source,
		CreatedAt:   d.CreatedAt,
	}
	if d.Subtopic != "" {
		m.Subtopic = sql.NullString{String: d.Subtopic, Valid: true}
	}
	if len(d.Embedding) > 0 {
		if data, err := json.Marshal(d.Embedding); err == nil {
			m.Embedding = sql.NullString{String: string(data), Valid: true}
		}
	}
	return m
}

func toModelStep2Question(d *domain.Question) (*models.Step2Question, error) {
	if d.Step2 == nil {
		return nil, fmt.Errorf("step2 question %s has no step2 details", d.ID)
	}
	patient, err := json.Marshal(d.Step2.Patient)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patient details: %w", err)
	}
	return &models.Step2Question{
		Question:         *toModelQuestion(d),
		BaseQuestion:     d.Step2.BaseQuestion,
		PatientDetails:   string(patient),
		ComposedQuestion: d.Step2.ComposedQuestion,
		ShelfSubject:     d.Step2.ShelfSubject,
	}, nil
}
