package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"medprep/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func questionRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "topic", "subtopic", "question", "choices", "answer",
		"explanation", "source", "embedding", "created_at",
	})
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range ids {
		rows.AddRow(id, "Cardiology", "Arrhythmias", "Which drug?",
			`["Amiodarone","Metoprolol"]`, "Amiodarone", "Because.", "First Aid",
			nil, created.Add(-time.Duration(i)*time.Hour))
	}
	return rows
}

func TestList_TopicOnly(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, topic, subtopic, question, choices, answer, explanation, source, embedding, created_at FROM questions WHERE topic = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
	)).WithArgs("Cardiology", 50, 0).
		WillReturnRows(questionRows("q1", "q2"))

	questions, err := adapter.List(context.Background(), domain.ListFilter{
		ExamType: domain.ExamTypeStep1,
		Topic:    "Cardiology",
		Limit:    50,
	})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, domain.ExamTypeStep1, questions[0].ExamType)
	assert.Nil(t, questions[0].Step2)
	assert.Equal(t, []string{"Amiodarone", "Metoprolol"}, questions[0].Choices)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_WithSubtopic(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, topic, subtopic, question, choices, answer, explanation, source, embedding, created_at FROM questions WHERE topic = $1 AND subtopic = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4",
	)).WithArgs("Cardiology", "Arrhythmias", 10, 5).
		WillReturnRows(questionRows("q3"))

	questions, err := adapter.List(context.Background(), domain.ListFilter{
		ExamType: domain.ExamTypeStep1,
		Topic:    "Cardiology",
		Subtopic: "Arrhythmias",
		Limit:    10,
		Offset:   5,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyResultIsNotAnError(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery("SELECT .* FROM questions").
		WillReturnRows(questionRows())

	questions, err := adapter.List(context.Background(), domain.ListFilter{
		ExamType: domain.ExamTypeStep1,
		Topic:    "Dermatology",
		Limit:    50,
	})
	require.NoError(t, err)
	assert.NotNil(t, questions)
	assert.Empty(t, questions)
}

func TestList_Step2Table(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewQuestionDatabaseAdapter(db)

	rows := sqlmock.NewRows([]string{
		"id", "topic", "subtopic", "question", "choices", "answer",
		"explanation", "source", "embedding", "created_at",
		"base_question", "patient_details", "composed_question", "shelf_subject",
	}).AddRow("s2q1", "Cardiology", nil, "composed?", `["A","B"]`, "A",
		"Because.", "UWorld", nil, time.Now(),
		"base fragment", `{"age":54,"sex":"male","setting":"ED","chief_report":"chest pain","history":"","vitals":""}`,
		"A 54-year-old man presents...", "Internal Medicine")

	mock.ExpectQuery(regexp.QuoteMeta("FROM step2_questions WHERE topic = $1")).
		WithArgs("Cardiology", 50, 0).
		WillReturnRows(rows)

	questions, err := adapter.List(context.Background(), domain.ListFilter{
		ExamType: domain.ExamTypeStep2,
		Topic:    "Cardiology",
		Limit:    50,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)
	q := questions[0]
	assert.Equal(t, domain.ExamTypeStep2, q.ExamType)
	require.NotNil(t, q.Step2)
	assert.Equal(t, "base fragment", q.Step2.BaseQuestion)
	assert.Equal(t, 54, q.Step2.Patient.Age)
	assert.Equal(t, "Internal Medicine", q.Step2.ShelfSubject)
}

func TestCount(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM questions WHERE topic = $1")).
		WithArgs("Cardiology").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	count, err := adapter.Count(context.Background(), domain.ListFilter{
		ExamType: domain.ExamTypeStep1,
		Topic:    "Cardiology",
		Limit:    5,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestGetByID_NotFoundReturnsNilNil(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewQuestionDatabaseAdapter(db)

	mock.ExpectQuery("SELECT .* FROM questions WHERE id = ").
		WithArgs("missing").
		WillReturnRows(questionRows())

	q, err := adapter.GetByID(context.Background(), domain.ExamTypeStep1, "missing")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestCreate(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewQuestionDatabaseAdapter(db)

	q := domain.NewQuestion("Cardiology", "Heart Failure", "Which drug improves survival?",
		[]string{"Furosemide", "Carvedilol"}, "Carvedilol", "Beta blockade.", "First Aid")
	q.ID = "01HTESTULID000000000000000"

	mock.ExpectExec("INSERT INTO questions").
		WithArgs(q.ID, q.Topic, sqlmock.AnyArg(), q.Question, sqlmock.AnyArg(),
			q.Answer, q.Explanation, q.Source, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.Create(context.Background(), q))
	assert.NoError(t, mock.ExpectationsWereMet())
}
