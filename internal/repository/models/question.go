package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// Question maps the questions table. The step2_questions table carries the
// same columns plus the Step-2 extension columns; Step2Question embeds this
// struct for that case.
type Question struct {
	ID          string         `db:"id"`
	Topic       string         `db:"topic"`
	Subtopic    sql.NullString `db:"subtopic"`
	Question    string         `db:"question"`
	Choices     StringSlice    `db:"choices"`
	Answer      string         `db:"answer"`
	Explanation string         `db:"explanation"`
	Source      string         `db:"source"`
	Embedding   sql.NullString `db:"embedding"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (Question) TableName() string {
	return "questions"
}

// Step2Question maps the step2_questions table.
type Step2Question struct {
	Question
	BaseQuestion     string `db:"base_question"`
	PatientDetails   string `db:"patient_details"` // JSON text
	ComposedQuestion string `db:"composed_question"`
	ShelfSubject     string `db:"shelf_subject"`
}

func (Step2Question) TableName() string {
	return "step2_questions"
}
