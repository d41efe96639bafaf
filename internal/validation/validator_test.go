package validation

import (
	"testing"

	"medprep/internal/domain"
	"medprep/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateListParams_Defaults(t *testing.T) {
	v := NewValidator()

	filter, errs := v.ValidateListParams(dto.ListQuestionsRequest{Topic: "Cardiology"})
	assert.Empty(t, errs)
	assert.Equal(t, "Cardiology", filter.Topic)
	assert.Equal(t, domain.ExamTypeStep1, filter.ExamType)
	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
}

func TestValidateListParams_MissingTopic(t *testing.T) {
	v := NewValidator()

	_, errs := v.ValidateListParams(dto.ListQuestionsRequest{})
	assert.Len(t, errs, 1)
	assert.Equal(t, "topic", errs[0].Field)
}

func TestValidateListParams_UnknownTopic(t *testing.T) {
	v := NewValidator()

	_, errs := v.ValidateListParams(dto.ListQuestionsRequest{Topic: "Astrology"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "topic", errs[0].Field)
}

func TestValidateListParams_SubtopicNotUnderTopic(t *testing.T) {
	v := NewValidator()

	_, errs := v.ValidateListParams(dto.ListQuestionsRequest{Topic: "Cardiology", Subtopic: "Stroke"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "subtopic", errs[0].Field)
}

func TestValidateListParams_LimitRange(t *testing.T) {
	v := NewValidator()

	for _, limit := range []string{"0", "-3", "101", "500"} {
		_, errs := v.ValidateListParams(dto.ListQuestionsRequest{Topic: "Cardiology", Limit: limit})
		assert.Len(t, errs, 1, "limit %s must fail, not clamp", limit)
		assert.Equal(t, "limit", errs[0].Field)
	}

	filter, errs := v.ValidateListParams(dto.ListQuestionsRequest{Topic: "Cardiology", Limit: "100"})
	assert.Empty(t, errs)
	assert.Equal(t, 100, filter.Limit)
}

func TestValidateListParams_BadNumbers(t *testing.T) {
	v := NewValidator()

	_, errs := v.ValidateListParams(dto.ListQuestionsRequest{Topic: "Cardiology", Limit: "abc", Offset: "-1"})
	assert.Len(t, errs, 2, "all violations are reported together")

	fields := []string{errs[0].Field, errs[1].Field}
	assert.Contains(t, fields, "limit")
	assert.Contains(t, fields, "offset")
}

func TestValidateListParams_ExamType(t *testing.T) {
	v := NewValidator()

	filter, errs := v.ValidateListParams(dto.ListQuestionsRequest{Topic: "Cardiology", ExamType: "step2"})
	assert.Empty(t, errs)
	assert.Equal(t, domain.ExamTypeStep2, filter.ExamType)

	_, errs = v.ValidateListParams(dto.ListQuestionsRequest{Topic: "Cardiology", ExamType: "step3"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "exam_type", errs[0].Field)
}

func TestValidateListParams_CollectsEveryViolation(t *testing.T) {
	v := NewValidator()

	_, errs := v.ValidateListParams(dto.ListQuestionsRequest{
		Topic:    "Astrology",
		ExamType: "step9",
		Limit:    "0",
		Offset:   "x",
	})
	assert.Len(t, errs, 4)
}

func TestValidateCreateQuestion(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateCreateQuestion(&dto.CreateQuestionRequest{Topic: "Cardiology", Subtopic: "Arrhythmias"})
	assert.Empty(t, errs)

	errs = v.ValidateCreateQuestion(&dto.CreateQuestionRequest{Topic: "Cardiology", Subtopic: "Stroke"})
	assert.Len(t, errs, 1)

	errs = v.ValidateCreateQuestion(&dto.CreateQuestionRequest{Topic: "", ExamType: "step9"})
	assert.Len(t, errs, 2)
}
