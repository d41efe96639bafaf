package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"medprep/internal/cache"
	"medprep/internal/domain"
	"medprep/internal/dto"
	"medprep/internal/logger"
	"medprep/internal/util"
	"medprep/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// comparisonPoolSize is how many questions are fetched before shuffling a
// comparison pair out of them.
const comparisonPoolSize = 20

// QuestionService defines the interface for question-related operations
type QuestionService interface {
	// GetQuestions validates the raw request parameters, queries the page and
	// the total count, and returns the response envelope. Zero matches is a
	// successful empty page, not an error.
	GetQuestions(ctx context.Context, req dto.ListQuestionsRequest) (*dto.QuestionListResponse, error)

	// CreateQuestion validates and persists a new question. The
	// answer-must-equal-a-choice contract is enforced here, at ingestion.
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)

	// FetchCategory loads up to limit questions for one topic, bypassing the
	// page cache. Session flows use this.
	FetchCategory(ctx context.Context, examType domain.ExamType, topic string, limit int) ([]*domain.Question, error)

	// FetchPair returns two distinct questions from the topic, or a
	// descriptive error when fewer than two are available.
	FetchPair(ctx context.Context, topic string) (*domain.Question, *domain.Question, error)
}

// questionService implements QuestionService
type questionService struct {
	repo      domain.QuestionRepository
	cache     domain.Cache // nil disables page caching
	validator *validation.Validator
	pageTTL   time.Duration
}

// NewQuestionService creates a new instance of questionService
func NewQuestionService(repo domain.QuestionRepository, pageCache domain.Cache, pageTTL time.Duration) QuestionService {
	return &questionService{
		repo:      repo,
		cache:     pageCache,
		validator: validation.NewValidator(),
		pageTTL:   pageTTL,
	}
}

func pageCacheKey(filter domain.ListFilter) string {
	return cache.GenerateCacheKey("questions", "page", string(filter.ExamType),
		filter.Topic, filter.Subtopic, strconv.Itoa(filter.Limit), strconv.Itoa(filter.Offset))
}

// GetQuestions implements QuestionService
func (s *questionService) GetQuestions(ctx context.Context, req dto.ListQuestionsRequest) (*dto.QuestionListResponse, error) {
	filter, validationErrs := s.validator.ValidateListParams(req)
	if len(validationErrs) > 0 {
		return nil, validationErrs
	}

	// The cached envelope never carries the exam-type echo; it is applied
	// per request below, so both list endpoints can share one page entry.
	cacheKey := pageCacheKey(filter)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var resp dto.QuestionListResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				if req.ExamType != "" {
					resp.ExamType = string(filter.ExamType)
				}
				return &resp, nil
			}
			logger.Get().Warn("Discarding undecodable cached question page", zap.String("key", cacheKey))
		} else if err != domain.ErrCacheMiss {
			logger.Get().Warn("Question page cache read failed", zap.Error(err), zap.String("key", cacheKey))
		}
	}

	// The page and the total count are fetched in parallel. They are not
	// transactionally consistent; the count may drift from the page under
	// concurrent writes, which is acceptable for this read-mostly workload.
	var (
		questions []*domain.Question
		count     int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.repo.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewStorageError("failed to query questions", err)
	}

	data := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		data = append(data, ToQuestionResponse(q))
	}

	message := "Questions retrieved successfully"
	if len(data) == 0 {
		message = "No questions matched the requested filters"
	}

	resp := &dto.QuestionListResponse{
		Success:  true,
		Data:     data,
		Count:    count,
		Topic:    filter.Topic,
		Subtopic: filter.Subtopic,
		Message:  message,
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(encoded), s.pageTTL); err != nil {
				logger.Get().Warn("Question page cache write failed", zap.Error(err), zap.String("key", cacheKey))
			}
		}
	}

	if req.ExamType != "" {
		resp.ExamType = string(filter.ExamType)
	}

	return resp, nil
}

// CreateQuestion implements QuestionService
func (s *questionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	validationErrs := s.validator.ValidateCreateQuestion(req)

	examType := domain.ExamTypeStep1
	if req.ExamType != "" {
		if parsed, ok := domain.ParseExamType(req.ExamType); ok {
			examType = parsed
		}
	}

	q := &domain.Question{
		ID:          util.NewULID(),
		ExamType:    examType,
		Topic:       req.Topic,
		Subtopic:    req.Subtopic,
		Question:    req.Question,
		Choices:     req.Choices,
		Answer:      req.Answer,
		Explanation: req.Explanation,
		Source:      req.Source,
		CreatedAt:   time.Now(),
	}
	if req.Step2 != nil {
		q.Step2 = &domain.Step2Details{
			BaseQuestion: req.Step2.BaseQuestion,
			Patient: domain.PatientDetails{
				Age:         req.Step2.Patient.Age,
				Sex:         req.Step2.Patient.Sex,
				Setting:     req.Step2.Patient.Setting,
				ChiefReport: req.Step2.Patient.ChiefReport,
				History:     req.Step2.Patient.History,
				Vitals:      req.Step2.Patient.Vitals,
			},
			ComposedQuestion: req.Step2.ComposedQuestion,
			ShelfSubject:     req.Step2.ShelfSubject,
		}
	}

	if err := q.Validate(); err != nil {
		if structural, ok := err.(domain.ValidationErrors); ok {
			validationErrs = append(validationErrs, structural...)
		} else {
			return nil, err
		}
	}
	if len(validationErrs) > 0 {
		return nil, validationErrs
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, domain.NewStorageError("failed to store question", err)
	}

	resp := ToQuestionResponse(q)
	return &resp, nil
}

// FetchCategory implements QuestionService
func (s *questionService) FetchCategory(ctx context.Context, examType domain.ExamType, topic string, limit int) ([]*domain.Question, error) {
	var errs domain.ValidationErrors
	_, errs = s.validator.ValidateListParams(dto.ListQuestionsRequest{Topic: topic})
	if len(errs) > 0 {
		return nil, errs
	}

	questions, err := s.repo.List(ctx, domain.ListFilter{
		ExamType: examType,
		Topic:    topic,
		Limit:    limit,
	})
	if err != nil {
		return nil, domain.NewStorageError("failed to query questions", err)
	}
	return questions, nil
}

// FetchPair implements QuestionService
func (s *questionService) FetchPair(ctx context.Context, topic string) (*domain.Question, *domain.Question, error) {
	pool, err := s.FetchCategory(ctx, domain.ExamTypeStep1, topic, comparisonPoolSize)
	if err != nil {
		return nil, nil, err
	}
	if len(pool) < 2 {
		return nil, nil, domain.NewNotFoundError(
			"category " + topic + " has fewer than two questions available for comparison")
	}

	// No guarantee of no-repeat across consecutive pairs.
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[0], pool[1], nil
}

// ToQuestionResponse maps a domain question onto its wire shape.
func ToQuestionResponse(q *domain.Question) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:          q.ID,
		ExamType:    string(q.ExamType),
		Topic:       q.Topic,
		Subtopic:    q.Subtopic,
		Question:    q.Question,
		Choices:     q.Choices,
		Answer:      q.Answer,
		Explanation: q.Explanation,
		Source:      q.Source,
		CreatedAt:   q.CreatedAt,
	}
	if q.ExamType == domain.ExamTypeStep2 && q.Step2 != nil {
		resp.Step2 = &dto.Step2DetailsDTO{
			BaseQuestion: q.Step2.BaseQuestion,
			Patient: dto.PatientDetailsDTO{
				Age:         q.Step2.Patient.Age,
				Sex:         q.Step2.Patient.Sex,
				Setting:     q.Step2.Patient.Setting,
				ChiefReport: q.Step2.Patient.ChiefReport,
				History:     q.Step2.Patient.History,
				Vitals:      q.Step2.Patient.Vitals,
			},
			ComposedQuestion: q.Step2.ComposedQuestion,
			ShelfSubject:     q.Step2.ShelfSubject,
		}
	}
	return resp
}
