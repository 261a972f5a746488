package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/madrasa-lms/madrasa/internal/dto"
	"github.com/madrasa-lms/madrasa/internal/model"
	"github.com/madrasa-lms/madrasa/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttemptService owns the attempt lifecycle: lazy creation on first visit,
// exactly one grading event on submit, and the post-completion review gate.
type AttemptService interface {
	StartOrResume(userID, testID uint) (*dto.AttemptViewDTO, error)
	Submit(userID, testID uint, req dto.AttemptSubmitDTO) (*dto.AttemptResultDTO, error)
	Review(userID, attemptID uint) (*dto.AttemptReviewDTO, error)
}

type attemptService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
}

func NewAttemptService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
) AttemptService {
	return &attemptService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
	}
}

// StartOrResume fetches the user's attempt for the test, creating it on first
// visit. Safe to call repeatedly: a completed attempt is returned as a result
// view and is never re-scored.
func (s *attemptService) StartOrResume(userID, testID uint) (*dto.AttemptViewDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("test not found")
		}
		return nil, err
	}

	attempt, err := s.getOrCreateAttempt(userID, testID)
	if err != nil {
		return nil, err
	}

	view := &dto.AttemptViewDTO{
		AttemptID: attempt.ID,
		TestID:    test.ID,
		TestTitle: test.Title,
		TimeLimit: test.TimeLimit,
		TimeUnit:  string(test.TimeUnit),
		Completed: attempt.Completed,
	}

	if attempt.Completed {
		view.Result = resultDTO(attempt, test, len(test.Questions))
		return view, nil
	}

	view.Questions = make([]dto.QuestionViewDTO, 0, len(test.Questions))
	for _, q := range test.Questions {
		view.Questions = append(view.Questions, dto.QuestionViewDTO{
			ID:      q.ID,
			Text:    q.Text,
			Image:   q.Image,
			Choices: q.ChoiceList(),
		})
	}
	return view, nil
}

// getOrCreateAttempt resolves the single Attempt row for (user, test). A lost
// insert race is detected via the unique constraint and resolved by
// re-fetching the winner's row.
func (s *attemptService) getOrCreateAttempt(userID, testID uint) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.FindByUserAndTest(userID, testID)
	if err == nil {
		return attempt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &model.Attempt{UserID: userID, TestID: testID}
	if createErr := s.attemptRepo.Create(fresh); createErr != nil {
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			log.Info().Uint("userID", userID).Uint("testID", testID).Msg("Attempt insert lost a get-or-create race, re-fetching")
			return s.attemptRepo.FindByUserAndTest(userID, testID)
		}
		// Some drivers do not translate the constraint violation. If a row
		// exists now, it was created concurrently and is the one we want.
		if existing, fetchErr := s.attemptRepo.FindByUserAndTest(userID, testID); fetchErr == nil {
			return existing, nil
		}
		return nil, createErr
	}
	return s.attemptRepo.FindByUserAndTest(userID, testID)
}

// Submit grades the attempt. Each question's raw token is parsed as its
// 1-based choice index, anything unparsable or absent counting as 0 (always
// wrong). The result is persisted in a single conditional update; a second
// submission, concurrent or not, gets a conflict instead of a re-score.
func (s *attemptService) Submit(userID, testID uint, req dto.AttemptSubmitDTO) (*dto.AttemptResultDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("test not found")
		}
		return nil, err
	}

	attempt, err := s.getOrCreateAttempt(userID, testID)
	if err != nil {
		return nil, err
	}
	if attempt.Completed {
		return nil, apperror.Conflict("attempt already completed")
	}

	score, answers := gradeAnswers(test.Questions, req.Answers)
	reviewEnabled := !test.PreventReview
	completedAt := time.Now()

	won, err := s.attemptRepo.Finalize(attempt.ID, score, answers, reviewEnabled, completedAt)
	if err != nil {
		return nil, err
	}
	if !won {
		log.Warn().Uint("attemptID", attempt.ID).Msg("Submit lost a double-submit race, attempt already finalized")
		return nil, apperror.Conflict("attempt already completed")
	}

	log.Info().
		Uint("userID", userID).
		Uint("testID", testID).
		Uint("attemptID", attempt.ID).
		Int("score", score).
		Int("questions", len(test.Questions)).
		Msg("Attempt completed")

	attempt.Score = score
	attempt.Completed = true
	attempt.CompletedAt = &completedAt
	attempt.Answers = datatypes.NewJSONType(answers)
	attempt.ReviewEnabled = reviewEnabled
	attempt.Test = *test

	return resultDTO(attempt, test, len(test.Questions)), nil
}

// gradeAnswers scores one raw submission against the question set. Every
// question gets an entry in the returned map so the review view can show
// unanswered questions explicitly.
func gradeAnswers(questions []model.Question, raw map[string]string) (int, model.AnswerMap) {
	score := 0
	answers := make(model.AnswerMap, len(questions))
	for _, q := range questions {
		key := strconv.FormatUint(uint64(q.ID), 10)
		chosen := parseAnswerToken(raw[key])
		answers[key] = chosen
		if chosen == q.CorrectAnswer {
			score++
		}
	}
	return score, answers
}

// parseAnswerToken normalizes a raw form token to a choice index. Anything
// that is not a positive integer becomes 0, the "no answer" sentinel.
func parseAnswerToken(token string) int {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Review discloses correct answers for a completed attempt, subject to the
// review gate. The per-attempt ReviewEnabled flag is frozen at submission
// time; an admin may flip it later to override the test-level policy.
func (s *attemptService) Review(userID, attemptID uint) (*dto.AttemptReviewDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("attempt not found")
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, apperror.NotFound("attempt not found")
	}
	if !attempt.Completed {
		return nil, apperror.Conflict("attempt not completed yet")
	}
	if !attempt.ReviewAllowed() {
		return nil, apperror.Forbidden("review is not allowed for this test")
	}

	questions, err := s.questionRepo.FindByTestID(attempt.TestID)
	if err != nil {
		return nil, err
	}

	answers := attempt.Answers.Data()
	review := &dto.AttemptReviewDTO{
		AttemptID:   attempt.ID,
		TestID:      attempt.TestID,
		TestTitle:   attempt.Test.Title,
		Score:       attempt.Score,
		CompletedAt: attempt.CompletedAt,
		Questions:   make([]dto.QuestionReviewDTO, 0, len(questions)),
	}
	for _, q := range questions {
		chosen := answers[strconv.FormatUint(uint64(q.ID), 10)]
		review.Questions = append(review.Questions, dto.QuestionReviewDTO{
			ID:            q.ID,
			Text:          q.Text,
			Image:         q.Image,
			Choices:       q.ChoiceList(),
			CorrectAnswer: q.CorrectAnswer,
			YourAnswer:    chosen,
			Correct:       chosen == q.CorrectAnswer,
		})
	}
	return review, nil
}

func resultDTO(attempt *model.Attempt, test *model.Test, totalQuestions int) *dto.AttemptResultDTO {
	return &dto.AttemptResultDTO{
		AttemptID:      attempt.ID,
		TestID:         test.ID,
		TestTitle:      test.Title,
		Score:          attempt.Score,
		TotalQuestions: totalQuestions,
		Answers:        attempt.Answers.Data(),
		CompletedAt:    attempt.CompletedAt,
		ReviewAllowed:  attempt.ReviewAllowed(),
	}
}
