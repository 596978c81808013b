package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"collabhub-be/internal/config"
	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/pkg/logger"
	"collabhub-be/internal/repository/memory"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/activity"
	"collabhub-be/pkg/gamification"
	"collabhub-be/pkg/metrics"

	"github.com/google/uuid"
)

// quizMix is how many questions of each difficulty a quiz draws from the bank.
var quizMix = []struct {
	difficulty entity.Difficulty
	count      int
}{
	{entity.DifficultyBasic, 2},
	{entity.DifficultyIntermediate, 2},
	{entity.DifficultyAdvanced, 1},
}

type IQuizService interface {
	Generate(ctx context.Context, userId uuid.UUID, skill string) (*dto.QuizResponse, error)
	Submit(ctx context.Context, userId, quizId uuid.UUID, answers []int) (*dto.QuizResultResponse, error)
}

type quizService struct {
	uowFactory unitofwork.RepositoryFactory
	store      *memory.QuizStore
	rewards    *rewarder
	activity   activity.Publisher
	logger     logger.ILogger
	rules      config.Rules
	shuffle    func(n int, swap func(i, j int))
}

func NewQuizService(
	uowFactory unitofwork.RepositoryFactory,
	store *memory.QuizStore,
	ledger gamification.Awarder,
	publisher activity.Publisher,
	m *metrics.Manager,
	log logger.ILogger,
	rules config.Rules,
) IQuizService {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &quizService{
		uowFactory: uowFactory,
		store:      store,
		rewards: &rewarder{
			uowFactory: uowFactory,
			ledger:     ledger,
			activity:   publisher,
			metrics:    m,
			logger:     log,
		},
		activity: publisher,
		logger:   log,
		rules:    rules,
		shuffle:  rng.Shuffle,
	}
}

// Generate draws a fresh quiz for skill. The answer key stays in the quiz
// store; the response only carries the questions.
func (s *quizService) Generate(ctx context.Context, userId uuid.UUID, skill string) (*dto.QuizResponse, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, apperror.InvalidArgument("skill is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	bank, err := uow.QuestionRepository().FindAll(ctx, specification.QuestionsForSkill{Skill: skill})
	if err != nil {
		return nil, err
	}
	if len(bank) == 0 {
		return nil, apperror.NotFound("no quiz available for %s", skill)
	}

	picked := s.pick(bank)

	attempt := &memory.QuizAttempt{
		ID:        uuid.New(),
		UserID:    userId,
		Skill:     picked[0].Skill,
		Answers:   make([]int, len(picked)),
		CreatedAt: time.Now(),
	}
	questions := make([]dto.QuizQuestion, len(picked))
	for i, q := range picked {
		attempt.Answers[i] = q.CorrectAnswer
		questions[i] = dto.QuizQuestion{
			Index:      i,
			Question:   q.Text,
			Options:    q.Options,
			Difficulty: string(q.Difficulty),
		}
	}
	s.store.Save(attempt)

	passMark := s.rules.QuizPassMark
	if passMark > len(picked) {
		passMark = len(picked)
	}
	return &dto.QuizResponse{
		QuizId:    attempt.ID,
		Skill:     attempt.Skill,
		Questions: questions,
		PassMark:  passMark,
	}, nil
}

// pick draws the quiz mix from bank. Missing difficulties are made up from
// whatever is left so a small bank still yields a full quiz when it can.
func (s *quizService) pick(bank []*entity.Question) []*entity.Question {
	byDifficulty := make(map[entity.Difficulty][]*entity.Question)
	for _, q := range bank {
		byDifficulty[q.Difficulty] = append(byDifficulty[q.Difficulty], q)
	}

	total := 0
	picked := make([]*entity.Question, 0, len(bank))
	var rest []*entity.Question
	for _, mix := range quizMix {
		total += mix.count
		pool := byDifficulty[mix.difficulty]
		s.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		n := mix.count
		if n > len(pool) {
			n = len(pool)
		}
		picked = append(picked, pool[:n]...)
		rest = append(rest, pool[n:]...)
		delete(byDifficulty, mix.difficulty)
	}
	for _, pool := range byDifficulty {
		rest = append(rest, pool...)
	}

	s.shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	for _, q := range rest {
		if len(picked) >= total {
			break
		}
		picked = append(picked, q)
	}
	return picked
}

// Submit grades a quiz once. Reaching the pass mark verifies the skill and,
// the first time only, awards the quiz XP.
func (s *quizService) Submit(ctx context.Context, userId, quizId uuid.UUID, answers []int) (*dto.QuizResultResponse, error) {
	attempt, ok := s.store.Get(quizId)
	if !ok || attempt.UserID != userId {
		return nil, apperror.NotFound("quiz not found or expired")
	}
	if len(answers) != len(attempt.Answers) {
		return nil, apperror.InvalidArgument("expected %d answers, got %d", len(attempt.Answers), len(answers))
	}
	if attempt, ok = s.store.Take(quizId); !ok {
		return nil, apperror.NotFound("quiz not found or expired")
	}

	correct := 0
	for i, answer := range answers {
		if answer == attempt.Answers[i] {
			correct++
		}
	}

	passMark := s.rules.QuizPassMark
	if passMark > len(attempt.Answers) {
		passMark = len(attempt.Answers)
	}
	result := &dto.QuizResultResponse{
		Skill:   attempt.Skill,
		Correct: correct,
		Total:   len(attempt.Answers),
		Passed:  correct >= passMark,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	result.XP, result.Level = user.XP, user.Level
	result.Verified = user.HasVerified(attempt.Skill)

	if !result.Passed || result.Verified {
		return result, nil
	}

	added, err := uow.UserRepository().AddVerifiedSkill(ctx, user.Id, attempt.Skill)
	if err != nil {
		return nil, err
	}
	result.Verified = true
	if !added {
		return result, nil
	}
	s.activity.PublishSkillVerified(ctx, user.Id, attempt.Skill)

	award, err := s.rewards.awardAlone(ctx, user.Id, s.rules.QuizPassXP, entity.XPReasonQuizPassed, &attempt.ID)
	if err != nil {
		s.logger.Error("QUIZ", "Quiz XP award failed", map[string]interface{}{"user_id": user.Id, "error": err.Error()})
		return result, nil
	}
	result.XP, result.Level = award.XP, award.Level
	return result, nil
}
