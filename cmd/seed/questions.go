package main

import (
	"context"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"

	"github.com/fatih/color"
)

func q(skill string, d entity.Difficulty, text string, correct int, options ...string) *entity.Question {
	return &entity.Question{Skill: skill, Difficulty: d, Text: text, Options: options, CorrectAnswer: correct}
}

var questionBank = map[string][]*entity.Question{
	"Go": {
		q("Go", entity.DifficultyBasic, "Which keyword starts a goroutine?", 1, "async", "go", "spawn", "thread"),
		q("Go", entity.DifficultyBasic, "What is the zero value of a string?", 2, "nil", "\"0\"", "\"\"", "undefined"),
		q("Go", entity.DifficultyBasic, "Which tool formats Go source code?", 0, "gofmt", "golint", "go vet", "prettier"),
		q("Go", entity.DifficultyIntermediate, "What happens when you send on a closed channel?", 3, "It blocks", "It is ignored", "It returns false", "It panics"),
		q("Go", entity.DifficultyIntermediate, "Which interface does an error value satisfy?", 0, "error", "Stringer", "Reader", "any only"),
		q("Go", entity.DifficultyAdvanced, "When does a deferred call's argument get evaluated?", 1, "When the function returns", "When the defer statement runs", "Lazily on first use", "Never"),
		q("Go", entity.DifficultyAdvanced, "Which sync type lets many readers hold a lock at once?", 2, "sync.Mutex", "sync.Once", "sync.RWMutex", "sync.Cond"),
	},
	"Python": {
		q("Python", entity.DifficultyBasic, "Which keyword defines a function?", 0, "def", "func", "function", "lambda only"),
		q("Python", entity.DifficultyBasic, "What does len([1, 2, 3]) return?", 2, "2", "4", "3", "An error"),
		q("Python", entity.DifficultyIntermediate, "Which collection type is immutable?", 1, "list", "tuple", "dict", "set"),
		q("Python", entity.DifficultyIntermediate, "What does a list comprehension return?", 3, "A generator", "A tuple", "A dict", "A list"),
		q("Python", entity.DifficultyAdvanced, "What limits true thread parallelism in CPython?", 0, "The GIL", "The GC", "The ABI", "PEP 8"),
	},
	"React": {
		q("React", entity.DifficultyBasic, "Which hook stores local component state?", 1, "useEffect", "useState", "useMemo", "useRef"),
		q("React", entity.DifficultyBasic, "What syntax extension lets you write markup in JS?", 2, "TSX only", "HTMLX", "JSX", "Vue SFC"),
		q("React", entity.DifficultyIntermediate, "What should the key prop of list items be?", 0, "Stable and unique", "The array index always", "Random each render", "Optional"),
		q("React", entity.DifficultyIntermediate, "When does useEffect with an empty dependency array run?", 3, "Every render", "Never", "Before mount", "After the first render"),
		q("React", entity.DifficultyAdvanced, "Which API avoids re-creating a callback between renders?", 1, "useMemo", "useCallback", "useReducer", "memo"),
	},
}

// seedQuestions fills the bank for every skill that has no questions yet.
func seedQuestions(ctx context.Context, uowFactory unitofwork.RepositoryFactory) error {
	repo := uowFactory.NewUnitOfWork(ctx).QuestionRepository()
	for skill, questions := range questionBank {
		count, err := repo.Count(ctx, specification.QuestionsForSkill{Skill: skill})
		if err != nil {
			return err
		}
		if count > 0 {
			color.Yellow("  %s already has %d questions, skipping", skill, count)
			continue
		}
		if err := repo.CreateBulk(ctx, questions); err != nil {
			return err
		}
		color.Green("  added %d %s questions", len(questions), skill)
	}
	return nil
}
