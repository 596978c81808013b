package entity

import "github.com/google/uuid"

type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Question belongs to the skill quiz bank. CorrectAnswer indexes Options.
type Question struct {
	Id            uuid.UUID
	Skill         string
	Difficulty    Difficulty
	Text          string
	Options       []string
	CorrectAnswer int
}
