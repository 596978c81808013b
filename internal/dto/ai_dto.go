package dto

import "github.com/google/uuid"

type RoadmapRequest struct {
	Skill string `json:"skill" validate:"required,min=1,max=100"`
}

type RoadmapStep struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

type RoadmapResponse struct {
	Title   string        `json:"title"`
	Steps   []RoadmapStep `json:"steps"`
	Offline bool          `json:"offline"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
	Context string `json:"context" validate:"max=100"`
}

type ChatResponse struct {
	Reply   string `json:"reply"`
	Offline bool   `json:"offline"`
}

type GenerateQuizRequest struct {
	Skill string `json:"skill" validate:"required,min=1,max=100"`
}

type QuizQuestion struct {
	Index      int      `json:"index"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

type QuizResponse struct {
	QuizId    uuid.UUID      `json:"quiz_id"`
	Skill     string         `json:"skill"`
	Questions []QuizQuestion `json:"questions"`
	PassMark  int            `json:"pass_mark"`
}

type SubmitQuizRequest struct {
	Answers []int `json:"answers" validate:"required,min=1,dive,min=0"`
}

type QuizResultResponse struct {
	Skill    string `json:"skill"`
	Correct  int    `json:"correct"`
	Total    int    `json:"total"`
	Passed   bool   `json:"passed"`
	Verified bool   `json:"verified"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
}

type ResumeRequest struct {
	Text string `json:"text" validate:"required,min=20,max=20000"`
}

type ResumeResponse struct {
	FullName    string   `json:"full_name"`
	Bio         string   `json:"bio"`
	Parsed      []string `json:"parsed_skills"`
	SkillsKnown []string `json:"skills_known"`
}

type PlanRequest struct {
	Task string `json:"task" validate:"required,min=5,max=2000"`
}

type PlanResponse struct {
	DetectedCategory string   `json:"detected_category"`
	ProjectTitle     string   `json:"project_title"`
	Overview         string   `json:"overview"`
	StepByStepGuide  []string `json:"step_by_step_guide"`
	SkillsRequired   []string `json:"skills_required"`
	ToolsRequired    []string `json:"tools_required"`
}
