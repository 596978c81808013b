package controller

import (
	"collabhub-be/internal/dto"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/pkg/serverutils"
	"collabhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAIController interface {
	RegisterRoutes(r fiber.Router)
	Roadmap(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	GenerateQuiz(ctx *fiber.Ctx) error
	SubmitQuiz(ctx *fiber.Ctx) error
	ParseResume(ctx *fiber.Ctx) error
	Plan(ctx *fiber.Ctx) error
}

type aiController struct {
	aiService   service.IAIService
	quizService service.IQuizService
	auth        fiber.Handler
}

func NewAIController(aiService service.IAIService, quizService service.IQuizService, auth fiber.Handler) IAIController {
	return &aiController{
		aiService:   aiService,
		quizService: quizService,
		auth:        auth,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai")
	h.Use(c.auth)
	h.Post("/roadmap", c.Roadmap)
	h.Post("/chat", c.Chat)
	h.Post("/quiz", c.GenerateQuiz)
	h.Post("/quiz/:id/submit", c.SubmitQuiz)
	h.Post("/resume", c.ParseResume)
	h.Post("/plan", c.Plan)
}

// parseBody decodes and validates a JSON body into req.
func parseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.InvalidArgument("invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

func (c *aiController) Roadmap(ctx *fiber.Ctx) error {
	var req dto.RoadmapRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.aiService.Roadmap(ctx.UserContext(), req.Skill)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate roadmap", res))
}

func (c *aiController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.aiService.Chat(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *aiController) GenerateQuiz(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateQuizRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.quizService.Generate(ctx.UserContext(), userId, req.Skill)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate quiz", res))
}

func (c *aiController) SubmitQuiz(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	quizId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SubmitQuizRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.quizService.Submit(ctx.UserContext(), userId, quizId, req.Answers)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Quiz graded", res))
}

func (c *aiController) ParseResume(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.ResumeRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.aiService.ParseResume(ctx.UserContext(), userId, req.Text)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Resume parsed", res))
}

func (c *aiController) Plan(ctx *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.aiService.Plan(ctx.UserContext(), req.Task)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate plan", res))
}
