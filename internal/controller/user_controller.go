// FILE: internal/controller/user_controller.go
package controller

import (
	"collabhub-be/internal/dto"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/pkg/serverutils"
	"collabhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Leaderboard(ctx *fiber.Ctx) error
	GetById(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
	auth    fiber.Handler
}

func NewUserController(service service.IUserService, auth fiber.Handler) IUserController {
	return &userController{service: service, auth: auth}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users")
	h.Use(c.auth)
	h.Get("/profile", c.GetProfile)
	h.Put("/profile", c.UpdateProfile)
	h.Get("/all", c.GetAll)
	h.Get("/search", c.Search)
	h.Get("/leaderboard", c.Leaderboard)
	h.Get("/:id", c.GetById)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetProfile(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *userController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get users", res))
}

func (c *userController) Search(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Search(ctx.UserContext(), userId, ctx.Query("q"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search users", res))
}

func (c *userController) Leaderboard(ctx *fiber.Ctx) error {
	res, err := c.service.Leaderboard(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get leaderboard", res))
}

func (c *userController) GetById(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetById(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get user", res))
}
