package http

import (
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/middleware"
	"payroll-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

// UserHandler manages control-plane users. Who may create whom is decided by the usecase.
type UserHandler struct {
	usecase *usecase.UserUsecase
	log     *zap.Logger
}

func NewUserHandler(u *usecase.UserUsecase, log *zap.Logger) *UserHandler {
	return &UserHandler{usecase: u, log: log}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input usecase.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, apperr.Wrap(apperr.ErrInvalidInput, "malformed body"))
	}
	if err := validate.Struct(input); err != nil {
		return h.fail(c, apperr.Wrap(apperr.ErrInvalidInput, "%v", err))
	}

	user, err := h.usecase.CreateUser(middleware.ActorFrom(c), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user created",
		"data":    user,
	})
}

func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.usecase.ListUsers(middleware.ActorFrom(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "users", "data": users})
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": middleware.ActorFrom(c)})
}

func (h *UserHandler) fail(c *fiber.Ctx, err error) error {
	err = apperr.Infra(err)
	status := apperr.HTTPStatus(err)
	ae, _ := apperr.As(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error("user request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": ae.Message, "code": ae.Code})
	}
	return c.Status(status).JSON(fiber.Map{"error": ae.Error(), "code": ae.Code})
}
