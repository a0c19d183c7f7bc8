package handler

import (
	"fmt"
	"strings"
	"time"

	"payroll-backend/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

// respondError writes {"error", "code"} with the status of the error kind.
// Infrastructure errors are logged and their cause is not sent to the client.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	err = apperr.Infra(err)
	status := apperr.HTTPStatus(err)
	ae, _ := apperr.As(err)

	if status >= fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("code", ae.Code),
			zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": ae.Message, "code": ae.Code})
	}

	log.Debug("request rejected", zap.String("path", c.Path()), zap.String("code", ae.Code), zap.Error(err))
	return c.Status(status).JSON(fiber.Map{"error": ae.Error(), "code": ae.Code})
}

func respondData(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"message": message, "data": data})
}

// bind parses the JSON body into input and runs the struct validation tags.
func bind(c *fiber.Ctx, input interface{}) error {
	if err := c.BodyParser(input); err != nil {
		return apperr.Wrap(apperr.ErrInvalidInput, "malformed body")
	}
	if err := validate.Struct(input); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return apperr.Wrap(apperr.ErrInvalidInput, "invalid fields: %s", strings.Join(fields, ", "))
		}
		return apperr.Wrap(apperr.ErrInvalidInput, "%v", err)
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperr.Wrap(apperr.ErrInvalidInput, "invalid %s", name)
	}
	return uint(id), nil
}

func queryID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id := c.QueryInt(name, -1)
	if id <= 0 {
		return 0, apperr.Wrap(apperr.ErrInvalidInput, "invalid %s", name)
	}
	return uint(id), nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperr.Wrap(apperr.ErrInvalidInput, "invalid date %q", value)
}

func sendWorkbook(c *fiber.Ctx, filename, contentType string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Attachment(filename)
	return c.Send(data)
}
