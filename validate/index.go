package validate

import (
	"cinema_booking/constants"
	"cinema_booking/model"
	"cinema_booking/utils"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

var validate = validator.New()

// body parses and validates the JSON body into T and stores it under "input".
func body[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		valueKey, err := strconv.Atoi(c.Params(key))
		if err != nil || valueKey <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		c.Locals("inputId", uint(valueKey))
		return c.Next()
	}
}

func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.Pagination
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}
		if input.Limit != nil && (*input.Limit < 1 || *input.Limit > 100) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INVALID_INPUT, errors.New("limit must be between 1 and 100"))
		}
		c.Locals("pagination", input)
		return c.Next()
	}
}
