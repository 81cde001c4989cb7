package handler

import (
	"cinema_booking/constants"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func Register(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RegisterInput)
	ctx := c.UserContext()

	existing, err := Repo.GetAccountByUsername(ctx, input.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ERROR_USERNAME_EXISTS, errors.New("username exists"))
	}

	var account model.Account
	if err := copier.Copy(&account, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	account.Password = hash
	account.Role = constants.ROLE_CUSTOMER
	account.Active = true

	if err := Repo.CreateAccount(ctx, &account, &model.Member{}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	log.Info().Uint("accountId", account.ID).Str("username", account.Username).Msg("account registered")
	return utils.SuccessResponse(c, fiber.StatusCreated, account)
}

func Login(c *fiber.Ctx) error {
	input := c.Locals("input").(model.LoginInput)
	ctx := c.UserContext()

	account, err := Repo.GetAccountByUsername(ctx, input.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if account == nil || !helper.CheckPasswordHash(input.Password, account.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_WRONG_CREDENTIALS, errors.New("invalid credentials"))
	}
	if !account.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ERROR_FORBIDDEN, errors.New("account disabled"))
	}
	return issueTokens(c, account)
}

func RefreshToken(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RefreshTokenInput)
	ctx := c.UserContext()

	token, err := helper.ParseToken(input.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_UNAUTHORIZED, err)
	}
	claim, ok := helper.ClaimsFromToken(token)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_UNAUTHORIZED, errors.New("invalid claims"))
	}
	account, err := Repo.GetAccountById(ctx, claim.AccountId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if account == nil || account.RefreshToken != input.RefreshToken {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.ERROR_UNAUTHORIZED, errors.New("refresh token revoked"))
	}
	return issueTokens(c, account)
}

func Me(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoAccountFromToken(c)
	account, err := Repo.GetAccountById(c.UserContext(), claim.AccountId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if account == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ERROR_ACCOUNT_NOT_FOUND, errors.New("account not found"))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, account)
}

func issueTokens(c *fiber.Ctx, account *model.Account) error {
	tokenClaim := model.TokenClaim{
		AccountId: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	}
	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := Repo.UpdateRefreshToken(c.UserContext(), account.ID, refreshToken); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return utils.SuccessResponse(c, fiber.StatusOK, model.TokenData{
		AccessToken:  token,
		RefreshToken: refreshToken,
	})
}
