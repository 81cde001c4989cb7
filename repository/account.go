package repository

import (
	"cinema_booking/model"
	"context"

	"github.com/pkg/errors"
)

func (r *Repository) GetAccountById(ctx context.Context, id uint) (*model.Account, error) {
	var account model.Account
	found, err := first(r.conn(ctx).Where("id = ?", id), &account, "account")
	if err != nil || !found {
		return nil, err
	}
	return &account, nil
}

func (r *Repository) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	var account model.Account
	found, err := first(r.conn(ctx).Where(&model.Account{Username: username}), &account, "account")
	if err != nil || !found {
		return nil, err
	}
	return &account, nil
}

// CreateAccount stores the account together with its member record.
func (r *Repository) CreateAccount(ctx context.Context, account *model.Account, member *model.Member) error {
	if err := r.conn(ctx).Omit("Member").Create(account).Error; err != nil {
		return errors.Wrap(err, "create account")
	}
	member.AccountId = account.ID
	if err := r.conn(ctx).Omit("Rank").Create(member).Error; err != nil {
		return errors.Wrap(err, "create member")
	}
	account.Member = member
	return nil
}

func (r *Repository) UpdateRefreshToken(ctx context.Context, accountId uint, token string) error {
	err := r.conn(ctx).Model(&model.Account{}).Where("id = ?", accountId).Update("refresh_token", token).Error
	return errors.Wrap(err, "update refresh token")
}
