package repository

import (
	"cinema_booking/model"
	"context"

	"github.com/pkg/errors"
)

func (r *Repository) GetMemberByAccountId(ctx context.Context, accountId uint) (*model.Member, error) {
	var member model.Member
	found, err := first(r.locking(ctx).Where("account_id = ?", accountId), &member, "member")
	if err != nil || !found {
		return nil, err
	}
	return &member, nil
}

func (r *Repository) GetMemberById(ctx context.Context, id uint) (*model.Member, error) {
	var member model.Member
	found, err := first(r.conn(ctx).Where("id = ?", id), &member, "member")
	if err != nil || !found {
		return nil, err
	}
	return &member, nil
}

// UpdateMember writes the balance and the derived rank only.
func (r *Repository) UpdateMember(ctx context.Context, member *model.Member) error {
	err := r.conn(ctx).Model(member).
		Select("Score", "TotalPoints", "RankId").
		Updates(member).Error
	return errors.Wrap(err, "update member")
}

func (r *Repository) GetAllRanks(ctx context.Context) ([]model.Rank, error) {
	var ranks []model.Rank
	if err := r.conn(ctx).Order("required_points asc").Find(&ranks).Error; err != nil {
		return nil, errors.Wrap(err, "query ranks")
	}
	return ranks, nil
}

func (r *Repository) GetRankById(ctx context.Context, id uint) (*model.Rank, error) {
	var rank model.Rank
	found, err := first(r.conn(ctx).Where("id = ?", id), &rank, "rank")
	if err != nil || !found {
		return nil, err
	}
	return &rank, nil
}

func (r *Repository) AppendPointHistory(ctx context.Context, entry *model.PointHistory) error {
	return errors.Wrap(r.conn(ctx).Create(entry).Error, "append point history")
}

func (r *Repository) GetPointHistory(ctx context.Context, accountId uint, p model.Pagination) ([]model.PointHistory, int64, error) {
	var (
		rows  []model.PointHistory
		total int64
	)
	query := r.conn(ctx).Model(&model.PointHistory{}).Where("account_id = ?", accountId)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count point history")
	}
	if err := paginate(query, p.Limit, p.Page).Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "query point history")
	}
	return rows, total, nil
}
