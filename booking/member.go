package booking

import (
	"cinema_booking/loyalty"
	"cinema_booking/model"
	"context"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

var ErrMemberNotFound = errors.New("member not found")

// Member summarises an account's loyalty standing under the rank stored
// on the member.
func (s *Service) Member(ctx context.Context, accountID uint) (*model.MemberResponse, error) {
	member, err := s.repo.GetMemberByAccountId(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	ranks, err := s.repo.GetAllRanks(ctx)
	if err != nil {
		return nil, err
	}

	var res model.MemberResponse
	if err := copier.Copy(&res, member); err != nil {
		return nil, errors.Wrap(err, "copy member")
	}
	if member.RankId != nil {
		rank, err := s.repo.GetRankById(ctx, *member.RankId)
		if err != nil {
			return nil, err
		}
		if rank != nil {
			res.RankName = rank.Name
		}
	}
	if next := loyalty.NextRank(ranks, member.TotalPoints); next != nil {
		res.NextRank = next.Name
		res.ToNextRank = next.RequiredPoints - member.TotalPoints
	}
	return &res, nil
}

// AdjustPoints applies a manual credit or debit.
func (s *Service) AdjustPoints(ctx context.Context, in model.AdjustPointsInput) (loyalty.Outcome, error) {
	var outcome loyalty.Outcome
	err := s.withTx(ctx, func(_ Store, ledger *loyalty.Ledger) error {
		var err error
		if in.Deduct {
			outcome, err = ledger.DeductPoints(ctx, in.AccountId, in.Amount, in.DeductFromTotalPoints)
		} else {
			outcome, err = ledger.AddPoints(ctx, in.AccountId, in.Amount, in.IsTestMode)
		}
		return err
	})
	return outcome, err
}

func (s *Service) Notification(ctx context.Context, accountID uint) (string, bool) {
	return s.Ledger().GetAndClearNotification(ctx, accountID)
}

func (s *Service) History(ctx context.Context, accountID uint, p model.Pagination) ([]model.PointHistory, int64, error) {
	return s.repo.GetPointHistory(ctx, accountID, p)
}

func (s *Service) Vouchers(ctx context.Context, accountID uint) ([]model.Voucher, error) {
	return s.repo.GetVouchersByAccountId(ctx, accountID)
}
