package loyalty

import (
	"cinema_booking/model"
	"context"
)

type fakeStore struct {
	accounts map[uint]*model.Account
	members  map[uint]*model.Member
	ranks    []model.Rank
	history  []model.PointHistory
	vouchers map[uint]*model.Voucher
	created  []*model.Voucher
}

func newFakeStore(ranks ...model.Rank) *fakeStore {
	return &fakeStore{
		accounts: map[uint]*model.Account{},
		members:  map[uint]*model.Member{},
		ranks:    ranks,
		vouchers: map[uint]*model.Voucher{},
	}
}

func (s *fakeStore) addMember(accountID uint, score, total int, rankID *uint) {
	s.accounts[accountID] = &model.Account{DTO: model.DTO{ID: accountID}}
	s.members[accountID] = &model.Member{AccountId: accountID, Score: score, TotalPoints: total, RankId: rankID}
}

func (s *fakeStore) GetAccountById(_ context.Context, id uint) (*model.Account, error) {
	return s.accounts[id], nil
}

func (s *fakeStore) GetMemberByAccountId(_ context.Context, id uint) (*model.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *fakeStore) UpdateMember(_ context.Context, m *model.Member) error {
	cp := *m
	s.members[m.AccountId] = &cp
	return nil
}

func (s *fakeStore) GetAllRanks(context.Context) ([]model.Rank, error) {
	return s.ranks, nil
}

func (s *fakeStore) AppendPointHistory(_ context.Context, h *model.PointHistory) error {
	s.history = append(s.history, *h)
	return nil
}

func (s *fakeStore) GetVoucherById(_ context.Context, id uint) (*model.Voucher, error) {
	v, ok := s.vouchers[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (s *fakeStore) UpdateVoucher(_ context.Context, v *model.Voucher) error {
	cp := *v
	s.vouchers[v.ID] = &cp
	return nil
}

func (s *fakeStore) CreateVoucher(_ context.Context, v *model.Voucher) error {
	s.created = append(s.created, v)
	return nil
}

func rank(id uint, name string, required int) model.Rank {
	return model.Rank{DTO: model.DTO{ID: id}, Name: name, RequiredPoints: required, PointEarningPercentage: 1}
}

func uintPtr(v uint) *uint { return &v }
