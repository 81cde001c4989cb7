package booking

import (
	"cinema_booking/constants"
	"cinema_booking/model"
	"context"
	"sort"
	"time"
)

// memoryStore keeps every table in maps. Transaction runs fn against the
// same maps, which is enough for single goroutine scenarios.
type memoryStore struct {
	accounts   map[uint]*model.Account
	members    map[uint]*model.Member
	ranks      []model.Rank
	history    []model.PointHistory
	vouchers   map[uint]*model.Voucher
	showtimes  map[uint]*model.Showtime
	seats      map[uint]model.Seat
	foods      map[uint]model.Food
	promotions []model.Promotion
	invoices   map[string]*model.Invoice
	payments   map[string]*model.Payment
	lastID     uint
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts:  map[uint]*model.Account{},
		members:   map[uint]*model.Member{},
		vouchers:  map[uint]*model.Voucher{},
		showtimes: map[uint]*model.Showtime{},
		seats:     map[uint]model.Seat{},
		foods:     map[uint]model.Food{},
		invoices:  map[string]*model.Invoice{},
		payments:  map[string]*model.Payment{},
	}
}

func (s *memoryStore) nextID() uint {
	s.lastID++
	return s.lastID
}

func (s *memoryStore) addMember(accountID uint, score, total int, rankID *uint) {
	s.accounts[accountID] = &model.Account{DTO: model.DTO{ID: accountID}}
	s.members[accountID] = &model.Member{DTO: model.DTO{ID: 100 + accountID}, AccountId: accountID, Score: score, TotalPoints: total, RankId: rankID}
}

func (s *memoryStore) score(accountID uint) int {
	return s.members[accountID].Score
}

func (s *memoryStore) Transaction(_ context.Context, fn func(tx Store) error) error {
	return fn(s)
}

func (s *memoryStore) GetAccountById(_ context.Context, id uint) (*model.Account, error) {
	return s.accounts[id], nil
}

func (s *memoryStore) GetMemberByAccountId(_ context.Context, id uint) (*model.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *memoryStore) GetMemberById(_ context.Context, id uint) (*model.Member, error) {
	for _, m := range s.members {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) UpdateMember(_ context.Context, m *model.Member) error {
	cp := *m
	s.members[m.AccountId] = &cp
	return nil
}

func (s *memoryStore) GetAllRanks(context.Context) ([]model.Rank, error) {
	return s.ranks, nil
}

func (s *memoryStore) GetRankById(_ context.Context, id uint) (*model.Rank, error) {
	for _, r := range s.ranks {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) AppendPointHistory(_ context.Context, h *model.PointHistory) error {
	s.history = append(s.history, *h)
	return nil
}

func (s *memoryStore) GetPointHistory(_ context.Context, accountId uint, _ model.Pagination) ([]model.PointHistory, int64, error) {
	var out []model.PointHistory
	for _, h := range s.history {
		if h.AccountId == accountId {
			out = append(out, h)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memoryStore) GetVoucherById(_ context.Context, id uint) (*model.Voucher, error) {
	v, ok := s.vouchers[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (s *memoryStore) GetVoucherByCode(_ context.Context, code string) (*model.Voucher, error) {
	for _, v := range s.vouchers {
		if v.Code == code {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) GetVouchersByAccountId(_ context.Context, accountId uint) ([]model.Voucher, error) {
	var out []model.Voucher
	for _, v := range s.vouchers {
		if v.AccountId == accountId {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (s *memoryStore) UpdateVoucher(_ context.Context, v *model.Voucher) error {
	cp := *v
	s.vouchers[v.ID] = &cp
	return nil
}

func (s *memoryStore) CreateVoucher(_ context.Context, v *model.Voucher) error {
	v.ID = s.nextID()
	cp := *v
	s.vouchers[v.ID] = &cp
	return nil
}

func (s *memoryStore) ExpireVouchers(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, v := range s.vouchers {
		if v.Status == constants.VOUCHER_ACTIVE && !v.IsUsed && v.ExpiresAt != nil && !now.Before(*v.ExpiresAt) {
			v.Status = constants.VOUCHER_EXPIRED
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) GetAllPromotions(context.Context) ([]model.Promotion, error) {
	return s.promotions, nil
}

func (s *memoryStore) GetShowtimeById(_ context.Context, id uint) (*model.Showtime, error) {
	st, ok := s.showtimes[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *memoryStore) GetSeatsByIds(_ context.Context, ids []uint) ([]model.Seat, error) {
	var out []model.Seat
	for _, id := range ids {
		if seat, ok := s.seats[id]; ok {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (s *memoryStore) GetTakenSeatIds(_ context.Context, showtimeId uint, seatIds []uint) ([]uint, error) {
	wanted := make(map[uint]bool, len(seatIds))
	for _, id := range seatIds {
		wanted[id] = true
	}
	var taken []uint
	for _, inv := range s.invoices {
		if inv.ShowtimeId != showtimeId || inv.Status == constants.INVOICE_CANCELLED {
			continue
		}
		for _, seat := range inv.Seats {
			if wanted[seat.SeatId] {
				taken = append(taken, seat.SeatId)
			}
		}
	}
	return taken, nil
}

func (s *memoryStore) GetFoodsByIds(_ context.Context, ids []uint) ([]model.Food, error) {
	var out []model.Food
	for _, id := range ids {
		if f, ok := s.foods[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *memoryStore) GetInvoicesByAccountId(_ context.Context, accountId uint) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range s.invoices {
		if inv.AccountId != nil && *inv.AccountId == accountId {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (s *memoryStore) GetInvoiceByCode(_ context.Context, code string) (*model.Invoice, error) {
	inv, ok := s.invoices[code]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (s *memoryStore) GetInvoiceById(_ context.Context, id uint) (*model.Invoice, error) {
	for _, inv := range s.invoices {
		if inv.ID == id {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) CreateInvoice(_ context.Context, inv *model.Invoice) error {
	inv.ID = s.nextID()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	cp := *inv
	s.invoices[inv.PublicCode] = &cp
	return nil
}

func (s *memoryStore) SaveInvoice(_ context.Context, inv *model.Invoice) error {
	cp := *inv
	s.invoices[inv.PublicCode] = &cp
	return nil
}

func (s *memoryStore) GetPendingInvoiceCodesBefore(_ context.Context, cutoff time.Time) ([]string, error) {
	var pending []*model.Invoice
	for _, inv := range s.invoices {
		if inv.Status == constants.INVOICE_PENDING && inv.CreatedAt.Before(cutoff) {
			pending = append(pending, inv)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	codes := make([]string, len(pending))
	for i, inv := range pending {
		codes[i] = inv.PublicCode
	}
	return codes, nil
}

func (s *memoryStore) CreatePayment(_ context.Context, p *model.Payment) error {
	p.ID = s.nextID()
	cp := *p
	s.payments[p.PaymentCode] = &cp
	return nil
}

func (s *memoryStore) GetPaymentByCode(_ context.Context, code string) (*model.Payment, error) {
	p, ok := s.payments[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memoryStore) UpdatePaymentStatus(_ context.Context, id uint, status string) error {
	for _, p := range s.payments {
		if p.ID == id {
			p.Status = status
		}
	}
	return nil
}
