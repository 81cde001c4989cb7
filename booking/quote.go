package booking

import (
	"cinema_booking/model"
	"cinema_booking/pricing"
	"cinema_booking/promotion"
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// QuoteRequest is a booking request; AccountID is nil for guests.
type QuoteRequest struct {
	AccountID   *uint
	ShowtimeID  uint
	SeatIDs     []uint
	Foods       []model.FoodItemInput
	VoucherCode string
	UseScore    int
}

type Quote struct {
	ShowtimeID        uint                    `json:"showtimeId"`
	Seats             []pricing.SeatSelection `json:"seats"`
	PromotionID       *uint                   `json:"promotionId,omitempty"`
	PromotionTitle    string                  `json:"promotionTitle,omitempty"`
	PromotionDiscount float64                 `json:"promotionDiscount"`
	VoucherID         *uint                   `json:"voucherId,omitempty"`
	RankName          string                  `json:"rankName,omitempty"`
	Price             pricing.Result          `json:"price"`

	showtime *model.Showtime
}

// Quote prices a request without reserving anything.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	return s.quote(ctx, s.repo, req)
}

func (s *Service) quote(ctx context.Context, repo Store, req QuoteRequest) (*Quote, error) {
	showtime, err := repo.GetShowtimeById(ctx, req.ShowtimeID)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}

	seatIDs := uniqueIDs(req.SeatIDs)
	seats, err := repo.GetSeatsByIds(ctx, seatIDs)
	if err != nil {
		return nil, err
	}
	if len(seatIDs) == 0 || len(seats) != len(seatIDs) {
		return nil, ErrSeatNotFound
	}
	taken, err := repo.GetTakenSeatIds(ctx, showtime.ID, seatIDs)
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		return nil, ErrSeatTaken
	}

	foods, err := s.foodSelections(ctx, repo, req.Foods)
	if err != nil {
		return nil, err
	}

	var member *model.Member
	if req.AccountID != nil {
		if member, err = repo.GetMemberByAccountId(ctx, *req.AccountID); err != nil {
			return nil, err
		}
	}
	if (req.UseScore > 0 || req.VoucherCode != "") && member == nil {
		return nil, ErrPointsRequireAccount
	}
	if req.UseScore < 0 || (member != nil && req.UseScore > member.Score) {
		return nil, ErrInsufficientScore
	}

	var voucher *model.Voucher
	if code := strings.TrimSpace(req.VoucherCode); code != "" {
		if voucher, err = repo.GetVoucherByCode(ctx, code); err != nil {
			return nil, err
		}
		if voucher == nil || voucher.AccountId != member.AccountId || !voucher.Usable(s.now()) {
			return nil, ErrVoucherInvalid
		}
	}

	var rank *model.Rank
	if member != nil && member.RankId != nil {
		if rank, err = repo.GetRankById(ctx, *member.RankId); err != nil {
			return nil, err
		}
	}

	rules, err := promotion.LoadRules(ctx, repo)
	if err != nil {
		return nil, err
	}
	evaluator := promotion.NewEvaluator(repo, repo)
	best := evaluator.SelectBest(ctx, rules, bookingContext(showtime, seats, member))

	q := &Quote{ShowtimeID: showtime.ID, showtime: showtime}
	q.Seats = seatSelections(showtime, seats)
	if best != nil {
		id := best.ID
		q.PromotionID = &id
		q.PromotionTitle = best.Title
		q.Seats = pricing.ApplyPromotion(q.Seats, best.Discount())
		q.PromotionDiscount = pricing.PromotionDiscount(q.Seats)
	}

	in := pricing.Input{
		Seats:    q.Seats,
		UseScore: req.UseScore,
		Foods:    promotion.ApplyFoodPromotionsToFoods(foods, promotion.EligibleFoodPromotions(rules, foods, showtime.StartTime)),
	}
	if voucher != nil {
		id := voucher.ID
		q.VoucherID = &id
		in.VoucherAmount = voucher.Value
	}
	if rank != nil {
		q.RankName = rank.Name
		in.Rank = &pricing.RankRates{
			DiscountPercentage:     rank.DiscountPercentage,
			PointEarningPercentage: rank.PointEarningPercentage,
		}
	}
	q.Price = pricing.Calculate(in)
	return q, nil
}

func (s *Service) foodSelections(ctx context.Context, repo Store, items []model.FoodItemInput) ([]promotion.FoodSelection, error) {
	if len(items) == 0 {
		return nil, nil
	}
	quantities := make(map[uint]int)
	order := make([]uint, 0, len(items))
	for _, item := range items {
		if _, ok := quantities[item.FoodId]; !ok {
			order = append(order, item.FoodId)
		}
		quantities[item.FoodId] += item.Quantity
	}

	foods, err := repo.GetFoodsByIds(ctx, order)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	out := make([]promotion.FoodSelection, 0, len(order))
	for _, id := range order {
		f, ok := byID[id]
		if !ok {
			return nil, errors.Wrapf(ErrFoodNotFound, "food %d", id)
		}
		out = append(out, promotion.FoodSelection{
			FoodID:    f.ID,
			Name:      f.Name,
			Quantity:  quantities[id],
			UnitPrice: f.Price,
		})
	}
	return out, nil
}

func bookingContext(showtime *model.Showtime, seats []model.Seat, member *model.Member) promotion.BookingContext {
	bc := promotion.BookingContext{
		SeatCount:        len(seats),
		MovieID:          showtime.MovieId,
		MovieName:        showtime.Movie.Title,
		MovieNameEnglish: showtime.Movie.TitleEnglish,
		ShowDate:         showtime.StartTime,
	}
	if member != nil {
		id := member.ID
		bc.MemberID = &id
	}
	for _, seat := range seats {
		bc.SeatTypeIDs = append(bc.SeatTypeIDs, seat.SeatTypeId)
		bc.SeatTypeNames = append(bc.SeatTypeNames, seat.SeatType.Name)
		bc.PricePercents = append(bc.PricePercents, seat.SeatType.PricePercent)
	}
	return bc
}

// seatSelections prices each seat as the showtime price scaled by its seat type.
func seatSelections(showtime *model.Showtime, seats []model.Seat) []pricing.SeatSelection {
	out := make([]pricing.SeatSelection, len(seats))
	for i, seat := range seats {
		percent := seat.SeatType.PricePercent
		if percent <= 0 {
			percent = 100
		}
		price := showtime.Price * percent / 100
		out[i] = pricing.SeatSelection{SeatID: seat.ID, Price: price, OriginalPrice: price}
	}
	return out
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// refundPercent is the share of the paid total returned when a booking is
// cancelled at now for a show starting at start.
func refundPercent(start, now time.Time) (float64, error) {
	left := start.Sub(now)
	switch {
	case left >= 2*time.Hour:
		return 100, nil
	case left >= time.Hour:
		return 50, nil
	}
	return 0, ErrTooLateToCancel
}
