package pricing

import (
	"cinema_booking/promotion"
	"math"
)

const (
	// PointValue is the monetary value of one loyalty point.
	PointValue = 1000.0
	// DefaultEarningPercentage applies when the customer has no rank.
	DefaultEarningPercentage = 1.0
)

type SeatSelection struct {
	SeatID        uint
	Price         float64
	OriginalPrice float64
}

// RankRates carries the percentages of the customer's current rank.
type RankRates struct {
	DiscountPercentage     float64
	PointEarningPercentage float64
}

type Input struct {
	Seats         []SeatSelection
	Rank          *RankRates
	VoucherAmount float64
	UseScore      int
	Foods         []promotion.FoodPriceLine
}

type Result struct {
	Subtotal                float64                   `json:"subtotal"`
	RankDiscount            float64                   `json:"rankDiscount"`
	SeatTotalAfterDiscounts float64                   `json:"seatTotalAfterDiscounts"`
	VoucherAmount           float64                   `json:"voucherAmount"`
	UsedPointsValue         float64                   `json:"usedPointsValue"`
	TotalFoodPrice          float64                   `json:"totalFoodPrice"`
	FoodDetails             []promotion.FoodPriceLine `json:"foodDetails"`
	TotalPrice              float64                   `json:"totalPrice"`
	AddScore                int                       `json:"addScore"`
}

// ApplyPromotion prices each seat from its original price minus percent.
// A seat without an original price is treated as undiscounted at Price.
func ApplyPromotion(seats []SeatSelection, percent float64) []SeatSelection {
	out := make([]SeatSelection, len(seats))
	for i, s := range seats {
		if s.OriginalPrice == 0 {
			s.OriginalPrice = s.Price
		}
		s.Price = clamp(s.OriginalPrice - s.OriginalPrice*percent/100)
		out[i] = s
	}
	return out
}

// PromotionDiscount is the total markdown between original and charged seat prices.
func PromotionDiscount(seats []SeatSelection) float64 {
	var d float64
	for _, s := range seats {
		if s.OriginalPrice > s.Price {
			d += s.OriginalPrice - s.Price
		}
	}
	return d
}

// Calculate runs the pipeline: subtotal, rank discount, voucher and points
// deductions clamped at zero, food total, final total and earned points.
// It has no side effects.
func Calculate(in Input) Result {
	res := Result{FoodDetails: []promotion.FoodPriceLine{}}
	if len(in.Seats) == 0 {
		return res
	}

	discountPct, earningPct := 0.0, DefaultEarningPercentage
	if in.Rank != nil {
		discountPct = in.Rank.DiscountPercentage
		earningPct = in.Rank.PointEarningPercentage
	}

	for _, s := range in.Seats {
		res.Subtotal += s.Price
	}
	res.RankDiscount = res.Subtotal * discountPct / 100
	res.VoucherAmount = clamp(in.VoucherAmount)
	if in.UseScore > 0 {
		res.UsedPointsValue = float64(in.UseScore) * PointValue
	}
	res.SeatTotalAfterDiscounts = clamp(res.Subtotal - res.RankDiscount - res.VoucherAmount - res.UsedPointsValue)

	for _, f := range in.Foods {
		f.Price = clamp(f.Price)
		res.TotalFoodPrice += f.Price
		res.FoodDetails = append(res.FoodDetails, f)
	}

	res.TotalPrice = res.SeatTotalAfterDiscounts + res.TotalFoodPrice
	res.AddScore = EarnedPoints(res.Subtotal, earningPct)
	return res
}

// EarnedPoints is floor(subtotal * rate / 100 / PointValue). Earning uses
// the gross seat subtotal.
func EarnedPoints(subtotal, earningPercentage float64) int {
	points := subtotal * earningPercentage / 100 / PointValue
	if points <= 0 {
		return 0
	}
	return int(math.Floor(points + 1e-9))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
