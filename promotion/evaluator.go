package promotion

import (
	"cinema_booking/model"
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

type MemberFinder interface {
	GetMemberById(ctx context.Context, id uint) (*model.Member, error)
}

type InvoiceFinder interface {
	GetInvoicesByAccountId(ctx context.Context, accountId uint) ([]model.Invoice, error)
}

// Evaluator decides promotion eligibility. It only reads; one instance can
// serve concurrent requests.
type Evaluator struct {
	members  MemberFinder
	invoices InvoiceFinder
}

// NewEvaluator accepts nil finders; accountid conditions then never hold.
func NewEvaluator(members MemberFinder, invoices InvoiceFinder) *Evaluator {
	return &Evaluator{members: members, invoices: invoices}
}

// IsEligible requires the rule to be active on the show date and every
// condition to hold. An empty condition list is eligible.
func (e *Evaluator) IsEligible(ctx context.Context, r Rule, bc BookingContext) bool {
	if !r.ActiveAt(bc.ShowDate) {
		return false
	}
	for _, c := range r.Conditions {
		if !e.evaluate(ctx, c, bc) {
			return false
		}
	}
	return true
}

// SelectBest returns the eligible rule with the strictly highest discount
// level. Ties keep the earlier rule. Nil when nothing is eligible.
func (e *Evaluator) SelectBest(ctx context.Context, rules []Rule, bc BookingContext) *Rule {
	var best *Rule
	for i := range rules {
		if !e.IsEligible(ctx, rules[i], bc) {
			continue
		}
		if best == nil || rules[i].Discount() > best.Discount() {
			r := rules[i]
			best = &r
		}
	}
	if best != nil {
		log.Debug().Uint("promotionId", best.ID).Float64("discountLevel", best.Discount()).Msg("promotion selected")
	}
	return best
}

func (e *Evaluator) evaluate(ctx context.Context, c Condition, bc BookingContext) bool {
	if c.Op == OpUnknown {
		return false
	}
	value := strings.TrimSpace(c.Value)

	switch c.Field {
	case FieldSeat:
		n, err := strconv.Atoi(value)
		if err != nil {
			// unparsable thresholds do not disqualify
			return true
		}
		return compareInt(c.Op, bc.SeatCount, n)

	case FieldTypeName:
		if c.Op != OpEq {
			return false
		}
		for _, name := range bc.SeatTypeNames {
			if name == value {
				return true
			}
		}
		return false

	case FieldMovieName:
		return c.Op == OpEq && bc.MovieName == value

	case FieldMovieNameEnglish:
		name := bc.MovieNameEnglish
		if name == "" {
			name = bc.MovieName
		}
		return c.Op == OpEq && name == value

	case FieldShowDate:
		target, ok := parseDate(value)
		if !ok {
			return false
		}
		return compareDate(c.Op, bc.ShowDate, target)

	case FieldPricePercent:
		target, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return true
		}
		for _, pp := range bc.PricePercents {
			if compareFloat(c.Op, pp, target) {
				return true
			}
		}
		return false

	case FieldAccountID:
		if c.Op != OpEq {
			return false
		}
		target, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return false
		}
		return e.accountHasInvoice(ctx, bc.MemberID, uint(target))

	case FieldFoodPrice, FieldFoodName:
		// food conditions only hold on the food-line path
		return false
	}
	return false
}

func (e *Evaluator) accountHasInvoice(ctx context.Context, memberID *uint, target uint) bool {
	if memberID == nil || e.members == nil || e.invoices == nil {
		return false
	}
	member, err := e.members.GetMemberById(ctx, *memberID)
	if err != nil {
		log.Warn().Err(err).Uint("memberId", *memberID).Msg("member lookup failed during promotion evaluation")
		return false
	}
	if member == nil {
		return false
	}
	invoices, err := e.invoices.GetInvoicesByAccountId(ctx, member.AccountId)
	if err != nil {
		log.Warn().Err(err).Uint("accountId", member.AccountId).Msg("invoice lookup failed during promotion evaluation")
		return false
	}
	for _, inv := range invoices {
		if inv.AccountId != nil && *inv.AccountId == target {
			return true
		}
	}
	return false
}
