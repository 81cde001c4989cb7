package promotion

import (
	"cinema_booking/model"
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
)

var showDate = time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

func level(v float64) *float64 { return &v }

func activeRule(id uint, discount float64, conds ...Condition) Rule {
	return Rule{
		ID:            id,
		Title:         "promo",
		IsActive:      true,
		StartTime:     showDate.AddDate(0, 0, -7),
		EndTime:       showDate.AddDate(0, 0, 7),
		DiscountLevel: level(discount),
		Conditions:    conds,
	}
}

func cond(field, op, value string) Condition {
	return Condition{Field: ParseField("", field), Op: ParseOperator(op), Value: value}
}

type fakeMembers map[uint]*model.Member

func (f fakeMembers) GetMemberById(_ context.Context, id uint) (*model.Member, error) {
	return f[id], nil
}

type fakeInvoices struct {
	byAccount map[uint][]model.Invoice
	err       error
}

func (f fakeInvoices) GetInvoicesByAccountId(_ context.Context, accountId uint) ([]model.Invoice, error) {
	return f.byAccount[accountId], f.err
}

// TestSeatThresholdMonotonic verifies a seat >= N rule holds exactly for counts >= N.
func TestSeatThresholdMonotonic(t *testing.T) {
	e := NewEvaluator(nil, nil)
	r := activeRule(1, 10, cond("seat", ">=", "3"))
	for seats := 0; seats <= 8; seats++ {
		got := e.IsEligible(context.Background(), r, BookingContext{SeatCount: seats, ShowDate: showDate})
		if got != (seats >= 3) {
			t.Fatalf("seats=%d: expected eligible=%v, got %v", seats, seats >= 3, got)
		}
	}
}

// TestSelectBestHighestDiscount verifies the highest discount wins and none eligible yields nil.
func TestSelectBestHighestDiscount(t *testing.T) {
	e := NewEvaluator(nil, nil)
	bc := BookingContext{SeatCount: 2, ShowDate: showDate}
	rules := []Rule{activeRule(1, 10), activeRule(2, 20)}

	best := e.SelectBest(context.Background(), rules, bc)
	if best == nil || best.ID != 2 {
		t.Fatalf("expected promotion 2, got %+v", best)
	}

	none := []Rule{activeRule(3, 10, cond("seat", ">", "5")), activeRule(4, 20, cond("seat", ">", "5"))}
	if got := e.SelectBest(context.Background(), none, bc); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

// TestSelectBestTieKeepsFirst verifies equal discount levels resolve to evaluation order.
func TestSelectBestTieKeepsFirst(t *testing.T) {
	e := NewEvaluator(nil, nil)
	rules := []Rule{activeRule(7, 15), activeRule(8, 15)}
	best := e.SelectBest(context.Background(), rules, BookingContext{ShowDate: showDate})
	if best == nil || best.ID != 7 {
		t.Fatalf("expected first promotion 7, got %+v", best)
	}
}

// TestActiveWindow verifies the flag, half-open window and discount presence checks.
func TestActiveWindow(t *testing.T) {
	e := NewEvaluator(nil, nil)
	base := activeRule(1, 10)

	tests := []struct {
		name string
		mut  func(r *Rule)
		at   time.Time
		want bool
	}{
		{"inside", func(r *Rule) {}, showDate, true},
		{"at start", func(r *Rule) { r.StartTime = showDate }, showDate, true},
		{"at end", func(r *Rule) { r.EndTime = showDate }, showDate, false},
		{"inactive", func(r *Rule) { r.IsActive = false }, showDate, false},
		{"no discount", func(r *Rule) { r.DiscountLevel = nil }, showDate, false},
		{"before start", func(r *Rule) {}, showDate.AddDate(0, 0, -8), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mut(&r)
			if got := e.IsEligible(context.Background(), r, BookingContext{ShowDate: tt.at}); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestUnknownFieldOrOperatorFailsClosed verifies unrecognised rules never grant a discount.
func TestUnknownFieldOrOperatorFailsClosed(t *testing.T) {
	e := NewEvaluator(nil, nil)
	bc := BookingContext{SeatCount: 4, ShowDate: showDate}

	if e.IsEligible(context.Background(), activeRule(1, 10, cond("weather", "=", "sunny")), bc) {
		t.Fatalf("unknown field must not be eligible")
	}
	if e.IsEligible(context.Background(), activeRule(1, 10, cond("seat", "!=", "2")), bc) {
		t.Fatalf("unknown operator must not be eligible")
	}
}

// TestUnparsableNumericThresholdIsIgnored pins the lenient behaviour for malformed numeric values.
func TestUnparsableNumericThresholdIsIgnored(t *testing.T) {
	e := NewEvaluator(nil, nil)
	bc := BookingContext{SeatCount: 1, ShowDate: showDate, PricePercents: []float64{100}}

	if !e.IsEligible(context.Background(), activeRule(1, 10, cond("seat", ">=", "3x")), bc) {
		t.Fatalf("malformed seat threshold should be vacuously true")
	}
	if !e.IsEligible(context.Background(), activeRule(1, 10, cond("pricepercent", ">", "abc")), bc) {
		t.Fatalf("malformed price percent should be vacuously true")
	}
	// the leniency is per sub-check; other conditions still apply
	r := activeRule(1, 10, cond("seat", ">=", "3x"), cond("typename", "=", "VIP"))
	if e.IsEligible(context.Background(), r, bc) {
		t.Fatalf("remaining conditions must still disqualify")
	}
}

// TestBookingFieldConditions verifies each booking-level field accessor.
func TestBookingFieldConditions(t *testing.T) {
	e := NewEvaluator(nil, nil)
	bc := BookingContext{
		SeatCount:        2,
		MovieName:        "Lật Mặt 8",
		MovieNameEnglish: "Face Off 8",
		ShowDate:         showDate,
		SeatTypeNames:    []string{"NORMAL", "VIP"},
		PricePercents:    []float64{100, 120},
	}

	tests := []struct {
		name string
		c    Condition
		want bool
	}{
		{"typename member", cond("typename", "=", "VIP"), true},
		{"typename absent", cond("typename", "=", "COUPLE"), false},
		{"typename non-equality", cond("typename", ">", "VIP"), false},
		{"moviename match", cond("moviename", "=", "Lật Mặt 8"), true},
		{"moviename mismatch", cond("moviename", "=", "Mai"), false},
		{"english name", cond("movienameenglish", "=", "Face Off 8"), true},
		{"showdate equal", cond("showdate", "=", "2026-03-14"), true},
		{"showdate alt layout", cond("showdate", ">=", "01/03/2026"), true},
		{"showdate before", cond("showdate", "<", "2026-03-14"), false},
		{"showdate unparsable", cond("showdate", "=", "someday"), false},
		{"pricepercent any", cond("pricepercent", ">=", "120"), true},
		{"pricepercent none", cond("pricepercent", ">", "150"), false},
		{"seat equal", cond("seat", "=", "2"), true},
		{"seat less", cond("seat", "<", "2"), false},
		{"food condition on booking", Condition{Entity: EntityFood, Field: FieldFoodName, Op: OpEq, Value: "Pizza"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.IsEligible(context.Background(), activeRule(1, 10, tt.c), bc); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestAccountIDCondition verifies the invoice lookup through the member's account.
func TestAccountIDCondition(t *testing.T) {
	accountID := uint(42)
	memberID := uint(7)
	members := fakeMembers{memberID: {DTO: model.DTO{ID: memberID}, AccountId: accountID}}
	invoices := fakeInvoices{byAccount: map[uint][]model.Invoice{accountID: {{AccountId: &accountID}}}}
	e := NewEvaluator(members, invoices)
	bc := BookingContext{MemberID: &memberID, ShowDate: showDate}

	if !e.IsEligible(context.Background(), activeRule(1, 10, cond("accountid", "=", "42")), bc) {
		t.Fatalf("expected eligible for account with invoices")
	}
	if e.IsEligible(context.Background(), activeRule(1, 10, cond("accountid", "=", "43")), bc) {
		t.Fatalf("expected ineligible for another account id")
	}
	if e.IsEligible(context.Background(), activeRule(1, 10, cond("accountid", "=", "42")), BookingContext{ShowDate: showDate}) {
		t.Fatalf("expected ineligible for guest booking")
	}

	failing := NewEvaluator(members, fakeInvoices{err: errors.New("db down")})
	if failing.IsEligible(context.Background(), activeRule(1, 10, cond("accountid", "=", "42")), bc) {
		t.Fatalf("lookup failure must fail closed")
	}
}

// TestCompileResolvesKinds verifies stored promotions compile to field and operator kinds.
func TestCompileResolvesKinds(t *testing.T) {
	p := model.Promotion{
		Title:         "Weekend",
		IsActive:      true,
		DiscountLevel: level(15),
		Conditions: []model.PromotionCondition{
			{TargetField: "Seat", Operator: ">=", TargetValue: "2"},
			{TargetEntity: "food", TargetField: "price", Operator: "<", TargetValue: "50000"},
			{TargetField: "mood", Operator: "~", TargetValue: "x"},
		},
	}
	r := Compile(p)
	if r.Conditions[0].Field != FieldSeat || r.Conditions[0].Op != OpGte {
		t.Fatalf("unexpected first condition %+v", r.Conditions[0])
	}
	if r.Conditions[1].Field != FieldFoodPrice || !r.Conditions[1].IsFood() {
		t.Fatalf("unexpected food condition %+v", r.Conditions[1])
	}
	if r.Conditions[2].Field != FieldUnknown || r.Conditions[2].Op != OpUnknown {
		t.Fatalf("unexpected unknown condition %+v", r.Conditions[2])
	}
	if !r.HasFoodCondition() {
		t.Fatalf("expected food condition detected")
	}
}

var errConnRefused = errors.New("connection refused")

type failingSource struct{}

func (failingSource) GetAllPromotions(context.Context) ([]model.Promotion, error) {
	return nil, errConnRefused
}

// TestLoadRulesWrapsSourceError verifies storage failures surface as a named error.
func TestLoadRulesWrapsSourceError(t *testing.T) {
	_, err := LoadRules(context.Background(), failingSource{})
	if !errors.Is(err, ErrPromotionsUnavailable) {
		t.Fatalf("expected ErrPromotionsUnavailable, got %v", err)
	}
	if !errors.Is(err, errConnRefused) {
		t.Fatalf("storage error not reachable through %v", err)
	}
	if cause := pkgerrors.Cause(err); cause != errConnRefused {
		t.Fatalf("Cause = %v, want the storage error", cause)
	}
}
