package promotion

import (
	"cinema_booking/model"
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrPromotionsUnavailable is returned when promotion definitions cannot be loaded.
var ErrPromotionsUnavailable = errors.New("promotion definitions unavailable")

// UnavailableError matches ErrPromotionsUnavailable and keeps the storage
// error reachable through Unwrap and Cause.
type UnavailableError struct {
	cause error
}

func (e *UnavailableError) Error() string {
	return ErrPromotionsUnavailable.Error() + ": " + e.cause.Error()
}

func (e *UnavailableError) Is(target error) bool { return target == ErrPromotionsUnavailable }

func (e *UnavailableError) Unwrap() error { return e.cause }

func (e *UnavailableError) Cause() error { return e.cause }

type Condition struct {
	Entity string
	Field  FieldKind
	Op     OperatorKind
	Value  string
}

// IsFood reports whether the condition is evaluated per food line.
func (c Condition) IsFood() bool {
	return c.Field == FieldFoodPrice || c.Field == FieldFoodName ||
		strings.EqualFold(strings.TrimSpace(c.Entity), EntityFood)
}

// Rule is a promotion with its conditions resolved to field and operator kinds.
type Rule struct {
	ID            uint
	Title         string
	IsActive      bool
	StartTime     time.Time
	EndTime       time.Time
	DiscountLevel *float64
	Conditions    []Condition
}

func Compile(p model.Promotion) Rule {
	r := Rule{
		ID:            p.ID,
		Title:         p.Title,
		IsActive:      p.IsActive,
		StartTime:     p.StartTime,
		EndTime:       p.EndTime,
		DiscountLevel: p.DiscountLevel,
		Conditions:    make([]Condition, 0, len(p.Conditions)),
	}
	for _, c := range p.Conditions {
		r.Conditions = append(r.Conditions, Condition{
			Entity: c.TargetEntity,
			Field:  ParseField(c.TargetEntity, c.TargetField),
			Op:     ParseOperator(c.Operator),
			Value:  c.TargetValue,
		})
	}
	return r
}

func CompileAll(promotions []model.Promotion) []Rule {
	rules := make([]Rule, 0, len(promotions))
	for _, p := range promotions {
		rules = append(rules, Compile(p))
	}
	return rules
}

// Source is the promotion storage collaborator.
type Source interface {
	GetAllPromotions(ctx context.Context) ([]model.Promotion, error)
}

// LoadRules reads every promotion once and compiles it for evaluation.
func LoadRules(ctx context.Context, src Source) ([]Rule, error) {
	promotions, err := src.GetAllPromotions(ctx)
	if err != nil {
		return nil, &UnavailableError{cause: errors.WithMessage(err, "load promotions")}
	}
	return CompileAll(promotions), nil
}

// ActiveAt checks the status flag, the [StartTime, EndTime) window and
// the presence of a discount level.
func (r Rule) ActiveAt(t time.Time) bool {
	if !r.IsActive || r.DiscountLevel == nil {
		return false
	}
	return !t.Before(r.StartTime) && t.Before(r.EndTime)
}

func (r Rule) Discount() float64 {
	if r.DiscountLevel == nil {
		return 0
	}
	return *r.DiscountLevel
}

func (r Rule) HasFoodCondition() bool {
	for _, c := range r.Conditions {
		if c.IsFood() {
			return true
		}
	}
	return false
}
