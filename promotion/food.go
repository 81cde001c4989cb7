package promotion

import (
	"strconv"
	"strings"
	"time"
)

type FoodSelection struct {
	FoodID    uint
	Name      string
	Quantity  int
	UnitPrice float64
}

// FoodPriceLine is a priced food line. PromotionName is nil when no
// promotion matched the line.
type FoodPriceLine struct {
	FoodID        uint
	Name          string
	Quantity      int
	UnitPrice     float64
	OriginalPrice float64
	Price         float64
	PromotionID   *uint
	PromotionName *string
}

// EligibleFoodPromotions keeps the rules that target food and are active at the given instant.
func EligibleFoodPromotions(rules []Rule, foods []FoodSelection, at time.Time) []Rule {
	if len(foods) == 0 {
		return nil
	}
	var eligible []Rule
	for _, r := range rules {
		if r.HasFoodCondition() && r.ActiveAt(at) {
			eligible = append(eligible, r)
		}
	}
	return eligible
}

// ApplyFoodPromotionsToFoods prices each line with the first rule whose
// food conditions all hold for it.
func ApplyFoodPromotionsToFoods(foods []FoodSelection, rules []Rule) []FoodPriceLine {
	lines := make([]FoodPriceLine, 0, len(foods))
	for _, f := range foods {
		original := f.UnitPrice * float64(f.Quantity)
		line := FoodPriceLine{
			FoodID:        f.FoodID,
			Name:          f.Name,
			Quantity:      f.Quantity,
			UnitPrice:     f.UnitPrice,
			OriginalPrice: original,
			Price:         original,
		}
		for i := range rules {
			if !matchesFood(rules[i], f) {
				continue
			}
			id, title := rules[i].ID, rules[i].Title
			line.Price = applyPercent(original, rules[i].Discount())
			line.PromotionID = &id
			line.PromotionName = &title
			break
		}
		lines = append(lines, line)
	}
	return lines
}

func matchesFood(r Rule, f FoodSelection) bool {
	matched := false
	for _, c := range r.Conditions {
		if !c.IsFood() {
			continue
		}
		if !evaluateFood(c, f) {
			return false
		}
		matched = true
	}
	return matched
}

func evaluateFood(c Condition, f FoodSelection) bool {
	if c.Op == OpUnknown {
		return false
	}
	value := strings.TrimSpace(c.Value)
	switch c.Field {
	case FieldFoodPrice:
		target, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return true
		}
		return compareFloat(c.Op, f.UnitPrice, target)
	case FieldFoodName:
		return c.Op == OpEq && f.Name == value
	}
	return false
}

func applyPercent(amount, percent float64) float64 {
	discounted := amount - amount*percent/100
	if discounted < 0 {
		return 0
	}
	return discounted
}
