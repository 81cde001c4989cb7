package promotion

import (
	"testing"
	"time"
)

func foodRule(id uint, title string, discount float64, conds ...Condition) Rule {
	r := activeRule(id, discount, conds...)
	r.Title = title
	return r
}

// TestFoodNameCondition verifies a named food is discounted while others keep their price.
func TestFoodNameCondition(t *testing.T) {
	rules := []Rule{foodRule(1, "Pizza Day", 20, Condition{Entity: EntityFood, Field: ParseField("food", "foodname"), Op: OpEq, Value: "Pizza"})}
	foods := []FoodSelection{
		{FoodID: 1, Name: "Pizza", Quantity: 1, UnitPrice: 100},
		{FoodID: 2, Name: "Nachos", Quantity: 1, UnitPrice: 100},
	}

	eligible := EligibleFoodPromotions(rules, foods, showDate)
	lines := ApplyFoodPromotionsToFoods(foods, eligible)

	if lines[0].Price != 80 {
		t.Fatalf("expected pizza price 80, got %v", lines[0].Price)
	}
	if lines[0].PromotionName == nil || *lines[0].PromotionName != "Pizza Day" {
		t.Fatalf("expected promotion name on pizza line, got %v", lines[0].PromotionName)
	}
	if lines[1].Price != 100 || lines[1].PromotionName != nil {
		t.Fatalf("expected nachos untouched, got %+v", lines[1])
	}
}

// TestFoodPriceConditionFirstMatchWins verifies iteration order decides between matching rules.
func TestFoodPriceConditionFirstMatchWins(t *testing.T) {
	priceUnder := Condition{Entity: EntityFood, Field: FieldFoodPrice, Op: OpLt, Value: "60000"}
	rules := []Rule{
		foodRule(1, "Cheap snacks", 10, priceUnder),
		foodRule(2, "Bigger cut", 50, priceUnder),
	}
	foods := []FoodSelection{
		{FoodID: 1, Name: "Popcorn", Quantity: 2, UnitPrice: 50000},
		{FoodID: 2, Name: "Combo", Quantity: 1, UnitPrice: 90000},
	}

	lines := ApplyFoodPromotionsToFoods(foods, rules)
	if lines[0].Price != 90000 || *lines[0].PromotionID != 1 {
		t.Fatalf("expected first rule applied to popcorn, got %+v", lines[0])
	}
	if lines[0].OriginalPrice != 100000 {
		t.Fatalf("expected original line price 100000, got %v", lines[0].OriginalPrice)
	}
	if lines[1].Price != 90000 || lines[1].PromotionID != nil {
		t.Fatalf("expected combo untouched, got %+v", lines[1])
	}
}

// TestEligibleFoodPromotionsFilters verifies only active food-targeted rules are kept.
func TestEligibleFoodPromotionsFilters(t *testing.T) {
	food := Condition{Entity: EntityFood, Field: FieldFoodName, Op: OpEq, Value: "Pizza"}
	inactive := foodRule(2, "off", 30, food)
	inactive.IsActive = false
	rules := []Rule{
		foodRule(1, "seat only", 10, cond("seat", ">=", "1")),
		inactive,
		foodRule(3, "pizza", 20, food),
	}
	foods := []FoodSelection{{FoodID: 1, Name: "Pizza", Quantity: 1, UnitPrice: 100}}

	got := EligibleFoodPromotions(rules, foods, showDate)
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected only rule 3, got %+v", got)
	}
	if got := EligibleFoodPromotions(rules, nil, showDate); len(got) != 0 {
		t.Fatalf("expected no rules without foods, got %+v", got)
	}
	if got := EligibleFoodPromotions(rules, foods, showDate.Add(30*24*time.Hour)); len(got) != 0 {
		t.Fatalf("expected no rules outside window, got %+v", got)
	}
}

// TestFoodUnknownFieldNeverMatches verifies a food rule with an unknown field leaves the line alone.
func TestFoodUnknownFieldNeverMatches(t *testing.T) {
	rules := []Rule{foodRule(1, "broken", 20, Condition{Entity: EntityFood, Field: ParseField("food", "calories"), Op: OpLt, Value: "300"})}
	lines := ApplyFoodPromotionsToFoods([]FoodSelection{{FoodID: 1, Name: "Salad", Quantity: 1, UnitPrice: 40}}, rules)
	if lines[0].Price != 40 || lines[0].PromotionName != nil {
		t.Fatalf("expected untouched line, got %+v", lines[0])
	}
}
