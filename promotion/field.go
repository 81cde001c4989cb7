package promotion

import (
	"strings"
	"time"
)

// FieldKind is the closed set of context fields a condition can target.
type FieldKind int

const (
	FieldUnknown FieldKind = iota
	FieldSeat
	FieldTypeName
	FieldMovieName
	FieldMovieNameEnglish
	FieldShowDate
	FieldPricePercent
	FieldAccountID
	FieldFoodPrice
	FieldFoodName
)

// EntityFood marks a condition evaluated per food line instead of per booking.
const EntityFood = "food"

var fieldNames = map[FieldKind]string{
	FieldSeat:             "seat",
	FieldTypeName:         "typename",
	FieldMovieName:        "moviename",
	FieldMovieNameEnglish: "movienameenglish",
	FieldShowDate:         "showdate",
	FieldPricePercent:     "pricepercent",
	FieldAccountID:        "accountid",
	FieldFoodPrice:        "foodprice",
	FieldFoodName:         "foodname",
}

func (f FieldKind) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseField resolves a stored TargetEntity/TargetField pair.
func ParseField(entity, field string) FieldKind {
	f := strings.ToLower(strings.TrimSpace(field))
	switch f {
	case "foodprice":
		return FieldFoodPrice
	case "foodname":
		return FieldFoodName
	}

	if strings.EqualFold(strings.TrimSpace(entity), EntityFood) {
		switch f {
		case "price", "unitprice":
			return FieldFoodPrice
		case "name", "food":
			return FieldFoodName
		}
		return FieldUnknown
	}

	switch f {
	case "seat":
		return FieldSeat
	case "typename":
		return FieldTypeName
	case "moviename":
		return FieldMovieName
	case "movienameenglish":
		return FieldMovieNameEnglish
	case "showdate":
		return FieldShowDate
	case "pricepercent":
		return FieldPricePercent
	case "accountid":
		return FieldAccountID
	}
	return FieldUnknown
}

// OperatorKind is the closed set of comparison operators.
type OperatorKind int

const (
	OpUnknown OperatorKind = iota
	OpEq
	OpGte
	OpGt
	OpLte
	OpLt
)

func (o OperatorKind) String() string {
	switch o {
	case OpEq:
		return "="
	case OpGte:
		return ">="
	case OpGt:
		return ">"
	case OpLte:
		return "<="
	case OpLt:
		return "<"
	}
	return "?"
}

func ParseOperator(s string) OperatorKind {
	switch strings.TrimSpace(s) {
	case "=":
		return OpEq
	case ">=":
		return OpGte
	case ">":
		return OpGt
	case "<=":
		return OpLte
	case "<":
		return OpLt
	}
	return OpUnknown
}

func compareFloat(op OperatorKind, left, right float64) bool {
	switch op {
	case OpEq:
		return left == right
	case OpGte:
		return left >= right
	case OpGt:
		return left > right
	case OpLte:
		return left <= right
	case OpLt:
		return left < right
	}
	return false
}

func compareInt(op OperatorKind, left, right int) bool {
	switch op {
	case OpEq:
		return left == right
	case OpGte:
		return left >= right
	case OpGt:
		return left > right
	case OpLte:
		return left <= right
	case OpLt:
		return left < right
	}
	return false
}

// compareDate compares calendar days, ignoring time of day.
func compareDate(op OperatorKind, left, right time.Time) bool {
	l := dateOnly(left)
	r := dateOnly(right)
	switch op {
	case OpEq:
		return l.Equal(r)
	case OpGte:
		return !l.Before(r)
	case OpGt:
		return l.After(r)
	case OpLte:
		return !l.After(r)
	case OpLt:
		return l.Before(r)
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", time.RFC3339}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
