package database

import (
	"cinema_booking/constants"
	"cinema_booking/model"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func ptr(v float64) *float64 { return &v }

// SeedData creates reference rows when they are missing; existing rows are
// left untouched.
func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	if err != nil {
		log.Error().Err(err).Msg("hash seed password")
		return
	}
	admin := model.Account{Username: "Administration", Password: string(bytes), Active: true, Role: constants.ROLE_ADMIN}
	if err := db.Where(model.Account{Username: admin.Username}).FirstOrCreate(&admin).Error; err != nil {
		log.Error().Err(err).Str("username", admin.Username).Msg("seed account")
	}

	ranks := []model.Rank{
		{Name: "Bronze", RequiredPoints: 0, DiscountPercentage: 0, PointEarningPercentage: 1},
		{Name: "Silver", RequiredPoints: 100, DiscountPercentage: 5, PointEarningPercentage: 2},
		{Name: "Gold", RequiredPoints: 500, DiscountPercentage: 10, PointEarningPercentage: 3},
	}
	for _, rank := range ranks {
		if err := db.Where(model.Rank{Name: rank.Name}).FirstOrCreate(&rank).Error; err != nil {
			log.Error().Err(err).Str("rank", rank.Name).Msg("seed rank")
		}
	}

	seatTypes := []model.SeatType{
		{Name: "NORMAL", PricePercent: 100},
		{Name: "VIP", PricePercent: 120},
		{Name: "COUPLE", PricePercent: 200},
	}
	for i := range seatTypes {
		if err := db.Where(model.SeatType{Name: seatTypes[i].Name}).FirstOrCreate(&seatTypes[i]).Error; err != nil {
			log.Error().Err(err).Str("seatType", seatTypes[i].Name).Msg("seed seat type")
		}
	}

	foods := []model.Food{
		{Name: "Popcorn", Price: 45000, IsActive: true},
		{Name: "Pizza", Price: 100000, IsActive: true},
		{Name: "Nachos", Price: 60000, IsActive: true},
		{Name: "Coke", Price: 30000, IsActive: true},
	}
	for _, food := range foods {
		if err := db.Where(model.Food{Name: food.Name}).FirstOrCreate(&food).Error; err != nil {
			log.Error().Err(err).Str("food", food.Name).Msg("seed food")
		}
	}

	var seatCount int64
	db.Model(&model.Seat{}).Count(&seatCount)
	if seatCount == 0 && seatTypes[0].ID > 0 {
		var seats []model.Seat
		for r, row := range []string{"A", "B", "C", "D", "E"} {
			for col := 1; col <= 10; col++ {
				st := seatTypes[0]
				switch {
				case r == 4:
					st = seatTypes[2]
				case r >= 2:
					st = seatTypes[1]
				}
				seats = append(seats, model.Seat{Row: row, Column: col, SeatTypeId: st.ID})
			}
		}
		if err := db.Omit("SeatType").Create(&seats).Error; err != nil {
			log.Error().Err(err).Msg("seed seats")
		}
	}

	movie := model.Movie{Title: "Lật Mặt 7", TitleEnglish: "Face Off 7", Duration: 138}
	if err := db.Where(model.Movie{Title: movie.Title}).FirstOrCreate(&movie).Error; err != nil {
		log.Error().Err(err).Msg("seed movie")
		return
	}
	var showtimeCount int64
	db.Model(&model.Showtime{}).Count(&showtimeCount)
	if showtimeCount == 0 {
		tomorrow := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
		for i, hour := range []int{10, 14, 19} {
			st := model.Showtime{
				PublicCode: fmt.Sprintf("ST-%03d", i+1),
				StartTime:  tomorrow.Add(time.Duration(hour) * time.Hour),
				Price:      90000,
				MovieId:    movie.ID,
			}
			if err := db.Omit("Movie").Create(&st).Error; err != nil {
				log.Error().Err(err).Msg("seed showtime")
			}
		}
	}

	now := time.Now()
	promotions := []model.Promotion{
		{
			Title:         "Group of four",
			Description:   "10% off when booking four seats or more",
			IsActive:      true,
			StartTime:     now.AddDate(0, -1, 0),
			EndTime:       now.AddDate(1, 0, 0),
			DiscountLevel: ptr(10),
			Conditions: []model.PromotionCondition{
				{TargetField: "seat", Operator: ">=", TargetValue: "4"},
			},
		},
		{
			Title:         "Premium pair",
			Description:   "15% off premium seats",
			IsActive:      true,
			StartTime:     now.AddDate(0, -1, 0),
			EndTime:       now.AddDate(1, 0, 0),
			DiscountLevel: ptr(15),
			Conditions: []model.PromotionCondition{
				{TargetField: "pricepercent", Operator: ">=", TargetValue: "120"},
				{TargetField: "seat", Operator: ">=", TargetValue: "2"},
			},
		},
		{
			Title:         "Pizza deal",
			Description:   "20% off pizza",
			IsActive:      true,
			StartTime:     now.AddDate(0, -1, 0),
			EndTime:       now.AddDate(1, 0, 0),
			DiscountLevel: ptr(20),
			Conditions: []model.PromotionCondition{
				{TargetEntity: "food", TargetField: "name", Operator: "=", TargetValue: "Pizza"},
			},
		},
	}
	for _, p := range promotions {
		var existing model.Promotion
		if err := db.Where("title = ?", p.Title).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			log.Error().Err(err).Str("promotion", p.Title).Msg("seed promotion")
		}
	}
}
