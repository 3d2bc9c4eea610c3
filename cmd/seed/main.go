package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/IcaroDrumond17/onhappy/internal/config"
	"github.com/IcaroDrumond17/onhappy/internal/domain/model"
	"github.com/IcaroDrumond17/onhappy/internal/infra/db"
	"github.com/IcaroDrumond17/onhappy/internal/usecase"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// 動作確認用のユーザーとサンプル注文を入れる。
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Order{}, &model.Notification{}); err != nil {
		logger.Error("migrate failed", slog.Any("error", err))
		os.Exit(1)
	}

	hasher := usecase.NewBcryptPasswordHasher(12)
	hash, err := hasher.Hash("1234")
	if err != nil {
		logger.Error("hash failed", slog.Any("error", err))
		os.Exit(1)
	}

	users := []model.User{
		{Name: "Icaro Default", Email: "default@teste.com", PasswordHash: hash, TypeUser: model.RoleDefault},
		{Name: "Icaro Admin", Email: "admin@teste.com", PasswordHash: hash, TypeUser: model.RoleAdmin},
	}

	destinations := []string{"Belo Horizonte", "São Paulo", "Rio de Janeiro", "Ipatinga"}

	for i := range users {
		u := &users[i]

		//既にあれば使い回す
		err := gormDB.Where("email = ?", u.Email).First(u).Error
		if err == gorm.ErrRecordNotFound {
			err = gormDB.Create(u).Error
		}
		if err != nil {
			logger.Error("seed user failed", slog.String("email", u.Email), slog.Any("error", err))
			os.Exit(1)
		}

		//ユーザーごとにサンプル注文
		for j := 0; j < 10; j++ {
			dep := time.Now().AddDate(0, 0, 7+j)
			order := model.Order{
				UserID:        u.ID,
				RequestorName: u.Name,
				Destination:   destinations[j%len(destinations)],
				DepartureDate: dep,
				ReturnDate:    dep.AddDate(0, 0, 3),
				Status:        model.OrderStatusRequested,
			}
			if err := gormDB.Create(&order).Error; err != nil {
				logger.Error("seed order failed", slog.Any("error", err))
				os.Exit(1)
			}
		}

		fmt.Printf("seeded %s (id=%d)\n", u.Email, u.ID)
	}
}
