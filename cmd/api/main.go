package main

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/IcaroDrumond17/onhappy/internal/config"
	"github.com/IcaroDrumond17/onhappy/internal/domain/model"
	"github.com/IcaroDrumond17/onhappy/internal/handler"
	"github.com/IcaroDrumond17/onhappy/internal/infra/db"
	infraRepo "github.com/IcaroDrumond17/onhappy/internal/infra/repository"
	"github.com/IcaroDrumond17/onhappy/internal/server"
	"github.com/IcaroDrumond17/onhappy/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(cfg config.Config) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 60 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(user model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.TypeUser),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもよい（本番は環境変数だけ）
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Order{},
		&model.Notification{},
	); err != nil {
		logger.Error("migrate failed", slog.Any("error", err))
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	notificationRepo := infraRepo.NewNotificationGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := newJWTIssuer(cfg)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, verifier, issuer, logger)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, logger)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, logger)

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	orderH := handler.NewOrderHandler(orderUC)
	notificationH := handler.NewNotificationHandler(notificationUC)

	//Server起動
	addr := ":" + cfg.Port

	e := server.New(cfg, logger, authH, orderH, notificationH)
	if err := server.Start(e, addr); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
