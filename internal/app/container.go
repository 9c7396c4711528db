package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eqprent/equipment-rental-backend/internal/api"
	"github.com/eqprent/equipment-rental-backend/internal/auth"
	"github.com/eqprent/equipment-rental-backend/internal/booking"
	"github.com/eqprent/equipment-rental-backend/internal/config"
	"github.com/eqprent/equipment-rental-backend/internal/equipment"
	"github.com/eqprent/equipment-rental-backend/internal/file"
	"github.com/eqprent/equipment-rental-backend/internal/notify"
	"github.com/eqprent/equipment-rental-backend/internal/payment"
	"github.com/eqprent/equipment-rental-backend/internal/pkg/storage"
	"github.com/eqprent/equipment-rental-backend/internal/transaction"
	"github.com/eqprent/equipment-rental-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	var mailer notify.Mailer = notify.NoopMailer{}
	if cfg.SendGridAPIKey != "" {
		mailer = notify.NewSendGridMailer(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	}

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage failed: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher)

	// Equipment Module
	equipmentRepo := equipment.NewPgxRepository(pool)
	equipmentService := equipment.NewService(equipmentRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, equipmentService, userService, mailer)

	// Transaction Module
	txnRepo := transaction.NewPgxRepository(pool)
	txnService := transaction.NewService(txnRepo)

	// Payment Module. Without gateway credentials the endpoints answer 503.
	var gateway payment.Gateway
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		gateway = payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}
	paymentService := payment.NewService(gateway, cfg.RazorpayKeySecret, bookingService, txnService)

	// File Module
	fileService := file.NewService(store)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		PublicBaseURL:      cfg.PublicBaseURL,
		UploadDir:          store.BasePath(),
		UserService:        userService,
		EquipmentService:   equipmentService,
		BookingService:     bookingService,
		PaymentService:     paymentService,
		TransactionService: txnService,
		FileService:        fileService,
		JWTManager:         jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
