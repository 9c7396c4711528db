package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eqprent/equipment-rental-backend/internal/auth"
	"github.com/eqprent/equipment-rental-backend/internal/booking"
	bookingHttp "github.com/eqprent/equipment-rental-backend/internal/booking/http"
	"github.com/eqprent/equipment-rental-backend/internal/equipment"
	equipmentHttp "github.com/eqprent/equipment-rental-backend/internal/equipment/http"
	"github.com/eqprent/equipment-rental-backend/internal/file"
	fileHttp "github.com/eqprent/equipment-rental-backend/internal/file/http"
	"github.com/eqprent/equipment-rental-backend/internal/payment"
	paymentHttp "github.com/eqprent/equipment-rental-backend/internal/payment/http"
	"github.com/eqprent/equipment-rental-backend/internal/transaction"
	transactionHttp "github.com/eqprent/equipment-rental-backend/internal/transaction/http"
	"github.com/eqprent/equipment-rental-backend/internal/user"
	userHttp "github.com/eqprent/equipment-rental-backend/internal/user/http"
)

// Config carries the services and settings the router assembles handlers from.
type Config struct {
	IsProduction  bool
	ProdOrigins   string
	PublicBaseURL string
	UploadDir     string

	UserService        user.Service
	EquipmentService   equipment.Service
	BookingService     booking.Service
	PaymentService     payment.Service
	TransactionService transaction.Service
	FileService        file.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Uploaded images are served directly from local storage.
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// vendorMiddleware: Further checks if the authenticated user is a vendor.
	vendorMiddleware := RequireVendor(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	equipmentHandler := equipmentHttp.NewHandler(cfg.EquipmentService, cfg.BookingService, cfg.PublicBaseURL)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService)
	transactionHandler := transactionHttp.NewHandler(cfg.TransactionService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)

	// Register API routes under /api
	api := r.Group("/api")
	{
		userHttp.RegisterRoutes(api, userHandler, authMiddleware)
		equipmentHttp.RegisterRoutes(api, equipmentHandler, authMiddleware, vendorMiddleware)
		bookingHttp.RegisterRoutes(api, bookingHandler, authMiddleware)
		paymentHttp.RegisterRoutes(api, paymentHandler, authMiddleware)
		transactionHttp.RegisterRoutes(api, transactionHandler, authMiddleware)
		fileHttp.RegisterRoutes(api, fileHandler, authMiddleware)
	}

	return r
}
