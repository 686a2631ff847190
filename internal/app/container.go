package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sewakantor/booking-backend/internal/api"
	"github.com/sewakantor/booking-backend/internal/auth"
	"github.com/sewakantor/booking-backend/internal/media"
	"github.com/sewakantor/booking-backend/internal/pkg/storage"
	"github.com/sewakantor/booking-backend/internal/pricing"
	"github.com/sewakantor/booking-backend/internal/promotion"
	"github.com/sewakantor/booking-backend/internal/reservation"
	"github.com/sewakantor/booking-backend/internal/resource"
	"github.com/sewakantor/booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StorageDir   string
	TaxRate      decimal.Decimal
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("init storage failed: %w", err)
	}

	engine := pricing.NewEngine(pricing.Config{TaxRate: cfg.TaxRate})

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Office Module
	resRepo := resource.NewPgxRepository(cfg.DBPool)
	resService := resource.NewService(resRepo)

	// Promotion Module
	promoRepo := promotion.NewPgxRepository(cfg.DBPool)
	promoService := promotion.NewService(promoRepo)

	// Reservation Module
	rsvRepo := reservation.NewPgxRepository(cfg.DBPool)
	rsvService := reservation.NewService(rsvRepo, resService, promoService, engine)

	// Media Module
	mediaRepo := media.NewPgxRepository(cfg.DBPool)
	mediaService := media.NewService(mediaRepo, resService, store)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		UserService:        userService,
		ResourceService:    resService,
		ReservationService: rsvService,
		PromotionService:   promoService,
		MediaService:       mediaService,
		JWTManager:         jwtManager,
		Logger:             cfg.Logger,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
