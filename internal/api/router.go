package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sewakantor/booking-backend/internal/auth"
	"github.com/sewakantor/booking-backend/internal/logging"
	"github.com/sewakantor/booking-backend/internal/media"
	mediaHttp "github.com/sewakantor/booking-backend/internal/media/http"
	"github.com/sewakantor/booking-backend/internal/promotion"
	promoHttp "github.com/sewakantor/booking-backend/internal/promotion/http"
	"github.com/sewakantor/booking-backend/internal/reservation"
	rsvHttp "github.com/sewakantor/booking-backend/internal/reservation/http"
	"github.com/sewakantor/booking-backend/internal/resource"
	resHttp "github.com/sewakantor/booking-backend/internal/resource/http"
	"github.com/sewakantor/booking-backend/internal/user"
	userHttp "github.com/sewakantor/booking-backend/internal/user/http"
)

// Config carries everything the router needs to assemble middleware and
// register each module's routes.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService        user.Service
	ResourceService    resource.Service
	ReservationService reservation.Service
	PromotionService   promotion.Service
	MediaService       media.Service

	JWTManager *auth.JWTManager
	Logger     *zap.Logger
}

// NewRouter initializes the HTTP router engine: middleware (CORS, request
// logging, recovery, auth) plus every module's routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logging.RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	resHandler := resHttp.NewHandler(cfg.ResourceService)
	rsvHandler := rsvHttp.NewHandler(cfg.ReservationService, cfg.UserService)
	promoHandler := promoHttp.NewHandler(cfg.PromotionService)
	mediaHandler := mediaHttp.NewHandler(cfg.MediaService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		resHttp.RegisterRoutes(v1, resHandler, authMiddleware, adminMiddleware)
		rsvHttp.RegisterRoutes(v1, rsvHandler, authMiddleware, adminMiddleware)
		promoHttp.RegisterRoutes(v1, promoHandler, authMiddleware, adminMiddleware)
		mediaHttp.RegisterRoutes(v1, mediaHandler, authMiddleware, adminMiddleware)
	}

	return r
}
