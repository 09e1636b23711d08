package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/auth"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/cache"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/config"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/ledger"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/postback"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/prize"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/rewards"
	"github.com/VirtualStudios6/VirtualGift-App-sub000/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, balanceCache *cache.BalanceCache) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	ledgerRepo := ledger.NewRepository(db, cfg.WelcomeBonusPoints)
	prizeRepo := prize.NewRepository(db)
	userRepo := user.NewRepository(db)

	userSvc := user.NewService(userRepo, cfg.JWTSecret)
	rewardsSvc := rewards.NewService(ledgerRepo, balanceCache, cfg.AdRewardPoints, cfg.AdMinWatchSeconds, cfg.DailyRewardPoints)
	prizeSvc := prize.NewService(prizeRepo, ledgerRepo, balanceCache)

	userHandler := user.NewHandler(userSvc)
	ledgerHandler := ledger.NewHandler(ledgerRepo, balanceCache)
	rewardsHandler := rewards.NewHandler(rewardsSvc)
	prizeHandler := prize.NewHandler(prizeSvc)
	postbackHandler := postback.NewHandler(ledgerRepo, balanceCache, cfg.PostbackToken)

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/points", ledgerHandler.GetBalance)
		protected.GET("/points/history", ledgerHandler.GetHistory)
		protected.POST("/rewards/ad", rewardsHandler.WatchAd)
		protected.POST("/rewards/daily", rewardsHandler.ClaimDaily)
		protected.POST("/wheel/spin", rewardsHandler.SpinWheel)
		protected.GET("/prizes", prizeHandler.ListPrizes)
		protected.POST("/prizes/:prizeID/redeem", prizeHandler.Redeem)
		protected.GET("/redemptions", prizeHandler.MyRedemptions)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"))
	{
		admin.POST("/prizes", prizeHandler.CreatePrize)
	}

	// The offer network calls this from its servers; no session, rate-limited
	// per source IP.
	pb := router.Group("/postback")
	pb.Use(RateLimitMiddleware(20, 40))
	pb.Any("", postbackHandler.Handle)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.http.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
