package server

import (
	"log"
	"strings"
	"time"

	"gamehub/backend/internal/config"
	"gamehub/backend/internal/handler"
	"gamehub/backend/internal/middleware"
	"gamehub/backend/internal/repository"
	"gamehub/backend/internal/service"
	"gamehub/backend/pkg/mailer"
	"gamehub/backend/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client

	// AuthService is exposed for bootstrap seeding.
	AuthService service.AuthService
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mail mailer.Mailer) *Server {
	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		// Uploads are rejected but everything else keeps working.
		log.Printf("cloudinary storage disabled: %v", err)
		imageStorage = nil
	}

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewSearchService(meiliClient)

	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	gameRepo := repository.NewGameRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	guideRepo := repository.NewGuideRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	forumRepo := repository.NewForumRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	ratingSvc := service.NewRatingService(ratingRepo, userRepo)
	authSvc := service.NewAuthService(userRepo, imageStorage, mail, cfg.JWTSecret, cfg.JWTTTL, cfg.ResetTokenTTL)
	profileSvc := service.NewProfileService(userRepo, friendRepo, genreRepo, imageStorage, redisClient, cfg.ProfileCacheTTL)
	gameSvc := service.NewGameService(gameRepo, genreRepo, guideRepo, reviewRepo, searchSvc, imageStorage)
	newsSvc := service.NewNewsService(newsRepo, gameRepo, searchSvc, imageStorage)
	guideSvc := service.NewGuideService(guideRepo, gameRepo, userRepo, ratingSvc, searchSvc, imageStorage)
	reviewSvc := service.NewReviewService(reviewRepo, gameRepo, userRepo, ratingSvc)
	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	forumSvc := service.NewForumService(forumRepo, userRepo, notificationSvc)
	commentSvc := service.NewCommentService(commentRepo, likeRepo, newsRepo, guideRepo, reviewRepo, forumRepo, userRepo, ratingSvc, notificationSvc, redisClient, cfg.RateLimitGlobal)

	authHandler := handler.NewAuthHandler(authSvc)
	profileHandler := handler.NewProfileHandler(profileSvc, ratingSvc)
	gameHandler := handler.NewGameHandler(gameSvc)
	newsHandler := handler.NewNewsHandler(newsSvc)
	guideHandler := handler.NewGuideHandler(guideSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	forumHandler := handler.NewForumHandler(forumSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	setupCORS(router, cfg.AllowedOrigins)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/password/reset", authHandler.RequestPasswordReset)
			auth.POST("/password/reset/confirm", authHandler.ConfirmPasswordReset)
			auth.POST("/password/change", authMiddleware.RequireAuth(), authHandler.ChangePassword)
		}

		api.GET("/games", gameHandler.List)
		api.GET("/games/:slug", gameHandler.GetBySlug)
		api.GET("/games/:slug/reviews", reviewHandler.ListByGame)
		api.GET("/genres", gameHandler.ListGenres)

		api.GET("/news", newsHandler.List)
		api.GET("/news/:slug", newsHandler.GetBySlug)

		api.GET("/guides", guideHandler.List)
		api.GET("/guides/:slug", guideHandler.GetBySlug)

		api.GET("/forum/topics", forumHandler.ListTopics)
		api.GET("/forum/topics/:slug", forumHandler.GetTopic)

		api.GET("/comments", commentHandler.List)
		api.GET("/likes", commentHandler.LikeCounts)

		api.GET("/profiles/:username", profileHandler.GetByUsername)
		api.GET("/profiles/:username/friends", profileHandler.ListFriends)
		api.GET("/leaderboard", profileHandler.Leaderboard)

		authed := api.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			authed.GET("/profiles/me", profileHandler.GetMe)
			authed.PATCH("/profiles/me", profileHandler.UpdateMe)
			authed.POST("/friends", profileHandler.AddFriend)

			authed.POST("/guides", guideHandler.Create)
			authed.PUT("/guides/:slug", guideHandler.Update)
			authed.DELETE("/guides/:slug", guideHandler.Delete)

			authed.POST("/reviews", reviewHandler.Create)
			authed.PUT("/reviews/:id", reviewHandler.Update)
			authed.DELETE("/reviews/:id", reviewHandler.Delete)

			authed.POST("/forum/topics", forumHandler.CreateTopic)
			authed.POST("/forum/topics/:slug/posts", forumHandler.CreatePost)

			authed.POST("/comments", commentHandler.Create)
			authed.POST("/likes", commentHandler.CreateLike)

			authed.GET("/notifications", notificationHandler.List)
			authed.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			authed.POST("/notifications/:id/read", notificationHandler.MarkAsRead)
			authed.POST("/notifications/read-all", notificationHandler.MarkAllAsRead)

			staff := authed.Group("")
			staff.Use(authMiddleware.RequireStaff())
			{
				staff.POST("/games", gameHandler.Create)
				staff.PUT("/games/:slug", gameHandler.Update)
				staff.DELETE("/games/:slug", gameHandler.Delete)

				staff.POST("/genres", gameHandler.CreateGenre)
				staff.DELETE("/genres/:slug", gameHandler.DeleteGenre)

				staff.POST("/news", newsHandler.Create)
				staff.PUT("/news/:slug", newsHandler.Update)
				staff.DELETE("/news/:slug", newsHandler.Delete)
			}
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		AuthService: authSvc,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
