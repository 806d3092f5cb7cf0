package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "match-service/docs"
	"match-service/internal/adapters/kafka"
	"match-service/internal/api/handlers"
	"match-service/internal/api/middleware"
	"match-service/internal/config"
	"match-service/internal/ratelimit"
	"match-service/internal/services"
	"match-service/internal/uow"
)

type Router struct {
	engine         *gin.Engine
	authHandler    *handlers.AuthHandler
	memberHandler  *handlers.MemberHandler
	likeHandler    *handlers.LikeHandler
	messageHandler *handlers.MessageHandler
	rateLimitMW    *middleware.RateLimitMiddleware
	authMW         *middleware.AuthMiddleware
}

func NewRouter(
	db *gorm.DB,
	redisClient *redis.Client,
	photos services.PhotoStorage,
	events kafka.Publisher,
	cfg *config.Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	// Add middlewares
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogAPI())

	// One unit-of-work factory feeds every service; each request gets
	// its own transaction from it.
	uowFactory := uow.NewFactory(db)

	authService := services.NewAuthService(uowFactory, cfg.JWT.Secret, cfg.JWT.ExpirationTime)
	memberService := services.NewMemberService(uowFactory, photos)
	likeService := services.NewLikeService(uowFactory, events)
	messageService := services.NewMessageService(uowFactory, events)

	return &Router{
		engine:         engine,
		authHandler:    handlers.NewAuthHandler(authService),
		memberHandler:  handlers.NewMemberHandler(memberService),
		likeHandler:    handlers.NewLikeHandler(likeService),
		messageHandler: handlers.NewMessageHandler(messageService),
		rateLimitMW:    middleware.NewRateLimitMiddleware(ratelimit.NewLimiter(redisClient)),
		authMW:         middleware.NewAuthMiddleware(cfg.JWT.Secret),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")

	// Public routes
	auth := api.Group("/auth")
	auth.Use(r.rateLimitMW.RateLimitIP(20, time.Minute))
	{
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)
	}

	// Authenticated routes
	authed := api.Group("/")
	authed.Use(r.authMW.RequireAuth())
	authed.Use(r.rateLimitMW.RateLimit(100, time.Minute))
	{
		members := authed.Group("/members")
		{
			members.GET("", r.memberHandler.GetMembers)
			members.GET("/:id", r.memberHandler.GetMember)
			members.PUT("", r.memberHandler.UpdateMember)
			members.GET("/:id/photos", r.memberHandler.GetMemberPhotos)
			members.POST("/photos", r.memberHandler.AddPhoto)
			members.PUT("/photos/:photoId/main", r.memberHandler.SetMainPhoto)
			members.DELETE("/photos/:photoId", r.memberHandler.DeletePhoto)
		}

		likes := authed.Group("/likes")
		{
			likes.POST("/:targetMemberId", r.likeHandler.ToggleLike)
			likes.GET("/list", r.likeHandler.GetLikedIDs)
			likes.GET("", r.likeHandler.GetMemberLikes)
		}

		messages := authed.Group("/messages")
		{
			messages.POST("", r.messageHandler.CreateMessage)
			messages.GET("", r.messageHandler.GetMessages)
			messages.GET("/thread/:memberId", r.messageHandler.GetThread)
			messages.DELETE("/:id", r.messageHandler.DeleteMessage)
		}
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
