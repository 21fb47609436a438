package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/mkravets/taskdeck/internal/config"
	v1 "github.com/mkravets/taskdeck/internal/delivery/http/v1"
	"github.com/mkravets/taskdeck/internal/realtime"
	"github.com/mkravets/taskdeck/internal/services"
	"github.com/mkravets/taskdeck/internal/taskview"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	// The browser UI is served from another origin, so CORS wraps
	// the whole router at the server level.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   httpCfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: corsHandler.Handler(router),
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT

	hub := realtime.NewHub(globalLogger)
	go hub.Run()

	authService := services.NewAuthService(
		globalLogger,
		globalPostgresPool,
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.AccessTokenTTL,
		jwtCfg.RefreshTokenTTL,
	)
	sessionService := services.NewSessionService(globalLogger, globalPostgresPool)
	taskService := services.NewTaskService(globalLogger, globalPostgresPool, taskview.SystemClock())
	deckService := services.NewDeckService(globalLogger, globalPostgresPool)

	v1Handler := v1.New(
		globalLogger,
		authService,
		sessionService,
		taskService,
		deckService,
		hub,
	)
	router = router.Group("/api/v1")

	authRouter := router.Group("/auth")
	authRouter.POST("/login", v1Handler.HandleLogin)
	authRouter.POST("/refresh", v1Handler.HandleRefresh)
	authRouter.POST("/register", v1Handler.HandleRegister)
	authRouter.POST("/logout", v1Handler.HandleAuthMiddleware, v1Handler.HandleLogout)

	taskRouter := router.Group("/tasks", v1Handler.HandleAuthMiddleware)
	taskRouter.POST("", v1Handler.HandleCreateTask)
	taskRouter.GET("", v1Handler.HandleGetTasks)
	taskRouter.GET("/summary", v1Handler.HandleGetTaskSummary)
	taskRouter.PATCH("/:id", v1Handler.HandleUpdateTask)
	taskRouter.POST("/:id/complete", v1Handler.HandleCompleteTask)
	taskRouter.DELETE("/:id", v1Handler.HandleDeleteTask)

	deckRouter := router.Group("/decks", v1Handler.HandleAuthMiddleware)
	deckRouter.POST("", v1Handler.HandleCreateDeck)
	deckRouter.GET("", v1Handler.HandleGetDecks)
	deckRouter.GET("/:id/slides", v1Handler.HandleGetSlides)
	deckRouter.POST("/:id/slides", v1Handler.HandleAppendSlide)
	deckRouter.PATCH("/:id/slides/:slideID", v1Handler.HandleUpdateSlide)
	deckRouter.DELETE("/:id/slides/:slideID", v1Handler.HandleRemoveSlide)
	deckRouter.POST("/:id/slides/:slideID/move", v1Handler.HandleMoveSlide)

	router.GET("/ws", v1Handler.HandleAuthMiddleware, v1Handler.HandleWebSocket)
}
