package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mkravets/taskdeck/internal/realtime"
	"github.com/mkravets/taskdeck/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTaskSummary(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleCompleteTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleCreateDeck(c *gin.Context)
	HandleGetDecks(c *gin.Context)
	HandleGetSlides(c *gin.Context)
	HandleAppendSlide(c *gin.Context)
	HandleUpdateSlide(c *gin.Context)
	HandleRemoveSlide(c *gin.Context)
	HandleMoveSlide(c *gin.Context)

	HandleWebSocket(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	auth     services.AuthService
	sessions services.SessionService
	tasks    services.TaskService
	decks    services.DeckService
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	sessionService services.SessionService,
	taskService services.TaskService,
	deckService services.DeckService,
	hub *realtime.Hub,
) Handler {
	return &handlerImpl{
		logger:   logger,
		auth:     authService,
		sessions: sessionService,
		tasks:    taskService,
		decks:    deckService,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are enforced by the CORS layer in front of
			// the router.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}
