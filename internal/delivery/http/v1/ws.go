package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/taskdeck/internal/realtime"
)

// HandleWebSocket upgrades an authenticated request and keeps the
// connection subscribed to the user's change events until it drops.
func (h *handlerImpl) HandleWebSocket(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to upgrade websocket")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	client := realtime.NewClient(h.logger, h.hub, conn, userID)
	client.Serve()
}
