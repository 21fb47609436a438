package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/taskdeck/internal/deck"
	"github.com/mkravets/taskdeck/internal/models"
	"github.com/mkravets/taskdeck/internal/realtime"
	"github.com/mkravets/taskdeck/internal/services"
)

type deckResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type slideResponse struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	SlideType string `json:"slide_type"`
	Order     int    `json:"order"`
}

func newSlidesResponse(slides []models.Slide) []slideResponse {
	response := make([]slideResponse, len(slides))
	for i, slide := range slides {
		response[i] = slideResponse{
			ID:        slide.ID,
			Title:     slide.Title,
			Content:   slide.Content,
			SlideType: slide.SlideType,
			Order:     slide.Order,
		}
	}
	return response
}

type createDeckRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

func (h *handlerImpl) HandleCreateDeck(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req createDeckRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	d, err := h.decks.CreateDeck(c, userID, req.Title)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create deck")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusCreated, deckResponse{
		ID:        d.ID,
		Title:     d.Title,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	})
}

func (h *handlerImpl) HandleGetDecks(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	decks, err := h.decks.GetDecks(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to fetch decks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]deckResponse, len(decks))
	for i, d := range decks {
		response[i] = deckResponse{
			ID:        d.ID,
			Title:     d.Title,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetSlides(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	deckID := c.Param("id")
	slides, err := h.decks.GetSlides(c, deckID, userID)
	if err != nil {
		h.abortDeckError(c, err, "failed to fetch slides")
		return
	}

	c.JSON(http.StatusOK, newSlidesResponse(slides))
}

type appendSlideRequest struct {
	Title     string `json:"title" binding:"required,max=255"`
	Content   string `json:"content"`
	SlideType string `json:"slide_type" binding:"required"`
}

func (h *handlerImpl) HandleAppendSlide(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req appendSlideRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	deckID := c.Param("id")
	slides, err := h.decks.AppendSlide(c, services.AppendSlideParams{
		DeckID:    deckID,
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		SlideType: req.SlideType,
	})
	if err != nil {
		h.abortDeckError(c, err, "failed to append slide")
		return
	}

	h.hub.Notify(userID, realtime.Event{Type: realtime.EventDeckChanged, DeckID: deckID})
	c.JSON(http.StatusCreated, newSlidesResponse(slides))
}

type updateSlideRequest struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	SlideType *string `json:"slide_type,omitempty"`
}

func (h *handlerImpl) HandleUpdateSlide(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	slideID, ok := h.slideID(c)
	if !ok {
		return
	}

	var req updateSlideRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	deckID := c.Param("id")
	slides, err := h.decks.UpdateSlide(c, services.UpdateSlideParams{
		DeckID:    deckID,
		UserID:    userID,
		SlideID:   slideID,
		Title:     req.Title,
		Content:   req.Content,
		SlideType: req.SlideType,
	})
	if err != nil {
		h.abortDeckError(c, err, "failed to update slide")
		return
	}

	h.hub.Notify(userID, realtime.Event{Type: realtime.EventDeckChanged, DeckID: deckID})
	c.JSON(http.StatusOK, newSlidesResponse(slides))
}

func (h *handlerImpl) HandleRemoveSlide(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	slideID, ok := h.slideID(c)
	if !ok {
		return
	}

	deckID := c.Param("id")
	slides, err := h.decks.RemoveSlide(c, deckID, userID, slideID)
	if err != nil {
		h.abortDeckError(c, err, "failed to remove slide")
		return
	}

	h.hub.Notify(userID, realtime.Event{Type: realtime.EventDeckChanged, DeckID: deckID})
	c.JSON(http.StatusOK, newSlidesResponse(slides))
}

func (h *handlerImpl) HandleMoveSlide(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	slideID, ok := h.slideID(c)
	if !ok {
		return
	}

	dir, ok := deck.ParseDirection(c.Query("direction"))
	if !ok {
		h.logger.Warn().
			Str("direction", c.Query("direction")).
			Msg("invalid move direction")
		abort(c, newBadRequestError("direction must be up or down"))
		return
	}

	deckID := c.Param("id")
	slides, err := h.decks.MoveSlide(c, deckID, userID, slideID, dir)
	if err != nil {
		h.abortDeckError(c, err, "failed to move slide")
		return
	}

	h.hub.Notify(userID, realtime.Event{Type: realtime.EventDeckChanged, DeckID: deckID})
	c.JSON(http.StatusOK, newSlidesResponse(slides))
}

func (h *handlerImpl) slideID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("slideID"))
	if err != nil {
		h.logger.Warn().
			Str("slide_id", c.Param("slideID")).
			Msg("invalid slide id")
		abort(c, newBadRequestError("invalid slide id"))
		return 0, false
	}
	return id, true
}

func (h *handlerImpl) abortDeckError(c *gin.Context, err error, msg string) {
	h.logger.Error().
		Err(err).
		Msg(msg)
	switch {
	case errors.Is(err, services.ErrDeckNotFound):
		abort(c, newNotFoundError(services.ErrDeckNotFound.Error()))
	case errors.Is(err, services.ErrInvalidSlideType):
		abort(c, newBadRequestError(services.ErrInvalidSlideType.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
