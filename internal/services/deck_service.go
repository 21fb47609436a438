package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mkravets/taskdeck/internal/deck"
	"github.com/mkravets/taskdeck/internal/models"
)

type deckServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewDeckService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) DeckService {
	return &deckServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *deckServiceImpl) CreateDeck(ctx context.Context, userID, title string) (*models.Deck, error) {
	deckUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate deck uuid")
		return nil, err
	}

	now := time.Now()
	d := &models.Deck{
		ID:          deckUUID.String(),
		UserID:      userID,
		Title:       title,
		NextSlideID: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const insertDeckQuery = `
INSERT INTO decks (id,
                   user_id,
                   title,
                   next_slide_id,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertDeckQuery,
		d.ID,
		d.UserID,
		d.Title,
		d.NextSlideID,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert deck")
		return nil, err
	}

	s.logger.Info().
		Str("deck_id", d.ID).
		Str("user_id", d.UserID).
		Msg("created deck")
	return d, nil
}

func (s *deckServiceImpl) GetDecks(ctx context.Context, userID string) ([]models.Deck, error) {
	const selectDecksQuery = `
SELECT id,
       title,
       next_slide_id,
       created_at,
       updated_at
FROM decks
WHERE user_id = $1
ORDER BY created_at
`
	rows, err := s.pgPool.Query(ctx, selectDecksQuery, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select decks")
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		d := models.Deck{UserID: userID}
		err = rows.Scan(
			&d.ID,
			&d.Title,
			&d.NextSlideID,
			&d.CreatedAt,
			&d.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan deck")
			return nil, err
		}
		decks = append(decks, d)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(decks)).
		Str("user_id", userID).
		Msg("fetched decks")
	return decks, nil
}

func (s *deckServiceImpl) GetSlides(ctx context.Context, deckID, userID string) ([]models.Slide, error) {
	d, err := s.loadDeck(ctx, deckID, userID)
	if err != nil {
		return nil, err
	}
	return d.Slides(), nil
}

func (s *deckServiceImpl) AppendSlide(ctx context.Context, params AppendSlideParams) ([]models.Slide, error) {
	if !models.KnownSlideType(params.SlideType) {
		return nil, ErrInvalidSlideType
	}

	d, err := s.loadDeck(ctx, params.DeckID, params.UserID)
	if err != nil {
		return nil, err
	}

	slide := d.Append(params.Title, params.Content, params.SlideType)
	s.logger.Debug().
		Str("deck_id", params.DeckID).
		Int("slide_id", slide.ID).
		Msg("appended slide")

	return s.saveDeck(ctx, params.DeckID, d, "appended slide")
}

func (s *deckServiceImpl) UpdateSlide(ctx context.Context, params UpdateSlideParams) ([]models.Slide, error) {
	if params.SlideType != nil && !models.KnownSlideType(*params.SlideType) {
		return nil, ErrInvalidSlideType
	}

	d, err := s.loadDeck(ctx, params.DeckID, params.UserID)
	if err != nil {
		return nil, err
	}

	d.Update(params.SlideID, deck.UpdateFields{
		Title:     params.Title,
		Content:   params.Content,
		SlideType: params.SlideType,
	})

	return s.saveDeck(ctx, params.DeckID, d, "updated slide")
}

func (s *deckServiceImpl) RemoveSlide(ctx context.Context, deckID, userID string, slideID int) ([]models.Slide, error) {
	d, err := s.loadDeck(ctx, deckID, userID)
	if err != nil {
		return nil, err
	}

	d.Remove(slideID)

	return s.saveDeck(ctx, deckID, d, "removed slide")
}

func (s *deckServiceImpl) MoveSlide(ctx context.Context, deckID, userID string, slideID int, dir deck.Direction) ([]models.Slide, error) {
	d, err := s.loadDeck(ctx, deckID, userID)
	if err != nil {
		return nil, err
	}

	d.Move(slideID, dir)

	return s.saveDeck(ctx, deckID, d, "moved slide")
}

// loadDeck pulls the deck row and its slide batch into a deck.Deck,
// which normalizes the stored order on the way in.
func (s *deckServiceImpl) loadDeck(ctx context.Context, deckID, userID string) (*deck.Deck, error) {
	var nextSlideID int

	const selectDeckQuery = `
SELECT next_slide_id
FROM decks
WHERE id = $1 AND user_id = $2
`
	err := s.pgPool.QueryRow(
		ctx,
		selectDeckQuery,
		deckID,
		userID,
	).Scan(&nextSlideID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("deck_id", deckID).
				Str("user_id", userID).
				Msg("deck not found")
			return nil, ErrDeckNotFound
		}

		s.logger.Error().
			Err(err).
			Str("deck_id", deckID).
			Msg("failed to select deck")
		return nil, err
	}

	const selectSlidesQuery = `
SELECT id,
       title,
       content,
       slide_type,
       slide_order
FROM slides
WHERE deck_id = $1
ORDER BY slide_order
`
	rows, err := s.pgPool.Query(ctx, selectSlidesQuery, deckID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("deck_id", deckID).
			Msg("failed to select slides")
		return nil, err
	}
	defer rows.Close()

	var slides []models.Slide
	for rows.Next() {
		slide := models.Slide{DeckID: deckID}
		err = rows.Scan(
			&slide.ID,
			&slide.Title,
			&slide.Content,
			&slide.SlideType,
			&slide.Order,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan slide")
			return nil, err
		}
		slides = append(slides, slide)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Str("deck_id", deckID).
		Int("count", len(slides)).
		Msg("loaded deck")
	return deck.New(slides, nextSlideID), nil
}

// saveDeck writes the whole slide batch back in one transaction,
// last write wins. The deck's counter is persisted with it so a
// retired slide ID can never be reissued by a later session.
func (s *deckServiceImpl) saveDeck(ctx context.Context, deckID string, d *deck.Deck, msg string) ([]models.Slide, error) {
	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const deleteSlidesQuery = `
DELETE FROM slides
WHERE deck_id = $1
`
	_, err = tx.Exec(ctx, deleteSlidesQuery, deckID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("deck_id", deckID).
			Msg("failed to delete slides")
		return nil, err
	}

	const insertSlideQuery = `
INSERT INTO slides (deck_id,
                    id,
                    title,
                    content,
                    slide_type,
                    slide_order)
VALUES ($1, $2, $3, $4, $5, $6)
`
	slides := d.Slides()
	for _, slide := range slides {
		_, err = tx.Exec(
			ctx,
			insertSlideQuery,
			deckID,
			slide.ID,
			slide.Title,
			slide.Content,
			slide.SlideType,
			slide.Order,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("deck_id", deckID).
				Int("slide_id", slide.ID).
				Msg("failed to insert slide")
			return nil, err
		}
	}

	const updateDeckQuery = `
UPDATE decks
SET next_slide_id = $1,
    updated_at = $2
WHERE id = $3
`
	_, err = tx.Exec(ctx, updateDeckQuery, d.NextID(), time.Now(), deckID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("deck_id", deckID).
			Msg("failed to update deck")
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Str("deck_id", deckID).
		Int("count", len(slides)).
		Msg(msg)
	return slides, nil
}
