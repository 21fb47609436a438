package models

import "time"

const (
	SlideTypeTitle        = "title"
	SlideTypeContent      = "content"
	SlideTypeImage        = "image"
	SlideTypeBulletPoints = "bullet-points"
	SlideTypeQuote        = "quote"
	SlideTypeConclusion   = "conclusion"
)

// KnownSlideType reports whether t is one of the enumerated slide types.
func KnownSlideType(t string) bool {
	switch t {
	case SlideTypeTitle, SlideTypeContent, SlideTypeImage,
		SlideTypeBulletPoints, SlideTypeQuote, SlideTypeConclusion:
		return true
	}
	return false
}

// Slide is one element of a deck. ID is unique within the owning
// deck and never reused; Order is 1-based and kept contiguous by
// the deck package.
type Slide struct {
	ID        int
	DeckID    string
	Title     string
	Content   string
	SlideType string
	Order     int
}

type Deck struct {
	ID          string
	UserID      string
	Title       string
	NextSlideID int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
