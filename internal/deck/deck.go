package deck

import (
	"sort"

	"github.com/mkravets/taskdeck/internal/models"
)

// Direction of a Move operation.
type Direction int

const (
	Up Direction = iota
	Down
)

// ParseDirection maps the wire value to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	}
	return 0, false
}

// Deck owns the slide sequence of one editing session and keeps the
// order invariant: after every operation the Order values of N
// slides are exactly 1..N with no duplicates or gaps, and slides
// the operation did not touch keep their relative positions.
//
// Slide IDs come from a counter that only ever increases, so a
// deleted slide's ID is never handed out again, no matter how
// removals and appends interleave.
type Deck struct {
	slides []models.Slide
	nextID int
}

// New builds a Deck from stored rows. Rows are ordered by their
// stored Order field (ties and gaps tolerated), then reindexed
// densely. The counter resumes from nextID, clamped up to
// max(ID)+1 so legacy rows whose stored counter lags behind their
// IDs cannot cause a collision.
func New(slides []models.Slide, nextID int) *Deck {
	owned := make([]models.Slide, len(slides))
	copy(owned, slides)

	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Order < owned[j].Order
	})

	for _, slide := range owned {
		if slide.ID >= nextID {
			nextID = slide.ID + 1
		}
	}
	if nextID < 1 {
		nextID = 1
	}

	d := &Deck{slides: owned, nextID: nextID}
	d.reindex()
	return d
}

// Slides returns a copy of the current sequence.
func (d *Deck) Slides() []models.Slide {
	out := make([]models.Slide, len(d.slides))
	copy(out, d.slides)
	return out
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.slides)
}

// NextID returns the current value of the ID counter, for
// persisting alongside the slide batch.
func (d *Deck) NextID() int {
	return d.nextID
}

// Append adds a slide at the end of the deck and returns it.
func (d *Deck) Append(title, content, slideType string) models.Slide {
	slide := models.Slide{
		ID:        d.nextID,
		Title:     title,
		Content:   content,
		SlideType: slideType,
	}
	d.nextID++

	d.slides = append(d.slides, slide)
	d.reindex()
	return d.slides[len(d.slides)-1]
}

// Remove deletes the slide with the given ID and closes the gap.
// Unknown IDs are a no-op.
func (d *Deck) Remove(id int) {
	i := d.indexOf(id)
	if i < 0 {
		return
	}

	d.slides = append(d.slides[:i], d.slides[i+1:]...)
	d.reindex()
}

// Move swaps the slide with its immediate neighbor in the given
// direction. Moving the first slide up, the last slide down, or an
// unknown ID is a no-op.
func (d *Deck) Move(id int, dir Direction) {
	i := d.indexOf(id)
	if i < 0 {
		return
	}

	j := i + 1
	if dir == Up {
		j = i - 1
	}
	if j < 0 || j >= len(d.slides) {
		return
	}

	d.slides[i], d.slides[j] = d.slides[j], d.slides[i]
	d.reindex()
}

// UpdateFields is the patch applied by Update. Nil fields are left
// untouched; ID and Order are never updatable.
type UpdateFields struct {
	Title     *string
	Content   *string
	SlideType *string
}

// Update edits one slide in place. Unknown IDs are a no-op.
func (d *Deck) Update(id int, fields UpdateFields) {
	i := d.indexOf(id)
	if i < 0 {
		return
	}

	if fields.Title != nil {
		d.slides[i].Title = *fields.Title
	}
	if fields.Content != nil {
		d.slides[i].Content = *fields.Content
	}
	if fields.SlideType != nil {
		d.slides[i].SlideType = *fields.SlideType
	}
}

func (d *Deck) indexOf(id int) int {
	for i, slide := range d.slides {
		if slide.ID == id {
			return i
		}
	}
	return -1
}

// reindex reassigns Order densely as 1..N in current sequence
// order. Every mutating operation funnels through here; nothing
// else writes Order.
func (d *Deck) reindex() {
	for i := range d.slides {
		d.slides[i].Order = i + 1
	}
}
