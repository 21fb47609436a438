package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/taskdeck/internal/models"
)

func threeSlides() []models.Slide {
	return []models.Slide{
		{ID: 1, Title: "intro", SlideType: models.SlideTypeTitle, Order: 1},
		{ID: 2, Title: "body", SlideType: models.SlideTypeContent, Order: 2},
		{ID: 3, Title: "end", SlideType: models.SlideTypeConclusion, Order: 3},
	}
}

func assertContiguousOrder(t *testing.T, d *Deck) {
	t.Helper()
	for i, slide := range d.Slides() {
		assert.Equal(t, i+1, slide.Order)
	}
}

func TestNew_NormalizesStoredOrder(t *testing.T) {
	// Gaps and reversed order in storage are repaired on load.
	d := New([]models.Slide{
		{ID: 7, Title: "last", Order: 9},
		{ID: 4, Title: "first", Order: 2},
	}, 0)

	slides := d.Slides()
	require.Len(t, slides, 2)
	assert.Equal(t, "first", slides[0].Title)
	assert.Equal(t, "last", slides[1].Title)
	assertContiguousOrder(t, d)
	assert.Equal(t, 8, d.NextID(), "counter clamps to max id + 1")
}

func TestNew_EmptyDeck(t *testing.T) {
	d := New(nil, 0)

	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 1, d.NextID())
}

func TestAppend_AssignsOrderAndID(t *testing.T) {
	d := New(threeSlides(), 4)

	slide := d.Append("notes", "", models.SlideTypeBulletPoints)

	assert.Equal(t, 4, slide.ID)
	assert.Equal(t, 4, slide.Order)
	assert.Equal(t, 5, d.NextID())
	assertContiguousOrder(t, d)
}

func TestAppend_NeverReusesDeletedID(t *testing.T) {
	d := New(threeSlides(), 4)

	d.Remove(3)
	slide := d.Append("replacement", "", models.SlideTypeContent)

	assert.Equal(t, 4, slide.ID, "retired id 3 must not come back")

	d.Remove(4)
	slide = d.Append("again", "", models.SlideTypeContent)
	assert.Equal(t, 5, slide.ID)
}

func TestRemove_Scenario(t *testing.T) {
	d := New(threeSlides(), 4)

	d.Remove(2)

	slides := d.Slides()
	require.Len(t, slides, 2)
	assert.Equal(t, 1, slides[0].ID)
	assert.Equal(t, 1, slides[0].Order)
	assert.Equal(t, 3, slides[1].ID)
	assert.Equal(t, 2, slides[1].Order)
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	d := New(threeSlides(), 4)

	d.Remove(42)

	assert.Equal(t, threeSlides(), d.Slides())
}

func TestMove_Down(t *testing.T) {
	d := New(threeSlides(), 4)

	d.Move(1, Down)

	slides := d.Slides()
	assert.Equal(t, 2, slides[0].ID)
	assert.Equal(t, 1, slides[1].ID)
	assert.Equal(t, 3, slides[2].ID, "untouched slide keeps its position")
	assertContiguousOrder(t, d)
}

func TestMove_Up(t *testing.T) {
	d := New(threeSlides(), 4)

	d.Move(3, Up)

	slides := d.Slides()
	assert.Equal(t, 1, slides[0].ID)
	assert.Equal(t, 3, slides[1].ID)
	assert.Equal(t, 2, slides[2].ID)
	assertContiguousOrder(t, d)
}

func TestMove_BoundaryNoop(t *testing.T) {
	d := New(threeSlides(), 4)
	before := d.Slides()

	d.Move(1, Up)
	assert.Equal(t, before, d.Slides())

	d.Move(3, Down)
	assert.Equal(t, before, d.Slides())
}

func TestMove_UnknownIDIsNoop(t *testing.T) {
	d := New(threeSlides(), 4)
	before := d.Slides()

	d.Move(99, Down)

	assert.Equal(t, before, d.Slides())
}

func TestUpdate_EditsFieldsOnly(t *testing.T) {
	d := New(threeSlides(), 4)

	title := "renamed"
	slideType := models.SlideTypeQuote
	d.Update(2, UpdateFields{Title: &title, SlideType: &slideType})

	slides := d.Slides()
	assert.Equal(t, "renamed", slides[1].Title)
	assert.Equal(t, models.SlideTypeQuote, slides[1].SlideType)
	assert.Equal(t, 2, slides[1].ID)
	assert.Equal(t, 2, slides[1].Order)
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	d := New(threeSlides(), 4)

	title := "ghost"
	d.Update(42, UpdateFields{Title: &title})

	assert.Equal(t, threeSlides(), d.Slides())
}

func TestOrderContiguity_AfterMixedOperations(t *testing.T) {
	d := New(nil, 1)

	d.Append("a", "", models.SlideTypeTitle)
	d.Append("b", "", models.SlideTypeContent)
	d.Append("c", "", models.SlideTypeContent)
	d.Remove(2)
	d.Append("d", "", models.SlideTypeImage)
	d.Move(4, Up)
	d.Move(1, Down)
	d.Remove(3)
	d.Append("e", "", models.SlideTypeConclusion)

	slides := d.Slides()
	seen := map[int]bool{}
	for i, slide := range slides {
		assert.Equal(t, i+1, slide.Order)
		assert.False(t, seen[slide.ID], "duplicate id %d", slide.ID)
		seen[slide.ID] = true
	}
}

func TestSlides_ReturnsCopy(t *testing.T) {
	d := New(threeSlides(), 4)

	snapshot := d.Slides()
	snapshot[0].Title = "tampered"

	assert.Equal(t, "intro", d.Slides()[0].Title)
}

func TestParseDirection(t *testing.T) {
	dir, ok := ParseDirection("up")
	assert.True(t, ok)
	assert.Equal(t, Up, dir)

	dir, ok = ParseDirection("down")
	assert.True(t, ok)
	assert.Equal(t, Down, dir)

	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
}
