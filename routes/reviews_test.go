package routes

import (
	"testing"

	"boat-rental-server/models"
)

func TestSummarizeRatings(t *testing.T) {
	reviews := []models.Review{
		{Rating: 4},
		{Rating: 5},
		{Rating: 3},
	}

	average, count := summarizeRatings(reviews)
	if average != 4.0 {
		t.Errorf("average = %v, want 4.0", average)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestSummarizeRatingsEmpty(t *testing.T) {
	average, count := summarizeRatings(nil)
	if average != 0 || count != 0 {
		t.Errorf("empty review set should produce (0, 0), got (%v, %d)", average, count)
	}
}

func TestSummarizeRatingsSingle(t *testing.T) {
	average, count := summarizeRatings([]models.Review{{Rating: 5}})
	if average != 5.0 || count != 1 {
		t.Errorf("got (%v, %d), want (5.0, 1)", average, count)
	}
}
