package feed

import (
	"fmt"

	"github.com/julianpalmerio/minivenmo/internal/models"
)

// RenderFeed maps feed events to display lines:
//
//	Bobby paid Carol $5.00 for Coffee
//	Bobby and Carol are now friends
//
// Lines come out in event order, nothing is sorted or deduplicated.
func RenderFeed(events []models.FeedEvent) []string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, RenderEvent(e))
	}
	return lines
}

func RenderEvent(e models.FeedEvent) string {
	switch e.Type {
	case models.EventTypeFriendship:
		return fmt.Sprintf("%s and %s are now friends", e.Actor, e.Target)
	default:
		return fmt.Sprintf("%s paid %s $%s for %s", e.Actor, e.Target, e.Amount.StringFixed(2), e.Note)
	}
}
