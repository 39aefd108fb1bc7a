// internal/service/audience.go
package service

import (
	"context"

	"github.com/nubac/wasender-backend/internal/model"
	"github.com/nubac/wasender-backend/internal/repository"
)

// Set-membership filters are capped at 10 values, so tag targets beyond that
// are truncated. Callers keep tag lists within the cap.
const maxTagFilters = 10

type AudiencePage struct {
	Contacts   []model.Contact
	NextCursor string
	Count      int
}

// AudienceService resolves a schedule target to pages of active contacts.
// Pure read; it never mutates anything.
type AudienceService struct {
	Contacts repository.ContactRepositoryInterface
}

// FetchPage returns one page of contacts for the target, starting strictly
// after cursor. A page shorter than limit means there is no next page, which
// is the termination signal for a schedule.
func (s *AudienceService) FetchPage(ctx context.Context, uid string, target model.ScheduleTarget, cursor string, limit int) (*AudiencePage, error) {
	var tags []string

	switch target.Type {
	case "", model.TargetTypeAll:
		// no extra filter
	case model.TargetTypeTags:
		for _, t := range target.Tags {
			if t != "" {
				tags = append(tags, t)
			}
		}
		if len(tags) == 0 {
			return &AudiencePage{Contacts: []model.Contact{}}, nil
		}
		if len(tags) > maxTagFilters {
			tags = tags[:maxTagFilters]
		}
	default:
		return &AudiencePage{Contacts: []model.Contact{}}, nil
	}

	contacts, err := s.Contacts.FetchActivePage(ctx, uid, tags, cursor, limit)
	if err != nil {
		return nil, err
	}

	page := &AudiencePage{Contacts: contacts, Count: len(contacts)}
	if len(contacts) == limit {
		page.NextCursor = contacts[len(contacts)-1].ID
	}
	return page, nil
}
