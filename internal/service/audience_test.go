package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nubac/wasender-backend/internal/model"
	"github.com/nubac/wasender-backend/internal/service"
)

func activeContacts(uid string, n int) []model.Contact {
	contacts := make([]model.Contact, 0, n)
	for i := 0; i < n; i++ {
		contacts = append(contacts, model.Contact{
			ID:        fmt.Sprintf("c%03d", i+1),
			UID:       uid,
			PhoneE164: fmt.Sprintf("+52155000%05d", i+1),
			Status:    model.ContactStatusActive,
		})
	}
	return contacts
}

func TestFetchPageSkipsInactiveContacts(t *testing.T) {
	contacts := activeContacts("u1", 3)
	contacts[1].Status = model.ContactStatusInactive
	repo := &fakeContactRepo{contacts: contacts}
	svc := &service.AudienceService{Contacts: repo}

	page, err := svc.FetchPage(context.Background(), "u1", model.ScheduleTarget{Type: model.TargetTypeAll}, "", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Count)
	for _, c := range page.Contacts {
		assert.Equal(t, model.ContactStatusActive, c.Status)
	}
}

func TestFetchPageTruncatesTagsToTen(t *testing.T) {
	repo := &fakeContactRepo{contacts: activeContacts("u1", 1)}
	svc := &service.AudienceService{Contacts: repo}

	tags := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		tags = append(tags, fmt.Sprintf("tag%02d", i+1))
	}

	_, err := svc.FetchPage(context.Background(), "u1", model.ScheduleTarget{Type: model.TargetTypeTags, Tags: tags}, "", 10)
	require.NoError(t, err)

	require.Len(t, repo.lastTags, 10)
	assert.Equal(t, tags[:10], repo.lastTags)
}

func TestFetchPageEmptyTagListShortCircuits(t *testing.T) {
	repo := &fakeContactRepo{contacts: activeContacts("u1", 3)}
	svc := &service.AudienceService{Contacts: repo}

	page, err := svc.FetchPage(context.Background(), "u1", model.ScheduleTarget{Type: model.TargetTypeTags, Tags: []string{"", ""}}, "", 10)
	require.NoError(t, err)

	assert.Equal(t, 0, page.Count)
	assert.Equal(t, 0, repo.fetchCalls, "no query should be issued for an empty tag list")
}

func TestFetchPageCursorAndTermination(t *testing.T) {
	repo := &fakeContactRepo{contacts: activeContacts("u1", 5)}
	svc := &service.AudienceService{Contacts: repo}
	target := model.ScheduleTarget{Type: model.TargetTypeAll}

	page1, err := svc.FetchPage(context.Background(), "u1", target, "", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page1.Count)
	assert.Equal(t, "c002", page1.NextCursor)

	page2, err := svc.FetchPage(context.Background(), "u1", target, page1.NextCursor, 2)
	require.NoError(t, err)
	assert.Equal(t, "c003", page2.Contacts[0].ID, "pagination starts strictly after the cursor")
	assert.Equal(t, "c004", page2.NextCursor)

	page3, err := svc.FetchPage(context.Background(), "u1", target, page2.NextCursor, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, page3.Count)
	assert.Empty(t, page3.NextCursor, "a short page is the termination signal")
}

func TestFetchPageUnknownTargetType(t *testing.T) {
	repo := &fakeContactRepo{contacts: activeContacts("u1", 3)}
	svc := &service.AudienceService{Contacts: repo}

	page, err := svc.FetchPage(context.Background(), "u1", model.ScheduleTarget{Type: "segments"}, "", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Count)
}
