package service_test

import (
	"context"
	"fmt"
	"time"

	appErrors "github.com/nubac/wasender-backend/internal/errors"
	"github.com/nubac/wasender-backend/internal/gateway"
	"github.com/nubac/wasender-backend/internal/model"
)

// In-memory fakes honoring the repository contracts.

type fakeContactRepo struct {
	contacts   []model.Contact // kept sorted by ID
	lastTags   []string
	fetchCalls int
	touched    map[string]time.Time
}

func (f *fakeContactRepo) FetchActivePage(_ context.Context, uid string, tags []string, cursor string, limit int) ([]model.Contact, error) {
	f.fetchCalls++
	f.lastTags = tags
	out := []model.Contact{}
	for _, c := range f.contacts {
		if c.UID != uid || c.Status != model.ContactStatusActive {
			continue
		}
		if cursor != "" && c.ID <= cursor {
			continue
		}
		if len(tags) > 0 && !hasAnyTag(c.Tags, tags) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeContactRepo) FindByPhone(_ context.Context, phoneE164 string) (*model.Contact, error) {
	for i := range f.contacts {
		if f.contacts[i].PhoneE164 == phoneE164 {
			c := f.contacts[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeContactRepo) TouchInbound(_ context.Context, id string, at time.Time) error {
	if f.touched == nil {
		f.touched = map[string]time.Time{}
	}
	f.touched[id] = at
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			t := at
			f.contacts[i].LastInboundAt = &t
		}
	}
	return nil
}

func (f *fakeContactRepo) Create(_ context.Context, c *model.Contact) error {
	f.contacts = append(f.contacts, *c)
	return nil
}

func hasAnyTag(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

type fakeCampaignRepo struct {
	campaigns map[string]*model.Campaign // uid/id
}

func (f *fakeCampaignRepo) GetByID(_ context.Context, uid, id string) (*model.Campaign, error) {
	if c, ok := f.campaigns[uid+"/"+id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, appErrors.NewCampaignNotFound(id)
}

func (f *fakeCampaignRepo) Create(_ context.Context, c *model.Campaign) error {
	if f.campaigns == nil {
		f.campaigns = map[string]*model.Campaign{}
	}
	f.campaigns[c.UID+"/"+c.ID] = c
	return nil
}

type fakeScheduleRepo struct {
	schedules map[string]*model.Schedule
	claimErr  error
}

func (f *fakeScheduleRepo) DuePending(_ context.Context, now time.Time, limit int) ([]model.Schedule, error) {
	due := []model.Schedule{}
	for _, s := range f.schedules {
		if s.Status == model.ScheduleStatusPending && !s.ScheduledAt.After(now) {
			due = append(due, *s)
		}
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (f *fakeScheduleRepo) Claim(_ context.Context, id string, at time.Time) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	s := f.schedules[id]
	if s == nil || s.Status != model.ScheduleStatusPending {
		return appErrors.ErrScheduleClaimed
	}
	s.Status = model.ScheduleStatusProcessing
	s.ProcessingAt = &at
	return nil
}

func (f *fakeScheduleRepo) Requeue(_ context.Context, id, cursor string, processedCount int) error {
	s := f.schedules[id]
	s.Status = model.ScheduleStatusPending
	s.Cursor = cursor
	s.ProcessedCount = processedCount
	return nil
}

func (f *fakeScheduleRepo) MarkSent(_ context.Context, id string, processedCount int, doneAt time.Time) error {
	s := f.schedules[id]
	s.Status = model.ScheduleStatusSent
	s.Cursor = ""
	s.ProcessedCount = processedCount
	s.DoneAt = &doneAt
	return nil
}

func (f *fakeScheduleRepo) MarkFailed(_ context.Context, id, reason string) error {
	s := f.schedules[id]
	s.Status = model.ScheduleStatusFailed
	s.Error = reason
	return nil
}

func (f *fakeScheduleRepo) Create(_ context.Context, s *model.Schedule) error {
	if f.schedules == nil {
		f.schedules = map[string]*model.Schedule{}
	}
	f.schedules[s.ID] = s
	return nil
}

type fakeOutboundRepo struct {
	records map[string]*model.OutboundRecord
}

func (f *fakeOutboundRepo) Upsert(_ context.Context, rec *model.OutboundRecord) error {
	if f.records == nil {
		f.records = map[string]*model.OutboundRecord{}
	}
	cp := *rec
	f.records[rec.SID] = &cp
	return nil
}

type fakeStateRepo struct {
	states map[string]*model.ConversationState
}

func (f *fakeStateRepo) Get(_ context.Context, uid, phoneE164 string) (*model.ConversationState, error) {
	if st, ok := f.states[model.PhoneHash(uid, phoneE164)]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStateRepo) Upsert(_ context.Context, st *model.ConversationState) error {
	if f.states == nil {
		f.states = map[string]*model.ConversationState{}
	}
	cp := *st
	f.states[st.ID] = &cp
	return nil
}

type logCall struct {
	uid     string
	logType string
	payload map[string]any
}

type fakeLogRepo struct {
	entries []logCall
}

func (f *fakeLogRepo) Append(_ context.Context, uid, logType string, payload map[string]any) error {
	f.entries = append(f.entries, logCall{uid: uid, logType: logType, payload: payload})
	return nil
}

func (f *fakeLogRepo) countType(logType string) int {
	n := 0
	for _, e := range f.entries {
		if e.logType == logType {
			n++
		}
	}
	return n
}

type fakeMediaRepo struct {
	urls map[string]string // uid:mediaID
}

func (f *fakeMediaRepo) GetURL(_ context.Context, uid, mediaID string) (string, error) {
	if mediaID == "" {
		return "", nil
	}
	return f.urls[uid+":"+mediaID], nil
}

type fakeGateway struct {
	sent     []gateway.Message
	err      error
	fixedSID string // when set, every send reports this SID
}

func (f *fakeGateway) Send(_ context.Context, msg gateway.Message) (*gateway.SendResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, msg)
	sid := f.fixedSID
	if sid == "" {
		sid = fmt.Sprintf("SM%03d", len(f.sent))
	}
	return &gateway.SendResult{SID: sid, Status: "queued"}, nil
}
