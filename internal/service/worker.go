// internal/service/worker.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	appErrors "github.com/nubac/wasender-backend/internal/errors"
	"github.com/nubac/wasender-backend/internal/gateway"
	"github.com/nubac/wasender-backend/internal/model"
	"github.com/nubac/wasender-backend/internal/repository"
)

const defaultBatchSize = 25

// Failure reason persisted on the schedule when its campaign is gone.
var errCampaignNotFound = errors.New("campaign_not_found")

// ProcessResult aggregates one worker invocation.
type ProcessResult struct {
	ProcessedSchedules int `json:"processedSchedules"`
	ProcessedMessages  int `json:"processedMessages"`
}

// ScheduleWorker claims due schedules and drives them one audience page per
// invocation. A schedule with more pages goes back to pending with its cursor
// advanced, so repeated invocations finish arbitrarily large audiences.
type ScheduleWorker struct {
	Schedules repository.ScheduleRepositoryInterface
	Campaigns repository.CampaignRepositoryInterface
	Audience  *AudienceService
	Policy    *SendPolicy
	Gateway   gateway.Sender
	Outbound  repository.OutboundRecordRepositoryInterface
	States    repository.StateRepositoryInterface
	Logs      repository.LogRepositoryInterface
	Limiter   *rate.Limiter // paces sequential gateway sends
	BatchSize int
	Log       zerolog.Logger
}

// ProcessDue runs one worker tick: claim up to BatchSize due schedules and
// process one contact page for each. Failures are contained per schedule and
// per contact; only a broken due-schedule query aborts the whole tick.
func (w *ScheduleWorker) ProcessDue(ctx context.Context, contactLimit int) (*ProcessResult, error) {
	now := time.Now()
	res := &ProcessResult{}

	batch := w.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	due, err := w.Schedules.DuePending(ctx, now, batch)
	if err != nil {
		return nil, err
	}

	for i := range due {
		sch := &due[i]

		if err := w.Schedules.Claim(ctx, sch.ID, now); err != nil {
			if errors.Is(err, appErrors.ErrScheduleClaimed) {
				// someone else is handling it
				continue
			}
			w.Log.Error().Err(err).Str("schedule", sch.ID).Msg("claim failed")
			continue
		}

		if err := w.processSchedule(ctx, sch, contactLimit, now, res); err != nil {
			w.Log.Error().Err(err).Str("schedule", sch.ID).Msg("schedule failed")
			if ferr := w.Schedules.MarkFailed(ctx, sch.ID, err.Error()); ferr != nil {
				w.Log.Error().Err(ferr).Str("schedule", sch.ID).Msg("failed to mark schedule failed")
			}
		}
	}

	return res, nil
}

func (w *ScheduleWorker) processSchedule(ctx context.Context, sch *model.Schedule, contactLimit int, now time.Time, res *ProcessResult) error {
	campaign, err := w.Campaigns.GetByID(ctx, sch.UID, sch.CampaignID)
	if err != nil {
		var nf *appErrors.ErrCampaignNotFound
		if errors.As(err, &nf) {
			return errCampaignNotFound
		}
		return err
	}

	page, err := w.Audience.FetchPage(ctx, sch.UID, sch.Target, sch.Cursor, contactLimit)
	if err != nil {
		return err
	}

	if page.Count == 0 {
		if err := w.Schedules.MarkSent(ctx, sch.ID, sch.ProcessedCount, time.Now()); err != nil {
			return err
		}
		res.ProcessedSchedules++
		return nil
	}

	// Strictly sequential sends; bursting would trip the gateway rate limits.
	for i := range page.Contacts {
		contact := &page.Contacts[i]
		if err := w.sendTeaser(ctx, sch, campaign, contact, now); err != nil {
			w.Log.Warn().Err(err).Str("to", contact.PhoneE164).Str("schedule", sch.ID).Msg("send failed")
			if lerr := w.Logs.Append(ctx, sch.UID, "send_failed", map[string]any{
				"scheduleId": sch.ID,
				"campaignId": campaign.ID,
				"to":         contact.PhoneE164,
				"error":      err.Error(),
			}); lerr != nil {
				w.Log.Error().Err(lerr).Msg("failed to append log entry")
			}
			continue
		}
		res.ProcessedMessages++
	}

	processed := sch.ProcessedCount + page.Count

	if page.NextCursor != "" {
		return w.Schedules.Requeue(ctx, sch.ID, page.NextCursor, processed)
	}

	if err := w.Schedules.MarkSent(ctx, sch.ID, processed, time.Now()); err != nil {
		return err
	}
	res.ProcessedSchedules++
	return nil
}

// sendTeaser composes, sends, records the outbound message, and moves the
// contact to WAITING_CHOICE. Any error leaves the contact untouched for this
// round; the caller logs it and moves on.
func (w *ScheduleWorker) sendTeaser(ctx context.Context, sch *model.Schedule, campaign *model.Campaign, contact *model.Contact, now time.Time) error {
	msg, err := w.Policy.ComposeTeaser(ctx, sch.UID, contact, campaign, now)
	if err != nil {
		return err
	}

	if w.Limiter != nil {
		if err := w.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	sent, err := w.Gateway.Send(ctx, *msg)
	if err != nil {
		return err
	}

	rec := &model.OutboundRecord{
		SID:        sent.SID,
		UID:        sch.UID,
		ScheduleID: sch.ID,
		CampaignID: campaign.ID,
		To:         contact.PhoneE164,
		Type:       model.OutboundTypeTeaser,
		Status:     sent.Status,
		CreatedAt:  time.Now(),
	}
	if err := w.Outbound.Upsert(ctx, rec); err != nil {
		return err
	}

	return w.States.Upsert(ctx, &model.ConversationState{
		ID:               model.PhoneHash(sch.UID, contact.PhoneE164),
		UID:              sch.UID,
		ActiveCampaignID: campaign.ID,
		State:            model.StateWaitingChoice,
		InvalidCount:     0,
		UpdatedAt:        time.Now(),
	})
}
