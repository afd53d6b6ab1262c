package service

import (
	"context"
	"encoding/json"
	"testing"

	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
	"printmob-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newTestEventWorker(store *stubStore) (*eventWorkerService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return &eventWorkerService{
		uowFactory: &stubFactory{store: store},
		publisher:  pub,
		logger:     silentLogger{},
	}, pub
}

func TestEventWorkerStatusChanged(t *testing.T) {
	t.Run("goal reached emails the printer", func(t *testing.T) {
		store := newStubStore()
		campaign := seedStubCampaign(store, 2, nil)
		campaign.CurrentPledgers = 2
		campaign.Status = entity.CampaignStatusConfirmed

		worker, pub := newTestEventWorker(store)
		evt := events.NewCampaignStatusChanged(campaign.Id, "in_progress", "confirmed")
		require.NoError(t, worker.handleStatusChanged(context.Background(), evt))

		require.Len(t, pub.payloads, 1)
		var msg dto.EmailNotificationMessage
		require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
		assert.Equal(t, dto.EmailTemplateCampaignConfirmed, msg.Template)
		assert.Equal(t, store.users[campaign.PrinterId].Email, msg.To)
		assert.Equal(t, campaign.Name, msg.CampaignName)
		assert.Equal(t, 2, msg.PledgeCount)
	})

	t.Run("last slot taken emails the printer", func(t *testing.T) {
		store := newStubStore()
		campaign := seedStubCampaign(store, 1, intPtr(2))
		campaign.CurrentPledgers = 1
		campaign.Status = entity.CampaignStatusToBeFinalized

		worker, pub := newTestEventWorker(store)
		evt := events.NewCampaignStatusChanged(campaign.Id, "in_progress", "to_be_finalized")
		require.NoError(t, worker.handleStatusChanged(context.Background(), evt))
		assert.Len(t, pub.payloads, 1)
	})

	t.Run("other transitions are ignored", func(t *testing.T) {
		store := newStubStore()
		campaign := seedStubCampaign(store, 5, nil)

		worker, pub := newTestEventWorker(store)
		evt := events.NewCampaignStatusChanged(campaign.Id, "to_be_cancelled", "cancelled")
		require.NoError(t, worker.handleStatusChanged(context.Background(), evt))
		assert.Empty(t, pub.payloads)
	})

	t.Run("unknown campaign is dropped", func(t *testing.T) {
		store := newStubStore()
		worker, pub := newTestEventWorker(store)

		evt := events.NewCampaignStatusChanged(uuid.New(), "in_progress", "confirmed")
		require.NoError(t, worker.handleStatusChanged(context.Background(), evt))
		assert.Empty(t, pub.payloads)
	})

	t.Run("malformed campaign id is dropped without redelivery", func(t *testing.T) {
		store := newStubStore()
		worker, pub := newTestEventWorker(store)

		evt := events.BaseEvent{
			Type: events.EventCampaignStatusChanged,
			Data: map[string]interface{}{"campaign_id": "not-a-uuid", "to": "confirmed"},
		}
		require.NoError(t, worker.handleStatusChanged(context.Background(), evt))
		assert.Empty(t, pub.payloads)
	})
}
