package service

import (
	"context"
	"testing"
	"time"

	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
	"printmob-be/internal/pkg/apperrors"
	"printmob-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCampaignService(store *stubStore, gateway *stubGateway) (*campaignService, *memory.PreferenceCache) {
	cache := memory.NewPreferenceCache()
	svc := NewCampaignService(
		&stubFactory{store: store},
		gateway,
		cache,
		nil,
		silentLogger{},
	).(*campaignService)
	svc.now = func() time.Time { return svcClock }
	return svc, cache
}

func validCampaignRequest() *dto.CreateCampaignRequest {
	return &dto.CreateCampaignRequest{
		Name:        "gridfinity-bins",
		Description: "a run of storage bins",
		PledgePrice: 45,
		MinPledgers: 3,
		EndDate:     svcClock.Add(14 * 24 * time.Hour),
		TechDetail: &dto.TechDetailRequest{
			Material: "PETG",
			Weight:   120,
			Width:    42,
			Length:   42,
			Depth:    42,
		},
	}
}

func TestCreateCampaign(t *testing.T) {
	t.Run("rejects past end date", func(t *testing.T) {
		store := newStubStore()
		printer := seedStubUser(store, entity.UserTypePrinter)
		svc, _ := newTestCampaignService(store, newStubGateway())

		req := validCampaignRequest()
		req.EndDate = svcClock.Add(-time.Hour)

		_, err := svc.Create(context.Background(), printer.Id, req)
		require.Error(t, err)
		assert.Equal(t, "end date must be in the future", apperrors.MessageOf(err))
	})

	t.Run("rejects max below min", func(t *testing.T) {
		store := newStubStore()
		printer := seedStubUser(store, entity.UserTypePrinter)
		svc, _ := newTestCampaignService(store, newStubGateway())

		req := validCampaignRequest()
		req.MaxPledgers = intPtr(2)

		_, err := svc.Create(context.Background(), printer.Id, req)
		require.Error(t, err)
		assert.Equal(t, "max pledgers cannot be below min pledgers", apperrors.MessageOf(err))
	})

	t.Run("only printers may create campaigns", func(t *testing.T) {
		store := newStubStore()
		buyer := seedStubUser(store, entity.UserTypeBuyer)
		svc, _ := newTestCampaignService(store, newStubGateway())

		_, err := svc.Create(context.Background(), buyer.Id, validCampaignRequest())
		require.Error(t, err)
		assert.Equal(t, "only printers can create campaigns", apperrors.MessageOf(err))
	})

	t.Run("paid model requires a purchase", func(t *testing.T) {
		store := newStubStore()
		printer := seedStubUser(store, entity.UserTypePrinter)
		designer := seedStubUser(store, entity.UserTypeDesigner)
		model := &entity.DesignerModel{Id: uuid.New(), DesignerId: designer.Id, Price: 12}
		store.models[model.Id] = model

		svc, _ := newTestCampaignService(store, newStubGateway())
		req := validCampaignRequest()
		req.ModelId = &model.Id

		_, err := svc.Create(context.Background(), printer.Id, req)
		require.Error(t, err)
		assert.Equal(t, "model must be purchased before use", apperrors.MessageOf(err))
	})

	t.Run("creates the campaign with a cached checkout preference", func(t *testing.T) {
		store := newStubStore()
		printer := seedStubUser(store, entity.UserTypePrinter)
		gateway := newStubGateway()
		svc, cache := newTestCampaignService(store, gateway)

		resp, err := svc.Create(context.Background(), printer.Id, validCampaignRequest())
		require.NoError(t, err)

		stored := store.campaigns[resp.Id]
		require.NotNil(t, stored)
		assert.Equal(t, entity.CampaignStatusInProgress, stored.Status)
		assert.True(t, stored.StartDate.Equal(svcClock))
		require.NotNil(t, stored.PreferenceId)
		assert.Equal(t, resp.PreferenceId, *stored.PreferenceId)

		require.NotNil(t, stored.TechDetail)
		assert.Equal(t, "PETG", stored.TechDetail.Material)

		// The campaign-page preference is keyed by the campaign id.
		require.Len(t, gateway.preferences, 1)
		assert.Equal(t, resp.Id.String(), gateway.preferences[0])

		cached, ok := cache.Get(resp.Id)
		require.True(t, ok)
		assert.Equal(t, resp.PreferenceId, cached)
	})
}

func TestCampaignGetByID(t *testing.T) {
	t.Run("refreshes an expired preference for a live campaign", func(t *testing.T) {
		store := newStubStore()
		gateway := newStubGateway()
		campaign := seedStubCampaign(store, 3, nil)
		svc, cache := newTestCampaignService(store, gateway)

		resp, err := svc.GetByID(context.Background(), campaign.Id)
		require.NoError(t, err)

		require.NotNil(t, resp.PreferenceId)
		assert.Equal(t, "pref-"+campaign.Id.String(), *resp.PreferenceId)
		_, ok := cache.Get(campaign.Id)
		assert.True(t, ok)
	})

	t.Run("terminal campaign gets no fresh preference", func(t *testing.T) {
		store := newStubStore()
		gateway := newStubGateway()
		campaign := seedStubCampaign(store, 3, nil)
		campaign.Status = entity.CampaignStatusCompleted
		svc, _ := newTestCampaignService(store, gateway)

		resp, err := svc.GetByID(context.Background(), campaign.Id)
		require.NoError(t, err)
		assert.Nil(t, resp.PreferenceId)
		assert.Empty(t, gateway.preferences)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		svc, _ := newTestCampaignService(newStubStore(), newStubGateway())
		_, err := svc.GetByID(context.Background(), uuid.New())
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestRequestCancellation(t *testing.T) {
	t.Run("flags an in-progress campaign below goal", func(t *testing.T) {
		store := newStubStore()
		campaign := seedStubCampaign(store, 3, nil)
		seedStubPledge(store, campaign, seedStubUser(store, entity.UserTypeBuyer).Id)
		svc, cache := newTestCampaignService(store, newStubGateway())
		cache.Save(campaign.Id, "pref-stale")

		err := svc.RequestCancellation(context.Background(), campaign.PrinterId, campaign.Id)
		require.NoError(t, err)
		assert.Equal(t, entity.CampaignStatusToBeCancelled, store.campaigns[campaign.Id].Status)

		_, ok := cache.Get(campaign.Id)
		assert.False(t, ok, "stale preference must be evicted")
	})

	t.Run("another printer cannot cancel", func(t *testing.T) {
		store := newStubStore()
		campaign := seedStubCampaign(store, 3, nil)
		other := seedStubUser(store, entity.UserTypePrinter)
		svc, _ := newTestCampaignService(store, newStubGateway())

		err := svc.RequestCancellation(context.Background(), other.Id, campaign.Id)
		require.Error(t, err)
		assert.Equal(t, "campaign belongs to another printer", apperrors.MessageOf(err))
	})

	t.Run("campaign at goal is locked in", func(t *testing.T) {
		store := newStubStore()
		campaign := seedStubCampaign(store, 1, nil)
		seedStubPledge(store, campaign, seedStubUser(store, entity.UserTypeBuyer).Id)
		svc, _ := newTestCampaignService(store, newStubGateway())

		err := svc.RequestCancellation(context.Background(), campaign.PrinterId, campaign.Id)
		require.Error(t, err)
		assert.Equal(t, "campaign can no longer be cancelled", apperrors.MessageOf(err))
		assert.Equal(t, entity.CampaignStatusInProgress, store.campaigns[campaign.Id].Status)
	})
}
