package service

import (
	"context"
	"testing"

	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
	"printmob-be/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStubOrder(store *stubStore, campaign *entity.Campaign, buyerId uuid.UUID, status entity.OrderStatus) *entity.Order {
	o := &entity.Order{
		Id:         uuid.New(),
		CampaignId: campaign.Id,
		PledgeId:   uuid.New(),
		BuyerId:    buyerId,
		Status:     status,
	}
	store.orders[o.Id] = o
	return o
}

func TestOrderUpdateStatus(t *testing.T) {
	newFixture := func(status entity.OrderStatus) (*stubStore, *entity.Campaign, *entity.User, *entity.Order) {
		store := newStubStore()
		campaign := seedStubCampaign(store, 2, nil)
		buyer := seedStubUser(store, entity.UserTypeBuyer)
		order := seedStubOrder(store, campaign, buyer.Id, status)
		return store, campaign, buyer, order
	}

	t.Run("printer dispatches an in-progress order", func(t *testing.T) {
		store, campaign, _, order := newFixture(entity.OrderStatusInProgress)
		svc := NewOrderService(&stubFactory{store: store})

		err := svc.UpdateStatus(context.Background(), campaign.PrinterId, order.Id,
			&dto.UpdateOrderStatusRequest{Status: "dispatched"})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusDispatched, store.orders[order.Id].Status)
	})

	t.Run("buyer cannot dispatch", func(t *testing.T) {
		store, _, buyer, order := newFixture(entity.OrderStatusInProgress)
		svc := NewOrderService(&stubFactory{store: store})

		err := svc.UpdateStatus(context.Background(), buyer.Id, order.Id,
			&dto.UpdateOrderStatusRequest{Status: "dispatched"})
		require.Error(t, err)
		assert.Equal(t, "only the campaign printer can dispatch an order", apperrors.MessageOf(err))
		assert.Equal(t, entity.OrderStatusInProgress, store.orders[order.Id].Status)
	})

	t.Run("buyer confirms receipt of a dispatched order", func(t *testing.T) {
		store, _, buyer, order := newFixture(entity.OrderStatusDispatched)
		svc := NewOrderService(&stubFactory{store: store})

		err := svc.UpdateStatus(context.Background(), buyer.Id, order.Id,
			&dto.UpdateOrderStatusRequest{Status: "received"})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusReceived, store.orders[order.Id].Status)
	})

	t.Run("receipt requires prior dispatch", func(t *testing.T) {
		store, _, buyer, order := newFixture(entity.OrderStatusInProgress)
		svc := NewOrderService(&stubFactory{store: store})

		err := svc.UpdateStatus(context.Background(), buyer.Id, order.Id,
			&dto.UpdateOrderStatusRequest{Status: "received"})
		require.Error(t, err)
		assert.Equal(t, "order has not been dispatched", apperrors.MessageOf(err))
	})

	t.Run("printer cannot confirm receipt", func(t *testing.T) {
		store, campaign, _, order := newFixture(entity.OrderStatusDispatched)
		svc := NewOrderService(&stubFactory{store: store})

		err := svc.UpdateStatus(context.Background(), campaign.PrinterId, order.Id,
			&dto.UpdateOrderStatusRequest{Status: "received"})
		require.Error(t, err)
		assert.Equal(t, "only the buyer can confirm receipt", apperrors.MessageOf(err))
	})

	t.Run("unknown order", func(t *testing.T) {
		store, campaign, _, _ := newFixture(entity.OrderStatusInProgress)
		svc := NewOrderService(&stubFactory{store: store})

		err := svc.UpdateStatus(context.Background(), campaign.PrinterId, uuid.New(),
			&dto.UpdateOrderStatusRequest{Status: "dispatched"})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}
