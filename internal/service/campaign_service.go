package service

import (
	"context"
	"time"

	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
	"printmob-be/internal/mapper"
	"printmob-be/internal/pkg/apperrors"
	"printmob-be/internal/pkg/logger"
	"printmob-be/internal/repository/memory"
	"printmob-be/internal/repository/specification"
	"printmob-be/internal/repository/unitofwork"
	"printmob-be/pkg/events"
	pkgNats "printmob-be/pkg/nats"
	"printmob-be/pkg/payment"

	"github.com/google/uuid"
)

type ICampaignService interface {
	Create(ctx context.Context, printerId uuid.UUID, req *dto.CreateCampaignRequest) (*dto.CreateCampaignResponse, error)
	List(ctx context.Context, req *dto.ListCampaignsRequest) (*dto.ListCampaignsResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CampaignResponse, error)
	RequestCancellation(ctx context.Context, printerId uuid.UUID, campaignId uuid.UUID) error
}

type campaignService struct {
	uowFactory      unitofwork.RepositoryFactory
	gateway         payment.Gateway
	preferenceCache *memory.PreferenceCache
	eventPublisher  *pkgNats.Publisher
	campaignMapper  *mapper.CampaignMapper
	logger          logger.ILogger

	now func() time.Time
}

func NewCampaignService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	preferenceCache *memory.PreferenceCache,
	eventPublisher *pkgNats.Publisher,
	logger logger.ILogger,
) ICampaignService {
	return &campaignService{
		uowFactory:      uowFactory,
		gateway:         gateway,
		preferenceCache: preferenceCache,
		eventPublisher:  eventPublisher,
		campaignMapper:  mapper.NewCampaignMapper(),
		logger:          logger,
		now:             time.Now,
	}
}

func (s *campaignService) Create(ctx context.Context, printerId uuid.UUID, req *dto.CreateCampaignRequest) (*dto.CreateCampaignResponse, error) {
	if !req.EndDate.After(s.now()) {
		return nil, apperrors.NewValidation("end date must be in the future")
	}
	if req.MaxPledgers != nil && *req.MaxPledgers < req.MinPledgers {
		return nil, apperrors.NewValidation("max pledgers cannot be below min pledgers")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	printer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: printerId})
	if err != nil {
		return nil, err
	}
	if printer == nil || printer.UserType != entity.UserTypePrinter {
		return nil, apperrors.NewValidation("only printers can create campaigns")
	}

	if req.ModelId != nil {
		if err := s.checkModelUsable(ctx, uow, *req.ModelId, printerId); err != nil {
			return nil, err
		}
	}

	campaign := &entity.Campaign{
		Id:              uuid.New(),
		PrinterId:       printerId,
		ModelId:         req.ModelId,
		Name:            req.Name,
		Description:     req.Description,
		CampaignPicture: req.CampaignPicture,
		PledgePrice:     req.PledgePrice,
		MinPledgers:     req.MinPledgers,
		MaxPledgers:     req.MaxPledgers,
		Status:          entity.CampaignStatusInProgress,
		StartDate:       s.now(),
		EndDate:         req.EndDate,
	}

	pref, err := s.gateway.CreatePledgePreference(ctx, campaign.Id.String(), campaign)
	if err != nil {
		return nil, apperrors.NewInternal("failed to create checkout preference", err)
	}
	campaign.PreferenceId = &pref.Id

	if err := uow.CampaignRepository().Create(ctx, campaign); err != nil {
		return nil, err
	}

	if req.TechDetail != nil {
		detail := &entity.CampaignTechDetail{
			Id:         uuid.New(),
			CampaignId: campaign.Id,
			Material:   req.TechDetail.Material,
			Weight:     req.TechDetail.Weight,
			Width:      req.TechDetail.Width,
			Length:     req.TechDetail.Length,
			Depth:      req.TechDetail.Depth,
		}
		if err := uow.CampaignRepository().CreateTechDetail(ctx, detail); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.preferenceCache.Save(campaign.Id, pref.Id)

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewCampaignCreated(campaign.Id, printerId)); err != nil {
			s.logger.Warn("campaign", "failed to publish campaign created event", map[string]interface{}{
				"campaign_id": campaign.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	return &dto.CreateCampaignResponse{Id: campaign.Id, PreferenceId: pref.Id}, nil
}

// checkModelUsable verifies a campaign may be spawned from the model: the
// model must exist, and paid models must have been purchased by the printer.
func (s *campaignService) checkModelUsable(ctx context.Context, uow unitofwork.UnitOfWork, modelId, printerId uuid.UUID) error {
	model, err := uow.ModelRepository().FindOne(ctx, specification.ByID{ID: modelId})
	if err != nil {
		return err
	}
	if model == nil {
		return apperrors.NewNotFound("model not found")
	}
	if model.Price > 0 {
		purchase, err := uow.ModelRepository().FindPurchase(ctx, modelId, printerId)
		if err != nil {
			return err
		}
		if purchase == nil {
			return apperrors.NewValidation("model must be purchased before use")
		}
	}
	return nil
}

func (s *campaignService) List(ctx context.Context, req *dto.ListCampaignsRequest) (*dto.ListCampaignsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 10
	}

	var filters []specification.Specification
	if req.Status != "" {
		filters = append(filters, specification.ByStatus{Status: req.Status})
	}
	if req.PrinterId != nil {
		filters = append(filters, specification.OwnedByPrinter{PrinterID: *req.PrinterId})
	}
	if req.BuyerId != nil {
		filters = append(filters, specification.PledgedByBuyer{BuyerID: *req.BuyerId})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.CampaignRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	campaigns, err := uow.CampaignRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	return &dto.ListCampaignsResponse{
		Campaigns: s.campaignMapper.ToResponseList(campaigns),
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}

func (s *campaignService) GetByID(ctx context.Context, id uuid.UUID) (*dto.CampaignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	campaign, err := uow.CampaignRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, apperrors.NewNotFound("campaign not found")
	}

	// Serve the checkout preference from cache; recreate it for campaigns
	// that are still accepting pledges when it expired.
	if prefId, ok := s.preferenceCache.Get(campaign.Id); ok {
		campaign.PreferenceId = &prefId
	} else if campaign.Status == entity.CampaignStatusInProgress || campaign.Status == entity.CampaignStatusConfirmed {
		pref, err := s.gateway.CreatePledgePreference(ctx, campaign.Id.String(), campaign)
		if err != nil {
			s.logger.Warn("campaign", "failed to refresh checkout preference", map[string]interface{}{
				"campaign_id": campaign.Id.String(),
				"error":       err.Error(),
			})
		} else {
			campaign.PreferenceId = &pref.Id
			s.preferenceCache.Save(campaign.Id, pref.Id)
		}
	}

	return s.campaignMapper.ToResponse(campaign), nil
}

// RequestCancellation flags a campaign for the cancel settlement job. Only
// the owning printer may request it, and only while the campaign is in
// progress and below its confirmation goal.
func (s *campaignService) RequestCancellation(ctx context.Context, printerId uuid.UUID, campaignId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	campaign, err := uow.CampaignRepository().FindOne(ctx,
		specification.ByID{ID: campaignId},
		specification.LockForUpdate{},
	)
	if err != nil {
		return err
	}
	if campaign == nil {
		return apperrors.NewNotFound("campaign not found")
	}
	if campaign.PrinterId != printerId {
		return apperrors.NewValidation("campaign belongs to another printer")
	}
	if !campaign.CanBeCancelled() {
		return apperrors.NewValidation("campaign can no longer be cancelled")
	}

	fromStatus := campaign.Status
	campaign.Status = entity.CampaignStatusToBeCancelled
	if err := uow.CampaignRepository().UpdateStatus(ctx, campaign); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.preferenceCache.Delete(campaign.Id)

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewCampaignStatusChanged(campaign.Id, string(fromStatus), string(campaign.Status))); err != nil {
			s.logger.Warn("campaign", "failed to publish status change event", map[string]interface{}{
				"campaign_id": campaign.Id.String(),
				"error":       err.Error(),
			})
		}
	}
	return nil
}
