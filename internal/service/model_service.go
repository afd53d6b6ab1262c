package service

import (
	"context"

	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
	"printmob-be/internal/mapper"
	"printmob-be/internal/pkg/apperrors"
	"printmob-be/internal/repository/specification"
	"printmob-be/internal/repository/unitofwork"
	"printmob-be/pkg/ledger"

	"github.com/google/uuid"
)

type IModelService interface {
	Create(ctx context.Context, designerId uuid.UUID, req *dto.CreateModelRequest) (*dto.CreateModelResponse, error)
	List(ctx context.Context, req *dto.ListModelsRequest) (*dto.ListModelsResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ModelResponse, error)
	Purchase(ctx context.Context, printerId uuid.UUID, modelId uuid.UUID) (*dto.PurchaseModelResponse, error)
	Like(ctx context.Context, userId uuid.UUID, modelId uuid.UUID) error
	Unlike(ctx context.Context, userId uuid.UUID, modelId uuid.UUID) error
}

type modelService struct {
	uowFactory  unitofwork.RepositoryFactory
	ledger      ledger.Ledger
	modelMapper *mapper.ModelMapper
}

func NewModelService(uowFactory unitofwork.RepositoryFactory, ledger ledger.Ledger) IModelService {
	return &modelService{
		uowFactory:  uowFactory,
		ledger:      ledger,
		modelMapper: mapper.NewModelMapper(),
	}
}

func (s *modelService) Create(ctx context.Context, designerId uuid.UUID, req *dto.CreateModelRequest) (*dto.CreateModelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	designer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: designerId})
	if err != nil {
		return nil, err
	}
	if designer == nil || designer.UserType != entity.UserTypeDesigner {
		return nil, apperrors.NewValidation("only designers can publish models")
	}

	model := &entity.DesignerModel{
		Id:            uuid.New(),
		DesignerId:    designerId,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		PicturesURL:   req.PicturesURL,
		FileURL:       req.FileURL,
		Price:         req.Price,
		AllowPurchase: req.AllowPurchase,
	}
	if err := uow.ModelRepository().Create(ctx, model); err != nil {
		return nil, err
	}

	return &dto.CreateModelResponse{Id: model.Id}, nil
}

func (s *modelService) List(ctx context.Context, req *dto.ListModelsRequest) (*dto.ListModelsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 10
	}

	var filters []specification.Specification
	if req.Category != "" {
		filters = append(filters, specification.Filter("category", req.Category))
	}
	if req.DesignerId != nil {
		filters = append(filters, specification.Filter("designer_id", *req.DesignerId))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.ModelRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Field: "likes_count", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	models, err := uow.ModelRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	return &dto.ListModelsResponse{
		Models: s.modelMapper.ToResponseList(models),
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}

func (s *modelService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ModelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	model, err := uow.ModelRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, apperrors.NewNotFound("model not found")
	}
	return s.modelMapper.ToResponse(model), nil
}

// Purchase sells a model license to a printer. The purchase price goes to the
// designer as settled money immediately; there is no campaign holding it.
func (s *modelService) Purchase(ctx context.Context, printerId uuid.UUID, modelId uuid.UUID) (*dto.PurchaseModelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	model, err := uow.ModelRepository().FindOne(ctx, specification.ByID{ID: modelId})
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, apperrors.NewNotFound("model not found")
	}
	if !model.AllowPurchase {
		return nil, apperrors.NewValidation("model is not for sale")
	}

	existing, err := uow.ModelRepository().FindPurchase(ctx, modelId, printerId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewValidation("model already purchased")
	}

	tx := &entity.Transaction{
		Id:       uuid.New(),
		UserId:   model.DesignerId,
		Amount:   model.Price,
		Type:     entity.TransactionTypeModelPurchase,
		IsFuture: false,
	}
	if err := s.ledger.Record(ctx, uow, tx); err != nil {
		return nil, err
	}

	purchase := &entity.ModelPurchase{
		Id:            uuid.New(),
		ModelId:       modelId,
		PrinterId:     printerId,
		Price:         model.Price,
		TransactionId: tx.Id,
	}
	if err := uow.ModelRepository().CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.PurchaseModelResponse{
		PurchaseId: purchase.Id,
		FileURL:    model.FileURL,
	}, nil
}

func (s *modelService) Like(ctx context.Context, userId uuid.UUID, modelId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	model, err := uow.ModelRepository().FindOne(ctx, specification.ByID{ID: modelId})
	if err != nil {
		return err
	}
	if model == nil {
		return apperrors.NewNotFound("model not found")
	}

	like := &entity.ModelLike{
		Id:      uuid.New(),
		ModelId: modelId,
		UserId:  userId,
	}
	if err := uow.ModelRepository().CreateLike(ctx, like); err != nil {
		return err
	}

	model.LikesCount++
	if err := uow.ModelRepository().Update(ctx, model); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *modelService) Unlike(ctx context.Context, userId uuid.UUID, modelId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	model, err := uow.ModelRepository().FindOne(ctx, specification.ByID{ID: modelId})
	if err != nil {
		return err
	}
	if model == nil {
		return apperrors.NewNotFound("model not found")
	}

	if err := uow.ModelRepository().DeleteLike(ctx, modelId, userId); err != nil {
		return err
	}

	if model.LikesCount > 0 {
		model.LikesCount--
	}
	if err := uow.ModelRepository().Update(ctx, model); err != nil {
		return err
	}

	return uow.Commit()
}
