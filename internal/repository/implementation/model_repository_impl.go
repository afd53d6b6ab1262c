package implementation

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/model"
	"printmob-be/internal/repository/contract"
	"printmob-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type modelRepositoryImpl struct {
	db *gorm.DB
}

func NewModelRepository(db *gorm.DB) contract.ModelRepository {
	return &modelRepositoryImpl{db: db}
}

func (r *modelRepositoryImpl) Create(ctx context.Context, dm *entity.DesignerModel) error {
	mm := &model.DesignerModel{
		Id:            dm.Id,
		DesignerId:    dm.DesignerId,
		Name:          dm.Name,
		Description:   dm.Description,
		Category:      dm.Category,
		PicturesURL:   datatypes.NewJSONSlice(dm.PicturesURL),
		FileURL:       dm.FileURL,
		Price:         dm.Price,
		AllowPurchase: dm.AllowPurchase,
	}
	return r.db.WithContext(ctx).Create(mm).Error
}

func (r *modelRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DesignerModel, error) {
	var mm model.DesignerModel
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mm), nil
}

func (r *modelRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DesignerModel, error) {
	var mms []*model.DesignerModel
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mms).Error; err != nil {
		return nil, err
	}

	var models []*entity.DesignerModel
	for _, mm := range mms {
		models = append(models, r.mapToEntity(mm))
	}

	return models, nil
}

func (r *modelRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.DesignerModel{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *modelRepositoryImpl) Update(ctx context.Context, dm *entity.DesignerModel) error {
	return r.db.WithContext(ctx).Model(&model.DesignerModel{}).
		Where("id = ?", dm.Id).
		Updates(map[string]interface{}{
			"name":           dm.Name,
			"description":    dm.Description,
			"category":       dm.Category,
			"price":          dm.Price,
			"allow_purchase": dm.AllowPurchase,
			"likes_count":    dm.LikesCount,
		}).Error
}

func (r *modelRepositoryImpl) CreatePurchase(ctx context.Context, purchase *entity.ModelPurchase) error {
	mp := &model.ModelPurchase{
		Id:            purchase.Id,
		ModelId:       purchase.ModelId,
		PrinterId:     purchase.PrinterId,
		Price:         purchase.Price,
		TransactionId: purchase.TransactionId,
	}
	return r.db.WithContext(ctx).Create(mp).Error
}

func (r *modelRepositoryImpl) FindPurchase(ctx context.Context, modelId, printerId uuid.UUID) (*entity.ModelPurchase, error) {
	var mp model.ModelPurchase
	err := r.db.WithContext(ctx).
		Where("model_id = ? AND printer_id = ?", modelId, printerId).
		First(&mp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &entity.ModelPurchase{
		Id:            mp.Id,
		ModelId:       mp.ModelId,
		PrinterId:     mp.PrinterId,
		Price:         mp.Price,
		TransactionId: mp.TransactionId,
		CreatedAt:     mp.CreatedAt,
	}, nil
}

func (r *modelRepositoryImpl) CreateLike(ctx context.Context, like *entity.ModelLike) error {
	ml := &model.ModelLike{
		Id:      like.Id,
		ModelId: like.ModelId,
		UserId:  like.UserId,
	}
	return r.db.WithContext(ctx).Create(ml).Error
}

func (r *modelRepositoryImpl) DeleteLike(ctx context.Context, modelId, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("model_id = ? AND user_id = ?", modelId, userId).
		Delete(&model.ModelLike{}).Error
}

func (r *modelRepositoryImpl) mapToEntity(mm *model.DesignerModel) *entity.DesignerModel {
	dm := &entity.DesignerModel{
		Id:            mm.Id,
		DesignerId:    mm.DesignerId,
		Name:          mm.Name,
		Description:   mm.Description,
		Category:      mm.Category,
		PicturesURL:   mm.PicturesURL,
		FileURL:       mm.FileURL,
		Price:         mm.Price,
		AllowPurchase: mm.AllowPurchase,
		LikesCount:    mm.LikesCount,
		CreatedAt:     mm.CreatedAt,
		UpdatedAt:     mm.UpdatedAt,
	}
	if mm.DeletedAt.Valid {
		deletedAt := mm.DeletedAt.Time
		dm.DeletedAt = &deletedAt
	}
	return dm
}
