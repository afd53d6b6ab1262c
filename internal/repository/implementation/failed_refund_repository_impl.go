package implementation

import (
	"context"
	"encoding/json"

	"printmob-be/internal/entity"
	"printmob-be/internal/model"
	"printmob-be/internal/repository/contract"
	"printmob-be/internal/repository/specification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type failedRefundRepositoryImpl struct {
	db *gorm.DB
}

func NewFailedRefundRepository(db *gorm.DB) contract.FailedRefundRepository {
	return &failedRefundRepositoryImpl{db: db}
}

func (r *failedRefundRepositoryImpl) CreateBatch(ctx context.Context, failures []*entity.FailedRefund) error {
	if len(failures) == 0 {
		return nil
	}

	var mfs []*model.FailedRefund
	for _, f := range failures {
		mf := &model.FailedRefund{
			Id:       f.Id,
			PledgeId: f.PledgeId,
			FailedAt: f.FailedAt,
			Error:    f.Error,
		}
		if f.Context != nil {
			raw, err := json.Marshal(f.Context)
			if err == nil {
				mf.Context = datatypes.JSON(raw)
			}
		}
		mfs = append(mfs, mf)
	}

	return r.db.WithContext(ctx).Create(&mfs).Error
}

func (r *failedRefundRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FailedRefund, error) {
	var mfs []*model.FailedRefund
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mfs).Error; err != nil {
		return nil, err
	}

	var failures []*entity.FailedRefund
	for _, mf := range mfs {
		f := &entity.FailedRefund{
			Id:       mf.Id,
			PledgeId: mf.PledgeId,
			FailedAt: mf.FailedAt,
			Error:    mf.Error,
		}
		if len(mf.Context) > 0 {
			_ = json.Unmarshal(mf.Context, &f.Context)
		}
		failures = append(failures, f)
	}

	return failures, nil
}
