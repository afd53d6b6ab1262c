package implementation

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/model"
	"printmob-be/internal/repository/contract"
	"printmob-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepositoryImpl struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) contract.TransactionRepository {
	return &transactionRepositoryImpl{db: db}
}

func (r *transactionRepositoryImpl) Create(ctx context.Context, transaction *entity.Transaction) error {
	mt := &model.Transaction{
		Id:        transaction.Id,
		PaymentId: transaction.PaymentId,
		UserId:    transaction.UserId,
		Amount:    transaction.Amount,
		Type:      string(transaction.Type),
		IsFuture:  transaction.IsFuture,
	}
	return r.db.WithContext(ctx).Create(mt).Error
}

func (r *transactionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error) {
	var mt model.Transaction
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mt), nil
}

func (r *transactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	var mts []*model.Transaction
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mts).Error; err != nil {
		return nil, err
	}

	var transactions []*entity.Transaction
	for _, mt := range mts {
		transactions = append(transactions, r.mapToEntity(mt))
	}

	return transactions, nil
}

func (r *transactionRepositoryImpl) MarkSettled(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).
		UpdateColumn("is_future", false).Error
}

func (r *transactionRepositoryImpl) SumAmount(ctx context.Context, userId uuid.UUID, isFuture bool) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ? AND is_future = ?", userId, isFuture).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *transactionRepositoryImpl) mapToEntity(mt *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		Id:        mt.Id,
		PaymentId: mt.PaymentId,
		UserId:    mt.UserId,
		Amount:    mt.Amount,
		Type:      entity.TransactionType(mt.Type),
		IsFuture:  mt.IsFuture,
		CreatedAt: mt.CreatedAt,
	}
}
