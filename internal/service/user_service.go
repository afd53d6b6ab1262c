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

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error
	GetBalance(ctx context.Context, userId uuid.UUID) (*dto.BalanceResponse, error)
	Cashout(ctx context.Context, userId uuid.UUID, req *dto.CashoutRequest) (*dto.CashoutResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     ledger.Ledger
	userMapper *mapper.UserMapper
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, ledger ledger.Ledger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		ledger:     ledger,
		userMapper: mapper.NewUserMapper(),
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user not found")
	}
	return s.userMapper.ToProfile(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user not found")
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	return uow.UserRepository().Update(ctx, user)
}

// GetBalance derives both balance positions from the ledger. Current money is
// withdrawable; future money is held until its campaign settles.
func (s *userService) GetBalance(ctx context.Context, userId uuid.UUID) (*dto.BalanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	current, err := s.ledger.SumBalance(ctx, uow, userId, false)
	if err != nil {
		return nil, err
	}
	future, err := s.ledger.SumBalance(ctx, uow, userId, true)
	if err != nil {
		return nil, err
	}

	return &dto.BalanceResponse{Current: current, Future: future}, nil
}

// Cashout withdraws from the current balance by appending a negative cashout
// entry. The balance check and the insert share one transaction so a
// concurrent cashout cannot overdraw.
func (s *userService) Cashout(ctx context.Context, userId uuid.UUID, req *dto.CashoutRequest) (*dto.CashoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	current, err := s.ledger.SumBalance(ctx, uow, userId, false)
	if err != nil {
		return nil, err
	}
	if req.Amount > current {
		return nil, apperrors.NewValidation("insufficient balance")
	}

	cashout := &entity.Transaction{
		Id:       uuid.New(),
		UserId:   userId,
		Amount:   -req.Amount,
		Type:     entity.TransactionTypeCashout,
		IsFuture: false,
	}
	if err := s.ledger.Record(ctx, uow, cashout); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CashoutResponse{
		TransactionId: cashout.Id,
		Amount:        req.Amount,
		Remaining:     current - req.Amount,
	}, nil
}
