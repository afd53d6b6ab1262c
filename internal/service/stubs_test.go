package service

import (
	"context"
	"time"

	"printmob-be/internal/entity"
	"printmob-be/internal/repository/contract"
	"printmob-be/internal/repository/specification"
	"printmob-be/internal/repository/unitofwork"
	"printmob-be/pkg/payment"

	"github.com/google/uuid"
)

// stubStore backs the fake repositories used across the service tests.
// Mutations are staged per unit of work and only land on Commit, mirroring
// the transactional behavior the services rely on.
type stubStore struct {
	campaigns    map[uuid.UUID]*entity.Campaign
	pledges      map[uuid.UUID]*entity.Pledge
	transactions map[uuid.UUID]*entity.Transaction
	models       map[uuid.UUID]*entity.DesignerModel
	users        map[uuid.UUID]*entity.User
	orders       map[uuid.UUID]*entity.Order
}

func newStubStore() *stubStore {
	return &stubStore{
		campaigns:    make(map[uuid.UUID]*entity.Campaign),
		pledges:      make(map[uuid.UUID]*entity.Pledge),
		transactions: make(map[uuid.UUID]*entity.Transaction),
		models:       make(map[uuid.UUID]*entity.DesignerModel),
		users:        make(map[uuid.UUID]*entity.User),
		orders:       make(map[uuid.UUID]*entity.Order),
	}
}

func (s *stubStore) livePledges(campaignId uuid.UUID) []*entity.Pledge {
	var out []*entity.Pledge
	for _, p := range s.pledges {
		if p.CampaignId == campaignId && p.IsLive() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

type stubFactory struct {
	store *stubStore
}

func (f *stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &stubUow{store: f.store}
}

type stubUow struct {
	store     *stubStore
	pending   []func(*stubStore)
	inTx      bool
	committed bool
}

// stage queues a write for Commit, or applies it straight away outside a
// transaction, matching the auto-commit behavior of the real implementation.
func (u *stubUow) stage(fn func(*stubStore)) {
	if !u.inTx {
		fn(u.store)
		return
	}
	u.pending = append(u.pending, fn)
}

func (u *stubUow) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *stubUow) Commit() error {
	for _, fn := range u.pending {
		fn(u.store)
	}
	u.pending = nil
	u.committed = true
	return nil
}

func (u *stubUow) Rollback() error {
	if !u.committed {
		u.pending = nil
	}
	return nil
}

func (u *stubUow) UserRepository() contract.UserRepository {
	return &stubUserRepo{uow: u}
}

func (u *stubUow) CampaignRepository() contract.CampaignRepository {
	return &stubCampaignRepo{uow: u}
}

func (u *stubUow) PledgeRepository() contract.PledgeRepository {
	return &stubPledgeRepo{uow: u}
}

func (u *stubUow) TransactionRepository() contract.TransactionRepository {
	return &stubTransactionRepo{uow: u}
}

func (u *stubUow) OrderRepository() contract.OrderRepository {
	return &stubOrderRepo{uow: u}
}

func (u *stubUow) FailedRefundRepository() contract.FailedRefundRepository {
	return &stubFailedRefundRepo{}
}

func (u *stubUow) ModelRepository() contract.ModelRepository {
	return &stubModelRepo{uow: u}
}

type stubCampaignRepo struct {
	uow *stubUow
}

func (r *stubCampaignRepo) Create(ctx context.Context, campaign *entity.Campaign) error {
	cp := *campaign
	r.uow.stage(func(s *stubStore) { s.campaigns[cp.Id] = &cp })
	return nil
}

func (r *stubCampaignRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Campaign, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if c, ok := r.uow.store.campaigns[byId.ID]; ok {
				cp := *c
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *stubCampaignRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Campaign, error) {
	var out []*entity.Campaign
	for _, c := range r.uow.store.campaigns {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubCampaignRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.store.campaigns)), nil
}

func (r *stubCampaignRepo) UpdateStatus(ctx context.Context, campaign *entity.Campaign) error {
	id, status, endDate := campaign.Id, campaign.Status, campaign.EndDate
	r.uow.stage(func(s *stubStore) {
		if row, ok := s.campaigns[id]; ok {
			row.Status = status
			row.EndDate = endDate
		}
	})
	return nil
}

func (r *stubCampaignRepo) Update(ctx context.Context, campaign *entity.Campaign) error {
	cp := *campaign
	r.uow.stage(func(s *stubStore) { s.campaigns[cp.Id] = &cp })
	return nil
}

func (r *stubCampaignRepo) AdjustPledgers(ctx context.Context, campaign *entity.Campaign, delta int) error {
	id := campaign.Id
	r.uow.stage(func(s *stubStore) {
		if row, ok := s.campaigns[id]; ok {
			row.CurrentPledgers += delta
		}
	})
	return nil
}

func (r *stubCampaignRepo) CreateTechDetail(ctx context.Context, detail *entity.CampaignTechDetail) error {
	cp := *detail
	r.uow.stage(func(s *stubStore) {
		if row, ok := s.campaigns[cp.CampaignId]; ok {
			row.TechDetail = &cp
		}
	})
	return nil
}

type stubPledgeRepo struct {
	uow *stubUow
}

func (r *stubPledgeRepo) Create(ctx context.Context, pledge *entity.Pledge) error {
	cp := *pledge
	r.uow.stage(func(s *stubStore) { s.pledges[cp.Id] = &cp })
	return nil
}

func (r *stubPledgeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Pledge, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if p, ok := r.uow.store.pledges[byId.ID]; ok {
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *stubPledgeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Pledge, error) {
	var out []*entity.Pledge
	for _, spec := range specs {
		if byBuyer, ok := spec.(specification.ByBuyer); ok {
			for _, p := range r.uow.store.pledges {
				if p.BuyerId == byBuyer.BuyerID && p.IsLive() {
					cp := *p
					out = append(out, &cp)
				}
			}
		}
	}
	return out, nil
}

func (r *stubPledgeRepo) FindLiveByCampaign(ctx context.Context, campaignId uuid.UUID) ([]*entity.Pledge, error) {
	return r.uow.store.livePledges(campaignId), nil
}

func (r *stubPledgeRepo) FindLiveByBuyerAndCampaign(ctx context.Context, buyerId, campaignId uuid.UUID) (*entity.Pledge, error) {
	for _, p := range r.uow.store.pledges {
		if p.CampaignId == campaignId && p.BuyerId == buyerId && p.IsLive() {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubPledgeRepo) CountLive(ctx context.Context, campaignId uuid.UUID) (int64, error) {
	return int64(len(r.uow.store.livePledges(campaignId))), nil
}

func (r *stubPledgeRepo) Update(ctx context.Context, pledge *entity.Pledge) error {
	cp := *pledge
	r.uow.stage(func(s *stubStore) { s.pledges[cp.Id] = &cp })
	return nil
}

func (r *stubPledgeRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	r.uow.stage(func(s *stubStore) {
		if p, ok := s.pledges[id]; ok {
			now := time.Now()
			p.DeletedAt = &now
		}
	})
	return nil
}

type stubTransactionRepo struct {
	uow *stubUow
}

func (r *stubTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	cp := *transaction
	r.uow.stage(func(s *stubStore) { s.transactions[cp.Id] = &cp })
	return nil
}

func (r *stubTransactionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if tx, ok := r.uow.store.transactions[byId.ID]; ok {
				cp := *tx
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *stubTransactionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *stubTransactionRepo) MarkSettled(ctx context.Context, id uuid.UUID) error {
	r.uow.stage(func(s *stubStore) {
		if tx, ok := s.transactions[id]; ok {
			tx.IsFuture = false
		}
	})
	return nil
}

func (r *stubTransactionRepo) SumAmount(ctx context.Context, userId uuid.UUID, isFuture bool) (float64, error) {
	var sum float64
	for _, tx := range r.uow.store.transactions {
		if tx.UserId == userId && tx.IsFuture == isFuture {
			sum += tx.Amount
		}
	}
	return sum, nil
}

type stubOrderRepo struct {
	uow *stubUow
}

func (r *stubOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	cp := *order
	r.uow.stage(func(s *stubStore) { s.orders[cp.Id] = &cp })
	return nil
}

func (r *stubOrderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if o, ok := r.uow.store.orders[byId.ID]; ok {
				cp := *o
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *stubOrderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.uow.store.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	cp := *order
	r.uow.stage(func(s *stubStore) { s.orders[cp.Id] = &cp })
	return nil
}

type stubFailedRefundRepo struct{}

func (stubFailedRefundRepo) CreateBatch(ctx context.Context, failures []*entity.FailedRefund) error {
	return nil
}

func (stubFailedRefundRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FailedRefund, error) {
	return nil, nil
}

type stubUserRepo struct {
	uow *stubUow
}

func (r *stubUserRepo) Create(ctx context.Context, user *entity.User) error {
	cp := *user
	r.uow.stage(func(s *stubStore) { s.users[cp.Id] = &cp })
	return nil
}

func (r *stubUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if u, ok := r.uow.store.users[byId.ID]; ok {
				cp := *u
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.uow.store.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *entity.User) error {
	cp := *user
	r.uow.stage(func(s *stubStore) { s.users[cp.Id] = &cp })
	return nil
}

type stubModelRepo struct {
	uow *stubUow
}

func (r *stubModelRepo) Create(ctx context.Context, model *entity.DesignerModel) error {
	cp := *model
	r.uow.stage(func(s *stubStore) { s.models[cp.Id] = &cp })
	return nil
}

func (r *stubModelRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DesignerModel, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if m, ok := r.uow.store.models[byId.ID]; ok {
				cp := *m
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *stubModelRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DesignerModel, error) {
	var out []*entity.DesignerModel
	for _, m := range r.uow.store.models {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubModelRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.store.models)), nil
}

func (r *stubModelRepo) Update(ctx context.Context, model *entity.DesignerModel) error {
	cp := *model
	r.uow.stage(func(s *stubStore) { s.models[cp.Id] = &cp })
	return nil
}

func (r *stubModelRepo) CreatePurchase(ctx context.Context, purchase *entity.ModelPurchase) error {
	return nil
}

func (r *stubModelRepo) FindPurchase(ctx context.Context, modelId, printerId uuid.UUID) (*entity.ModelPurchase, error) {
	return nil, nil
}

func (r *stubModelRepo) CreateLike(ctx context.Context, like *entity.ModelLike) error {
	return nil
}

func (r *stubModelRepo) DeleteLike(ctx context.Context, modelId, userId uuid.UUID) error {
	return nil
}

// stubGateway scripts the payment provider for the service tests.
type stubGateway struct {
	preferences []string // order refs passed to CreatePledgePreference
	payment     *payment.Details
	fetchErr    error
	refundErr   error
	refunds     map[string]float64
}

func newStubGateway() *stubGateway {
	return &stubGateway{refunds: make(map[string]float64)}
}

func (g *stubGateway) CreatePledgePreference(ctx context.Context, orderRef string, campaign *entity.Campaign) (*payment.Preference, error) {
	g.preferences = append(g.preferences, orderRef)
	return &payment.Preference{Id: "pref-" + orderRef, RedirectURL: "https://pay.test/" + orderRef}, nil
}

func (g *stubGateway) FetchPayment(ctx context.Context, paymentId string) (*payment.Details, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	if g.payment != nil {
		return g.payment, nil
	}
	return &payment.Details{PaymentId: paymentId, Status: "settlement"}, nil
}

func (g *stubGateway) RefundPayment(ctx context.Context, paymentId string, amount float64) error {
	if g.refundErr != nil {
		return g.refundErr
	}
	g.refunds[paymentId] = amount
	return nil
}

type silentLogger struct{}

func (silentLogger) Debug(module, message string, details map[string]interface{}) {}
func (silentLogger) Info(module, message string, details map[string]interface{})  {}
func (silentLogger) Warn(module, message string, details map[string]interface{})  {}
func (silentLogger) Error(module, message string, details map[string]interface{}) {}
func (silentLogger) Sync() error                                                  { return nil }
