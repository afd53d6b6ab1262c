package settlement

import (
	"context"
	"sync"
	"time"

	"printmob-be/internal/entity"
	"printmob-be/internal/repository/contract"
	"printmob-be/internal/repository/specification"
	"printmob-be/internal/repository/unitofwork"
	"printmob-be/pkg/payment"

	"github.com/google/uuid"
)

// memStore is the shared backing state of the fake repositories. Writes made
// inside a unit of work are staged and only land here on Commit, which is what
// lets the tests observe per-pledge rollback.
type memStore struct {
	mu           sync.Mutex
	campaigns    map[uuid.UUID]*entity.Campaign
	pledges      map[uuid.UUID]*entity.Pledge
	transactions map[uuid.UUID]*entity.Transaction
	orders       []*entity.Order
	users        map[uuid.UUID]*entity.User
	failures     []*entity.FailedRefund

	// statusCommitErr makes UpdateStatus fail for the given campaigns.
	statusCommitErr map[uuid.UUID]error
}

func newMemStore() *memStore {
	return &memStore{
		campaigns:       make(map[uuid.UUID]*entity.Campaign),
		pledges:         make(map[uuid.UUID]*entity.Pledge),
		transactions:    make(map[uuid.UUID]*entity.Transaction),
		users:           make(map[uuid.UUID]*entity.User),
		statusCommitErr: make(map[uuid.UUID]error),
	}
}

func (s *memStore) campaign(id uuid.UUID) entity.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.campaigns[id]
}

func (s *memStore) pledge(id uuid.UUID) entity.Pledge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.pledges[id]
}

func (s *memStore) transaction(id uuid.UUID) entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.transactions[id]
}

// refundRowFor returns the refund entry written against the given payment
// reference for the given user, or nil when none was recorded.
func (s *memStore) refundRowFor(paymentId string, userId uuid.UUID) *entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.transactions {
		if tx.Type == entity.TransactionTypeRefund && tx.PaymentId == paymentId && tx.UserId == userId {
			cp := *tx
			return &cp
		}
	}
	return nil
}

type memFactory struct {
	store *memStore
}

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{store: f.store}
}

// memUow stages mutations until Commit. Reads always hit committed state,
// which matches how the settlement code uses its transactions.
type memUow struct {
	store     *memStore
	pending   []func(*memStore)
	inTx      bool
	committed bool
}

// stage queues a write for Commit, or applies it straight away outside a
// transaction, matching the auto-commit behavior of the real implementation.
func (u *memUow) stage(fn func(*memStore)) {
	if !u.inTx {
		u.store.mu.Lock()
		defer u.store.mu.Unlock()
		fn(u.store)
		return
	}
	u.pending = append(u.pending, fn)
}

func (u *memUow) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *memUow) Commit() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, fn := range u.pending {
		fn(u.store)
	}
	u.pending = nil
	u.committed = true
	return nil
}

func (u *memUow) Rollback() error {
	if !u.committed {
		u.pending = nil
	}
	return nil
}

func (u *memUow) UserRepository() contract.UserRepository {
	return &memUserRepo{uow: u}
}

func (u *memUow) CampaignRepository() contract.CampaignRepository {
	return &memCampaignRepo{uow: u}
}

func (u *memUow) PledgeRepository() contract.PledgeRepository {
	return &memPledgeRepo{uow: u}
}

func (u *memUow) TransactionRepository() contract.TransactionRepository {
	return &memTransactionRepo{uow: u}
}

func (u *memUow) OrderRepository() contract.OrderRepository {
	return &memOrderRepo{uow: u}
}

func (u *memUow) FailedRefundRepository() contract.FailedRefundRepository {
	return &memFailedRefundRepo{uow: u}
}

func (u *memUow) ModelRepository() contract.ModelRepository {
	return &memModelRepo{uow: u}
}

// campaignMatches interprets the specifications the settlement jobs actually
// use against an in-memory row.
func campaignMatches(c *entity.Campaign, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.Finalizable:
			due := c.Status == entity.CampaignStatusToBeFinalized ||
				((c.Status == entity.CampaignStatusInProgress || c.Status == entity.CampaignStatusConfirmed) &&
					c.EndDate.Before(s.Now))
			if !due {
				return false
			}
		case specification.ByStatus:
			if string(c.Status) != s.Status {
				return false
			}
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		}
	}
	return true
}

type memCampaignRepo struct {
	uow *memUow
}

func (r *memCampaignRepo) Create(ctx context.Context, campaign *entity.Campaign) error {
	cp := *campaign
	r.uow.stage(func(s *memStore) { s.campaigns[cp.Id] = &cp })
	return nil
}

func (r *memCampaignRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Campaign, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.campaigns {
		if campaignMatches(c, specs) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCampaignRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Campaign, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Campaign
	for _, c := range s.campaigns {
		if campaignMatches(c, specs) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCampaignRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *memCampaignRepo) UpdateStatus(ctx context.Context, campaign *entity.Campaign) error {
	if err := r.uow.store.statusCommitErr[campaign.Id]; err != nil {
		return err
	}
	id, status := campaign.Id, campaign.Status
	r.uow.stage(func(s *memStore) {
		if row, ok := s.campaigns[id]; ok {
			row.Status = status
		}
	})
	return nil
}

func (r *memCampaignRepo) Update(ctx context.Context, campaign *entity.Campaign) error {
	cp := *campaign
	r.uow.stage(func(s *memStore) { s.campaigns[cp.Id] = &cp })
	return nil
}

func (r *memCampaignRepo) AdjustPledgers(ctx context.Context, campaign *entity.Campaign, delta int) error {
	id := campaign.Id
	r.uow.stage(func(s *memStore) {
		if row, ok := s.campaigns[id]; ok {
			row.CurrentPledgers += delta
		}
	})
	return nil
}

func (r *memCampaignRepo) CreateTechDetail(ctx context.Context, detail *entity.CampaignTechDetail) error {
	return nil
}

type memPledgeRepo struct {
	uow *memUow
}

func (r *memPledgeRepo) Create(ctx context.Context, pledge *entity.Pledge) error {
	cp := *pledge
	r.uow.stage(func(s *memStore) { s.pledges[cp.Id] = &cp })
	return nil
}

func (r *memPledgeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Pledge, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if p, ok := s.pledges[byId.ID]; ok {
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *memPledgeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Pledge, error) {
	return nil, nil
}

func (r *memPledgeRepo) FindLiveByCampaign(ctx context.Context, campaignId uuid.UUID) ([]*entity.Pledge, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Pledge
	for _, p := range s.pledges {
		if p.CampaignId == campaignId && p.IsLive() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPledgeRepo) FindLiveByBuyerAndCampaign(ctx context.Context, buyerId, campaignId uuid.UUID) (*entity.Pledge, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pledges {
		if p.CampaignId == campaignId && p.BuyerId == buyerId && p.IsLive() {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPledgeRepo) CountLive(ctx context.Context, campaignId uuid.UUID) (int64, error) {
	live, err := r.FindLiveByCampaign(ctx, campaignId)
	return int64(len(live)), err
}

func (r *memPledgeRepo) Update(ctx context.Context, pledge *entity.Pledge) error {
	cp := *pledge
	r.uow.stage(func(s *memStore) { s.pledges[cp.Id] = &cp })
	return nil
}

func (r *memPledgeRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	r.uow.stage(func(s *memStore) {
		if p, ok := s.pledges[id]; ok {
			now := time.Now()
			p.DeletedAt = &now
		}
	})
	return nil
}

type memTransactionRepo struct {
	uow *memUow
}

func (r *memTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	cp := *transaction
	r.uow.stage(func(s *memStore) { s.transactions[cp.Id] = &cp })
	return nil
}

func (r *memTransactionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if tx, ok := s.transactions[byId.ID]; ok {
				cp := *tx
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *memTransactionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *memTransactionRepo) MarkSettled(ctx context.Context, id uuid.UUID) error {
	r.uow.stage(func(s *memStore) {
		if tx, ok := s.transactions[id]; ok {
			tx.IsFuture = false
		}
	})
	return nil
}

func (r *memTransactionRepo) SumAmount(ctx context.Context, userId uuid.UUID, isFuture bool) (float64, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, tx := range s.transactions {
		if tx.UserId == userId && tx.IsFuture == isFuture {
			sum += tx.Amount
		}
	}
	return sum, nil
}

type memOrderRepo struct {
	uow *memUow
}

func (r *memOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	cp := *order
	r.uow.stage(func(s *memStore) { s.orders = append(s.orders, &cp) })
	return nil
}

func (r *memOrderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	return nil, nil
}

func (r *memOrderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Order, 0, len(s.orders))
	for _, o := range s.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	return nil
}

type memFailedRefundRepo struct {
	uow *memUow
}

func (r *memFailedRefundRepo) CreateBatch(ctx context.Context, failures []*entity.FailedRefund) error {
	cps := make([]*entity.FailedRefund, 0, len(failures))
	for _, f := range failures {
		cp := *f
		cps = append(cps, &cp)
	}
	r.uow.stage(func(s *memStore) { s.failures = append(s.failures, cps...) })
	return nil
}

func (r *memFailedRefundRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FailedRefund, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.FailedRefund, 0, len(s.failures))
	for _, f := range s.failures {
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}

type memUserRepo struct {
	uow *memUow
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	cp := *user
	r.uow.stage(func(s *memStore) { s.users[cp.Id] = &cp })
	return nil
}

func (r *memUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if u, ok := s.users[byId.ID]; ok {
				cp := *u
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.User
	for _, spec := range specs {
		if byIds, ok := spec.(specification.ByIDs); ok {
			for _, id := range byIds.IDs {
				if u, ok := s.users[id]; ok {
					cp := *u
					out = append(out, &cp)
				}
			}
		}
	}
	return out, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	cp := *user
	r.uow.stage(func(s *memStore) { s.users[cp.Id] = &cp })
	return nil
}

type memModelRepo struct {
	uow *memUow
}

func (r *memModelRepo) Create(ctx context.Context, model *entity.DesignerModel) error {
	return nil
}

func (r *memModelRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DesignerModel, error) {
	return nil, nil
}

func (r *memModelRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DesignerModel, error) {
	return nil, nil
}

func (r *memModelRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *memModelRepo) Update(ctx context.Context, model *entity.DesignerModel) error {
	return nil
}

func (r *memModelRepo) CreatePurchase(ctx context.Context, purchase *entity.ModelPurchase) error {
	return nil
}

func (r *memModelRepo) FindPurchase(ctx context.Context, modelId, printerId uuid.UUID) (*entity.ModelPurchase, error) {
	return nil, nil
}

func (r *memModelRepo) CreateLike(ctx context.Context, like *entity.ModelLike) error {
	return nil
}

func (r *memModelRepo) DeleteLike(ctx context.Context, modelId, userId uuid.UUID) error {
	return nil
}

// fakeGateway records refund calls and can be scripted to fail per payment.
type fakeGateway struct {
	mu        sync.Mutex
	refunds   map[string]float64
	refundErr map[string]error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		refunds:   make(map[string]float64),
		refundErr: make(map[string]error),
	}
}

func (g *fakeGateway) CreatePledgePreference(ctx context.Context, orderRef string, campaign *entity.Campaign) (*payment.Preference, error) {
	return &payment.Preference{Id: "pref-" + orderRef, RedirectURL: "https://pay.test/" + orderRef}, nil
}

func (g *fakeGateway) FetchPayment(ctx context.Context, paymentId string) (*payment.Details, error) {
	return &payment.Details{PaymentId: paymentId, Status: "settlement"}, nil
}

func (g *fakeGateway) RefundPayment(ctx context.Context, paymentId string, amount float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.refundErr[paymentId]; err != nil {
		return err
	}
	g.refunds[paymentId] = amount
	return nil
}

func (g *fakeGateway) refundedAmount(paymentId string) (float64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	amount, ok := g.refunds[paymentId]
	return amount, ok
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
