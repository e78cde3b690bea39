package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// In-memory fakes of the repository interfaces. They reproduce the two
// storage-level guarantees the services rely on: the unique constraint on
// user email and the atomic conditional update on token consume.

// ==================== USER ====================

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	// missOnce makes the next FindByEmail report no match, simulating a
	// concurrent insert landing between lookup and create
	missOnce bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			// Same shape as the Postgres unique violation
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}

	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.missOnce {
		f.missOnce = false
		return nil, nil
	}

	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	user.PasswordHash = &passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("user %s not found", user.ID.String())
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// ==================== TOKEN ====================

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entity.PasswordSetupToken // keyed by token hash
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*entity.PasswordSetupToken)}
}

func (f *fakeTokenRepo) Create(ctx context.Context, token *entity.PasswordSetupToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	clone := *token
	f.tokens[token.TokenHash] = &clone
	return nil
}

func (f *fakeTokenRepo) FindByHash(ctx context.Context, tokenHash string) (*entity.PasswordSetupToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	token, ok := f.tokens[tokenHash]
	if !ok {
		return nil, nil
	}
	clone := *token
	return &clone, nil
}

// Consume mirrors the conditional UPDATE: check and mark under one lock.
func (f *fakeTokenRepo) Consume(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	token, ok := f.tokens[tokenHash]
	if !ok || token.UsedAt != nil || !time.Now().Before(token.ExpiresAt) {
		return uuid.Nil, nil
	}

	now := time.Now()
	token.UsedAt = &now
	return token.UserID, nil
}

func (f *fakeTokenRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokens)
}

// expire rewinds a stored token so expiry paths can be tested
func (f *fakeTokenRepo) expire(tokenHash string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token, ok := f.tokens[tokenHash]; ok {
		token.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

// ==================== ORDER ====================

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (f *fakeOrderRepo) Insert(ctx context.Context, order *entity.Order) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.orders {
		if o.PaymentIntentID == order.PaymentIntentID {
			return false, nil
		}
	}

	clone := *order
	f.orders[order.ID] = &clone
	return true, nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderRepo) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.orders {
		if o.PaymentIntentID == paymentIntentID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var orders []*entity.Order
	for _, o := range f.orders {
		if o.UserID != nil && *o.UserID == userID {
			clone := *o
			orders = append(orders, &clone)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) LinkGuestOrders(ctx context.Context, userID uuid.UUID, email string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, o := range f.orders {
		if o.UserID == nil && strings.EqualFold(o.EmailSnapshot, email) {
			id := userID
			o.UserID = &id
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id.String())
	}
	order.Status = status
	return nil
}

func (f *fakeOrderRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

// addGuestOrder seeds an unlinked order for linking tests
func (f *fakeOrderRepo) addGuestOrder(email, paymentIntentID string) *entity.Order {
	f.mu.Lock()
	defer f.mu.Unlock()

	order := &entity.Order{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		EmailSnapshot:   email,
		Total:           50,
		Currency:        "USD",
		Status:          entity.OrderStatusGathering,
		PaymentProvider: "stripe",
		PaymentIntentID: paymentIntentID,
	}
	f.orders[order.ID] = order
	return order
}

// ==================== SESSION ====================

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	clone := *session
	f.sessions[session.ID] = &clone
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sessions {
		if s.Token.String() == token && s.RevokedAt == nil && time.Now().Before(s.ExpiresAt) {
			clone := *s
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sessions {
		if s.Token.String() == token && s.RevokedAt == nil {
			now := time.Now()
			s.RevokedAt = &now
			return nil
		}
	}
	return fmt.Errorf("session not found or already revoked")
}

func (f *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	for _, s := range f.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	return nil
}

// ==================== MAILER ====================

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeMailer) lastMail() sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

// ==================== HARNESS ====================

type testEnv struct {
	repo     *repository.Repository
	users    *fakeUserRepo
	tokens   *fakeTokenRepo
	orders   *fakeOrderRepo
	sessions *fakeSessionRepo
	mail     *fakeMailer
	config   *utils.Config
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	orders := newFakeOrderRepo()
	sessions := newFakeSessionRepo()

	return &testEnv{
		repo: &repository.Repository{
			User:    users,
			Token:   tokens,
			Order:   orders,
			Session: sessions,
		},
		users:    users,
		tokens:   tokens,
		orders:   orders,
		sessions: sessions,
		mail:     &fakeMailer{},
		config: &utils.Config{
			App: utils.AppConfig{
				Name:    "storefront-test",
				BaseURL: "http://localhost:3000",
			},
			Token: utils.TokenConfig{
				ExpiryHours:  24,
				SessionHours: 24,
			},
		},
	}
}

func (e *testEnv) newService() *Service {
	return NewService(e.repo, e.config, e.mail, zap.NewNop())
}

// seedUser adds a user directly; passwordHash nil means "no password set"
func (e *testEnv) seedUser(email string, passwordHash *string) *entity.User {
	now := time.Now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		Name:         "Seeded User",
		PasswordHash: passwordHash,
		Role:         entity.RoleCustomer,
	}
	e.users.mu.Lock()
	e.users.users[user.ID] = user
	e.users.mu.Unlock()
	return user
}
