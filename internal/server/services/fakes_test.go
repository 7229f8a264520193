package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/dbx"
	"github.com/dmarchuk/estatedesk/internal/server/models"
	clientsrepo "github.com/dmarchuk/estatedesk/internal/server/repositories/clients"
	profilesrepo "github.com/dmarchuk/estatedesk/internal/server/repositories/profiles"
	propertiesrepo "github.com/dmarchuk/estatedesk/internal/server/repositories/properties"
	transactionsrepo "github.com/dmarchuk/estatedesk/internal/server/repositories/transactions"
	trendsrepo "github.com/dmarchuk/estatedesk/internal/server/repositories/trends"
	usersrepo "github.com/dmarchuk/estatedesk/internal/server/repositories/users"
)

// --- in-memory fakes implementing the repository interfaces ---

type fakePropertiesRepo struct {
	byID   map[int64]*models.Property
	nextID int64
	err    error
}

func newFakePropertiesRepo() *fakePropertiesRepo {
	return &fakePropertiesRepo{byID: map[int64]*models.Property{}, nextID: 1}
}

func (f *fakePropertiesRepo) Create(ctx context.Context, p *models.Property) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	id := f.nextID
	f.nextID++
	cp := *p
	cp.ID = id
	f.byID[id] = &cp
	return id, nil
}

func (f *fakePropertiesRepo) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (f *fakePropertiesRepo) List(ctx context.Context) ([]*models.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Property
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePropertiesRepo) Update(ctx context.Context, p *models.Property) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[p.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePropertiesRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePropertiesRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.byID[id]
	return ok, nil
}

type fakeClientsRepo struct {
	byEmail map[string]*models.Client
	nextID  int64
	// raceOnCreate simulates a concurrent insert winning between the
	// lookup and the create: the first Create call reports
	// ErrAlreadyExists after inserting the row itself.
	raceOnCreate bool
	createErr    error
	createCalls  int
}

func newFakeClientsRepo() *fakeClientsRepo {
	return &fakeClientsRepo{byEmail: map[string]*models.Client{}, nextID: 1}
}

func (f *fakeClientsRepo) Create(ctx context.Context, c *models.Client) (int64, error) {
	f.createCalls++
	if f.createErr != nil {
		return 0, f.createErr
	}
	if _, ok := f.byEmail[c.Email]; ok {
		return 0, common.ErrAlreadyExists
	}
	id := f.nextID
	f.nextID++
	cp := *c
	cp.ID = id
	f.byEmail[c.Email] = &cp
	if f.raceOnCreate {
		f.raceOnCreate = false
		return 0, common.ErrAlreadyExists
	}
	return id, nil
}

func (f *fakeClientsRepo) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	c, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return c, nil
}

func (f *fakeClientsRepo) List(ctx context.Context) ([]*models.Client, error) {
	var out []*models.Client
	for _, c := range f.byEmail {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClientsRepo) Delete(ctx context.Context, id int64) error {
	for email, c := range f.byEmail {
		if c.ID == id {
			delete(f.byEmail, email)
			return nil
		}
	}
	return common.ErrNotFound
}

type fakeTransactionsRepo struct {
	byID      map[int64]*models.Transaction
	nextID    int64
	createErr error
}

func newFakeTransactionsRepo() *fakeTransactionsRepo {
	return &fakeTransactionsRepo{byID: map[int64]*models.Transaction{}, nextID: 1}
}

func (f *fakeTransactionsRepo) Create(ctx context.Context, t *models.Transaction) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	cp := *t
	cp.ID = id
	f.byID[id] = &cp
	return id, nil
}

func (f *fakeTransactionsRepo) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransactionsRepo) Update(ctx context.Context, id int64, amount decimal.Decimal, date time.Time) error {
	t, ok := f.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	t.Amount = amount
	t.Date = date
	return nil
}

func (f *fakeTransactionsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTransactionsRepo) ListDetailed(ctx context.Context) ([]*models.TransactionDetail, error) {
	var out []*models.TransactionDetail
	for _, t := range f.byID {
		out = append(out, &models.TransactionDetail{Transaction: *t})
	}
	return out, nil
}

func (f *fakeTransactionsRepo) ListByClientName(ctx context.Context, name string) ([]*models.TransactionWithProperty, error) {
	var out []*models.TransactionWithProperty
	for _, t := range f.byID {
		out = append(out, &models.TransactionWithProperty{Transaction: *t, PropertyName: fmt.Sprintf("property-%d", t.PropertyID)})
	}
	return out, nil
}

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	nextID  int64
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (int64, error) {
	if _, ok := f.byEmail[u.Email]; ok {
		return 0, common.ErrAlreadyExists
	}
	id := f.nextID
	f.nextID++
	cp := *u
	cp.ID = id
	f.byEmail[u.Email] = &cp
	return id, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeProfilesRepo struct {
	byUserID map[int64]*models.Profile
	nextID   int64
}

func newFakeProfilesRepo() *fakeProfilesRepo {
	return &fakeProfilesRepo{byUserID: map[int64]*models.Profile{}, nextID: 1}
}

func (f *fakeProfilesRepo) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	p, ok := f.byUserID[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfilesRepo) Upsert(ctx context.Context, p *models.Profile) error {
	cp := *p
	if existing, ok := f.byUserID[p.UserID]; ok {
		cp.ID = existing.ID
	} else {
		cp.ID = f.nextID
		f.nextID++
	}
	f.byUserID[p.UserID] = &cp
	return nil
}

type fakeTrendsRepo struct {
	trends []*models.Trend
	err    error
}

func (f *fakeTrendsRepo) Compute(ctx context.Context) ([]*models.Trend, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trends, nil
}

// fakeRepoManager hands the same fakes back regardless of the DBTX.
type fakeRepoManager struct {
	p  *fakePropertiesRepo
	c  *fakeClientsRepo
	t  *fakeTransactionsRepo
	u  *fakeUsersRepo
	pr *fakeProfilesRepo
	tr *fakeTrendsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		p:  newFakePropertiesRepo(),
		c:  newFakeClientsRepo(),
		t:  newFakeTransactionsRepo(),
		u:  newFakeUsersRepo(),
		pr: newFakeProfilesRepo(),
		tr: &fakeTrendsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return m.u }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profilesrepo.Repository      { return m.pr }
func (m *fakeRepoManager) Properties(db dbx.DBTX) propertiesrepo.Repository  { return m.p }
func (m *fakeRepoManager) Clients(db dbx.DBTX) clientsrepo.Repository        { return m.c }
func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactionsrepo.Repository {
	return m.t
}
func (m *fakeRepoManager) Trends(db dbx.DBTX) trendsrepo.Repository { return m.tr }
