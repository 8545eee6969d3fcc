package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfscargo/backoffice/internal/ledger"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

var (
	superAdmin = shared.Identity{UserID: 1, Role: shared.RoleSuperAdmin, Roles: []string{shared.RoleSuperAdmin}}
	admin      = shared.Identity{UserID: 2, Role: shared.RoleAdmin, Roles: []string{shared.RoleAdmin}}
)

type fakeRepo struct {
	entries map[int64]Entry
	nextID  int64
	rows    []ledger.Posting
	logs    map[int64]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: map[int64]Entry{}, nextID: 1, logs: map[int64]bool{}}
}

func (f *fakeRepo) listWhere(keep func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range f.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeRepo) ListActive(context.Context) ([]Entry, error) {
	return f.listWhere(func(e Entry) bool { return e.Status == StatusActive }), nil
}

func (f *fakeRepo) ListActiveOn(_ context.Context, date string) ([]Entry, error) {
	return f.listWhere(func(e Entry) bool { return e.Status == StatusActive && e.EntryDate == date }), nil
}

func (f *fakeRepo) ListDeleted(context.Context) ([]Entry, error) {
	return f.listWhere(func(e Entry) bool { return e.Status == StatusDeleted }), nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (Entry, error) {
	return (*fakeTx)(f).Get(ctx, id)
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, (*fakeTx)(f))
}

type fakeTx fakeRepo

func (t *fakeTx) Get(_ context.Context, id int64) (Entry, error) {
	e, ok := t.entries[id]
	if !ok {
		return Entry{}, httpx.ErrNotFound
	}
	return e, nil
}

func (t *fakeTx) Insert(_ context.Context, e Entry) (int64, error) {
	e.ID = t.nextID
	t.nextID++
	t.entries[e.ID] = e
	return e.ID, nil
}

func (t *fakeTx) Update(_ context.Context, e Entry) error {
	t.entries[e.ID] = e
	return nil
}

func (t *fakeTx) SetStatus(_ context.Context, id int64, status string) error {
	e := t.entries[id]
	e.Status = status
	t.entries[id] = e
	return nil
}

func (t *fakeTx) Delete(_ context.Context, id int64) error {
	delete(t.entries, id)
	return nil
}

func (t *fakeTx) InsertPostings(_ context.Context, rows []ledger.Posting) error {
	t.rows = append(t.rows, rows...)
	return nil
}

func (t *fakeTx) DeletePostings(_ context.Context, rows []ledger.Posting) error {
	for _, p := range rows {
		var kept []ledger.Posting
		for _, existing := range t.rows {
			if existing == p {
				continue
			}
			kept = append(kept, existing)
		}
		t.rows = kept
	}
	return nil
}

func (t *fakeTx) InsertDashboardLog(_ context.Context, entryID int64) error {
	t.logs[entryID] = true
	return nil
}

func (t *fakeTx) DeleteDashboardLog(_ context.Context, entryID int64) error {
	delete(t.logs, entryID)
	return nil
}

func fixedCalendar(day int) *ledger.Calendar {
	return ledger.NewCalendar().WithNow(func() time.Time {
		return time.Date(2025, 12, day, 4, 0, 0, 0, time.UTC)
	})
}

func TestCreateDebitsPaymentMethod(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fixedCalendar(10))

	id, err := svc.Create(context.Background(), admin, CreateInput{
		Description:   "fuel for the delivery van",
		Category:      "Operational",
		Amount:        "150.000",
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	e := repo.entries[id]
	assert.Equal(t, ledger.ExpenseOperational, e.Category)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, ledger.Posting{Date: "2025-12-10", Type: ledger.TypeCash, Amount: -150000}, repo.rows[0])
}

func TestCreateTopUpAlsoCreditsSettlement(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fixedCalendar(10))

	_, err := svc.Create(context.Background(), admin, CreateInput{
		Description:   "weekly settlement top up",
		Category:      "Top Up Saldo JFS",
		Amount:        "500.000",
		PaymentMethod: "transfer",
	})
	require.NoError(t, err)

	require.Len(t, repo.rows, 2)
	assert.Equal(t, ledger.Posting{Date: "2025-12-10", Type: ledger.TypeSettlement, Amount: 500000}, repo.rows[0])
	assert.Equal(t, ledger.Posting{Date: "2025-12-10", Type: ledger.TypeTransfer, Amount: -500000}, repo.rows[1])
}

func TestEditAcrossCategoriesSwapsPostingShape(t *testing.T) {
	repo := newFakeRepo()
	id, err := NewService(repo, fixedCalendar(10)).Create(context.Background(), admin, CreateInput{
		Description:   "weekly settlement top up",
		Category:      "Top Up Saldo JFS",
		Amount:        "500.000",
		PaymentMethod: "transfer",
	})
	require.NoError(t, err)

	// Reclassified later as a plain operational expense: the settlement credit
	// must disappear with the old posting pair.
	err = NewService(repo, fixedCalendar(13)).Edit(context.Background(), superAdmin, EditInput{
		ID:            id,
		Description:   "office rent",
		Category:      "Operational",
		Amount:        "400.000",
		PaymentMethod: "transfer",
	})
	require.NoError(t, err)

	e := repo.entries[id]
	assert.Equal(t, "2025-12-10", e.EntryDate)
	assert.Equal(t, ledger.ExpenseOperational, e.Category)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, ledger.Posting{Date: "2025-12-10", Type: ledger.TypeTransfer, Amount: -400000}, repo.rows[0])
}

func TestSoftDeleteRestoresTheDebit(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fixedCalendar(10))
	employee := int64(4)
	id, err := svc.Create(context.Background(), admin, CreateInput{
		Description:   "courier meal allowance",
		Category:      "Kasbon",
		Amount:        "50.000",
		PaymentMethod: "cash",
		EmployeeID:    &employee,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.entries[id].EmployeeID)
	assert.Equal(t, employee, *repo.entries[id].EmployeeID)

	require.NoError(t, svc.SoftDelete(context.Background(), superAdmin, id))
	assert.Empty(t, repo.rows, "the cash debit must be reversed")

	require.NoError(t, svc.Restore(context.Background(), superAdmin, id))
	require.Len(t, repo.rows, 1)
	assert.Equal(t, int64(-50000), repo.rows[0].Amount)
}

func TestDescriptionOnlyRequiredForFreeFormCategories(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fixedCalendar(10))
	employee := int64(7)

	// Kasbon and top-up entries are self-describing; a blank description is
	// stored as a dash.
	id, err := svc.Create(context.Background(), admin, CreateInput{
		Category: "Kasbon", Amount: "50.000", PaymentMethod: "cash", EmployeeID: &employee,
	})
	require.NoError(t, err)
	assert.Equal(t, "-", repo.entries[id].Description)

	id, err = svc.Create(context.Background(), admin, CreateInput{
		Category: "Top Up Saldo JFS", Amount: "500.000", PaymentMethod: "transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, "-", repo.entries[id].Description)

	_, err = svc.Create(context.Background(), admin, CreateInput{
		Category: "Other", Amount: "50.000", PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, httpx.ErrInvalidInput, "free-form categories still need a description")

	err = NewService(repo, fixedCalendar(10)).Edit(context.Background(), superAdmin, EditInput{
		ID: id, Category: "Kasbon", Amount: "500.000", PaymentMethod: "transfer", EmployeeID: &employee,
	})
	require.NoError(t, err)
	assert.Equal(t, "-", repo.entries[id].Description)
}

func TestCreateValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fixedCalendar(10))

	_, err := svc.Create(context.Background(), admin, CreateInput{
		Description: "   ", Category: "Operational", Amount: "50.000", PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, httpx.ErrInvalidInput)

	_, err = svc.Create(context.Background(), admin, CreateInput{
		Description: "snacks", Category: "Entertainment", Amount: "50.000", PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, httpx.ErrInvalidInput)

	_, err = svc.Create(context.Background(), admin, CreateInput{
		Description: "advance", Category: "Kasbon", Amount: "50.000", PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, httpx.ErrInvalidInput, "kasbon without an employee must be rejected")

	assert.Empty(t, repo.entries)
}
