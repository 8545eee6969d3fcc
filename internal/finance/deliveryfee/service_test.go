package deliveryfee

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

func TestCreateCreditsSettlement(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fixedCalendar(10))

	id, err := svc.Create(context.Background(), admin, CreateInput{Amount: "25.500"})
	require.NoError(t, err)

	e := repo.entries[id]
	assert.Equal(t, "2025-12-10", e.EntryDate)
	assert.Equal(t, int64(25500), e.Amount)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, ledger.Posting{Date: "2025-12-10", Type: ledger.TypeSettlement, Amount: 25500}, repo.rows[0])
	assert.True(t, repo.logs[id])
}

func TestEditSwapsPostingUnderOriginalDate(t *testing.T) {
	repo := newFakeRepo()
	id, err := NewService(repo, fixedCalendar(10)).Create(context.Background(), admin, CreateInput{Amount: "25.500"})
	require.NoError(t, err)

	err = NewService(repo, fixedCalendar(14)).Edit(context.Background(), superAdmin, EditInput{ID: id, Amount: "30.000"})
	require.NoError(t, err)

	assert.Equal(t, "2025-12-10", repo.entries[id].EntryDate)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, ledger.Posting{Date: "2025-12-10", Type: ledger.TypeSettlement, Amount: 30000}, repo.rows[0])
}

func TestLifecycleStatusGuards(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fixedCalendar(10))
	id, err := svc.Create(context.Background(), admin, CreateInput{Amount: "25.500"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Restore(context.Background(), superAdmin, id), httpx.ErrNotFound)

	require.NoError(t, svc.SoftDelete(context.Background(), superAdmin, id))
	assert.Empty(t, repo.rows)
	assert.ErrorIs(t, svc.SoftDelete(context.Background(), superAdmin, id), httpx.ErrNotFound)

	require.NoError(t, svc.Restore(context.Background(), superAdmin, id))
	require.Len(t, repo.rows, 1)

	require.NoError(t, svc.PermanentDelete(context.Background(), superAdmin, id))
	assert.Empty(t, repo.entries)
	assert.Empty(t, repo.rows)
}

func TestMutationsRequireSuperAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fixedCalendar(10))
	id, err := svc.Create(context.Background(), admin, CreateInput{Amount: "25.500"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Edit(context.Background(), admin, EditInput{ID: id, Amount: "30.000"}), httpx.ErrForbidden)
	assert.ErrorIs(t, svc.SoftDelete(context.Background(), admin, id), httpx.ErrForbidden)
	assert.ErrorIs(t, svc.Restore(context.Background(), admin, id), httpx.ErrForbidden)
	assert.ErrorIs(t, svc.PermanentDelete(context.Background(), admin, id), httpx.ErrForbidden)
}
