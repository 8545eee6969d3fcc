package dashboard

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

type fakeRepo struct {
	byDate map[string][]Item
}

func (f *fakeRepo) ListOn(_ context.Context, date string) ([]Item, error) {
	return f.byDate[date], nil
}

func TestFeedReturnsTodayOnly(t *testing.T) {
	repo := &fakeRepo{byDate: map[string][]Item{
		"2025-12-10": {
			{LogID: 8, Kind: KindExpense, EntryID: 4, Amount: 50000, Category: "Kasbon", EmployeeName: "Budi"},
			{LogID: 7, Kind: KindOutgoing, EntryID: 3, Amount: 90000},
		},
		"2025-12-09": {{LogID: 5, Kind: KindExpense, EntryID: 2, Amount: -20000}},
	}}
	cal := ledger.NewCalendar().WithNow(func() time.Time {
		return time.Date(2025, 12, 10, 4, 0, 0, 0, time.UTC)
	})
	svc := NewService(repo, cal)

	admin := shared.Identity{UserID: 2, Roles: []string{shared.RoleAdmin}}
	items, err := svc.Feed(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, KindExpense, items[0].Kind)
	assert.Equal(t, "Budi", items[0].EmployeeName, "kasbon rows carry the employee name")
	assert.Equal(t, KindOutgoing, items[1].Kind)

	_, err = svc.Feed(context.Background(), shared.Identity{Roles: []string{"Courier"}})
	assert.ErrorIs(t, err, httpx.ErrForbidden)
}
