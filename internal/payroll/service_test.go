package payroll

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
	superAdmin = shared.Identity{UserID: 1, Roles: []string{shared.RoleSuperAdmin}}
	admin      = shared.Identity{UserID: 2, Roles: []string{shared.RoleAdmin}}
)

type fakeRepo struct {
	configs  map[int64]Config
	presence map[string]map[int64]int64
	kasbon   map[string]map[int64]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		configs:  map[int64]Config{},
		presence: map[string]map[int64]int64{},
		kasbon:   map[string]map[int64]int64{},
	}
}

func (f *fakeRepo) UpsertConfig(_ context.Context, employeeID, dailyWage, bonus int64) error {
	c := f.configs[employeeID]
	c.EmployeeID = employeeID
	c.DailyWage = dailyWage
	c.Bonus = bonus
	f.configs[employeeID] = c
	return nil
}

func (f *fakeRepo) GetConfig(_ context.Context, employeeID int64) (Config, error) {
	c, ok := f.configs[employeeID]
	if !ok {
		return Config{}, httpx.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) ListConfigs(_ context.Context) ([]Config, error) {
	var out []Config
	for _, c := range f.configs {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepo) PresenceCounts(_ context.Context, from, _ string) (map[int64]int64, error) {
	return f.presence[from], nil
}

func (f *fakeRepo) KasbonSums(_ context.Context, from, _ string) (map[int64]int64, error) {
	return f.kasbon[from], nil
}

func fixedCalendar() *ledger.Calendar {
	return ledger.NewCalendar().WithNow(func() time.Time {
		return time.Date(2025, 12, 10, 4, 0, 0, 0, time.UTC)
	})
}

func TestSetWageUpserts(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fixedCalendar())

	require.NoError(t, svc.SetWage(context.Background(), superAdmin, SetWageInput{
		EmployeeID: 7, DailyWage: "100.000", Bonus: "250000",
	}))
	assert.Equal(t, int64(100000), repo.configs[7].DailyWage)
	assert.Equal(t, int64(250000), repo.configs[7].Bonus)

	// A second call replaces the config, and the bonus may be left out.
	require.NoError(t, svc.SetWage(context.Background(), superAdmin, SetWageInput{
		EmployeeID: 7, DailyWage: "120000",
	}))
	assert.Equal(t, int64(120000), repo.configs[7].DailyWage)
	assert.Equal(t, int64(0), repo.configs[7].Bonus)

	err := svc.SetWage(context.Background(), admin, SetWageInput{EmployeeID: 7, DailyWage: "100000"})
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	err = svc.SetWage(context.Background(), superAdmin, SetWageInput{EmployeeID: 7, DailyWage: "500"})
	assert.ErrorIs(t, err, httpx.ErrInvalidInput)
}

func TestMonthlyPayRun(t *testing.T) {
	repo := newFakeRepo()
	repo.configs[7] = Config{EmployeeID: 7, Name: "Budi", Position: "Courier", DailyWage: 100000, Bonus: 200000}
	repo.configs[8] = Config{EmployeeID: 8, Name: "Sari", Position: "Cashier", DailyWage: 90000}
	repo.presence["2025-11-01"] = map[int64]int64{7: 24, 8: 26}
	repo.kasbon["2025-11-01"] = map[int64]int64{7: 300000}

	svc := NewService(repo, fixedCalendar())
	rep, err := svc.Monthly(context.Background(), superAdmin, "2025-11")
	require.NoError(t, err)
	require.Len(t, rep.Lines, 2)

	byID := map[int64]Line{}
	for _, l := range rep.Lines {
		byID[l.EmployeeID] = l
	}

	budi := byID[7]
	assert.Equal(t, int64(24), budi.DaysPresent)
	assert.Equal(t, int64(2400000), budi.BasePay)
	assert.Equal(t, int64(300000), budi.KasbonTotal)
	assert.Equal(t, int64(2400000+200000-300000), budi.NetPay)

	sari := byID[8]
	assert.Equal(t, int64(26*90000), sari.NetPay)

	assert.Equal(t, budi.NetPay+sari.NetPay, rep.Total)
}

func TestMonthlyDefaultsToCurrentMonth(t *testing.T) {
	repo := newFakeRepo()
	repo.configs[7] = Config{EmployeeID: 7, Name: "Budi", DailyWage: 100000}
	repo.presence["2025-12-01"] = map[int64]int64{7: 5}

	svc := NewService(repo, fixedCalendar())
	rep, err := svc.Monthly(context.Background(), superAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-12", rep.Month)
	require.Len(t, rep.Lines, 1)
	assert.Equal(t, int64(500000), rep.Lines[0].NetPay)
}

func TestMonthlyAccessAndValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), fixedCalendar())

	_, err := svc.Monthly(context.Background(), admin, "2025-11")
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	_, err = svc.Monthly(context.Background(), superAdmin, "November")
	assert.ErrorIs(t, err, httpx.ErrInvalidInput)

	_, err = svc.Configs(context.Background(), admin)
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	_, err = svc.Config(context.Background(), superAdmin, 99)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
