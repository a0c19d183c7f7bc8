package usecase

import (
	"context"
	"time"

	"payroll-backend/internal/cache"
	"payroll-backend/internal/payroll"
	"payroll-backend/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	evolutionMonths = 6
	upcomingLimit   = 10
)

type EvolutionPoint struct {
	CycleID uint            `json:"cycle_id"`
	Period  string          `json:"period"`
	Type    string          `json:"type"`
	Gross   decimal.Decimal `json:"gross"`
	Net     decimal.Decimal `json:"net"`
}

type UpcomingPayment struct {
	PayslipID uint            `json:"payslip_id"`
	Employee  string          `json:"employee"`
	Period    string          `json:"period"`
	Status    string          `json:"status"`
	Net       decimal.Decimal `json:"net"`
	Remaining decimal.Decimal `json:"remaining"`
}

type Dashboard struct {
	repository.DashboardTotals
	Evolution   []EvolutionPoint  `json:"evolution"`
	Upcoming    []UpcomingPayment `json:"upcoming"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// DashboardUsecase builds read-only rollups for one tenant, served from cache when possible.
type DashboardUsecase struct {
	db     *gorm.DB
	cache  *cache.DashboardCache
	tenant string
	log    *zap.Logger
	now    func() time.Time
}

func NewDashboardUsecase(db *gorm.DB, c *cache.DashboardCache, tenant string, log *zap.Logger) *DashboardUsecase {
	return &DashboardUsecase{db: db, cache: c, tenant: tenant, log: log, now: time.Now}
}

func (u *DashboardUsecase) Get(ctx context.Context) (*Dashboard, error) {
	var cached Dashboard
	hit, err := u.cache.Get(ctx, u.tenant, &cached)
	if err != nil {
		u.log.Warn("dashboard cache read failed", zap.String("tenant", u.tenant), zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	dashboard, err := u.compute()
	if err != nil {
		return nil, err
	}
	if err := u.cache.Set(ctx, u.tenant, dashboard); err != nil {
		u.log.Warn("dashboard cache write failed", zap.String("tenant", u.tenant), zap.Error(err))
	}
	return dashboard, nil
}

func (u *DashboardUsecase) compute() (*Dashboard, error) {
	totals, err := repository.NewDashboardRepository(u.db).GetTotals()
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(evolutionMonths - 1), 0)
	cycles, err := repository.NewPayCycleRepository(u.db).GetClosedSince(since)
	if err != nil {
		return nil, err
	}
	evolution := make([]EvolutionPoint, 0, len(cycles))
	for _, c := range cycles {
		point := EvolutionPoint{CycleID: c.ID, Period: c.Period.Format("2006-01"), Type: c.Type}
		for _, p := range c.Payslips {
			point.Gross = point.Gross.Add(p.Gross)
			point.Net = point.Net.Add(p.Net)
		}
		evolution = append(evolution, point)
	}

	outstanding, err := repository.NewPayslipRepository(u.db).GetOutstanding(upcomingLimit)
	if err != nil {
		return nil, err
	}
	upcoming := make([]UpcomingPayment, 0, len(outstanding))
	for _, p := range outstanding {
		item := UpcomingPayment{
			PayslipID: p.ID,
			Status:    string(p.Status),
			Net:       p.Net,
			Remaining: payroll.Remaining(p.Net, payroll.SumPayments(p.Payments)),
		}
		if p.Employee != nil {
			item.Employee = p.Employee.Name
		}
		if p.PayCycle != nil {
			item.Period = p.PayCycle.Period.Format("2006-01")
		}
		upcoming = append(upcoming, item)
	}

	return &Dashboard{
		DashboardTotals: *totals,
		Evolution:       evolution,
		Upcoming:        upcoming,
		GeneratedAt:     now,
	}, nil
}
