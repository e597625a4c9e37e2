package services

import (
	"context"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"
)

// DashboardService aggregates portfolio-wide and per-tenant figures
type DashboardService struct {
	tenantRepo  *repositories.TenantRepository
	houseRepo   *repositories.HouseRepository
	paymentRepo *repositories.PaymentRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	tenantRepo *repositories.TenantRepository,
	houseRepo *repositories.HouseRepository,
	paymentRepo *repositories.PaymentRepository,
) *DashboardService {
	return &DashboardService{
		tenantRepo:  tenantRepo,
		houseRepo:   houseRepo,
		paymentRepo: paymentRepo,
	}
}

// ManagerDashboard represents the portfolio-wide overview
type ManagerDashboard struct {
	TotalTenants     int64 `json:"total_tenants"`
	TotalHouses      int64 `json:"total_houses"`
	OccupiedHouses   int64 `json:"occupied_houses"`
	VacantHouses     int64 `json:"vacant_houses"`
	TotalPaid        int64 `json:"total_paid"`
	TotalBalance     int64 `json:"total_balance"`
	TotalOverpayment int64 `json:"total_overpayment"`
}

// GetManagerDashboard returns aggregate counts and ledger sums
func (s *DashboardService) GetManagerDashboard(ctx context.Context) (*ManagerDashboard, error) {
	tenants, err := s.tenantRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	houses, err := s.houseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	occupied, err := s.houseRepo.CountOccupied(ctx, true)
	if err != nil {
		return nil, err
	}
	totals, err := s.paymentRepo.SumAll(ctx)
	if err != nil {
		return nil, err
	}

	return &ManagerDashboard{
		TotalTenants:     tenants,
		TotalHouses:      houses,
		OccupiedHouses:   occupied,
		VacantHouses:     houses - occupied,
		TotalPaid:        totals.TotalPaid,
		TotalBalance:     totals.TotalBalance,
		TotalOverpayment: totals.TotalOverpayment,
	}, nil
}

// TenantDashboard represents a tenant's personal overview. Current balance
// and overpayment come from the latest ledger entry, not lifetime sums.
type TenantDashboard struct {
	Tenant             *models.TenantResponse `json:"tenant"`
	House              *models.HouseResponse  `json:"house,omitempty"`
	TotalPaid          int64                  `json:"total_paid"`
	CurrentBalance     int64                  `json:"current_balance"`
	CurrentOverpayment int64                  `json:"current_overpayment"`
	PaymentCount       int64                  `json:"payment_count"`
	LastPayment        *models.Payment        `json:"last_payment,omitempty"`
}

// GetTenantDashboard returns one tenant's standing
func (s *DashboardService) GetTenantDashboard(ctx context.Context, tenantID uint) (*TenantDashboard, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	totals, err := s.paymentRepo.SumByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	count, err := s.paymentRepo.CountByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	last, err := s.paymentRepo.LastForTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	dash := &TenantDashboard{
		Tenant:       tenant.ToResponse(),
		TotalPaid:    totals.TotalPaid,
		PaymentCount: count,
		LastPayment:  last,
	}
	if last != nil {
		dash.CurrentBalance = last.BalanceDue
		dash.CurrentOverpayment = last.Overpayment
	}
	if tenant.House != nil {
		dash.House = tenant.House.ToResponse()
	}
	return dash, nil
}
