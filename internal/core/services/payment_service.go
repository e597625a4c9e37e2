package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/core/domain"
	"crossroads-renthub/internal/core/ledger"
	"crossroads-renthub/internal/pkg/lockmap"
	"crossroads-renthub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// Payment service errors
var (
	ErrTenantNotFound        = fmt.Errorf("tenant %w", domain.ErrNotFound)
	ErrPaymentNotFound       = fmt.Errorf("payment %w", domain.ErrNotFound)
	ErrInvalidPeriod         = fmt.Errorf("%w: payment start date must be before payment end date", domain.ErrValidation)
	ErrInvalidDueDate        = fmt.Errorf("%w: rent due date cannot be before payment start date", domain.ErrValidation)
	ErrNegativeAmount        = fmt.Errorf("%w: amount paid cannot be negative", domain.ErrValidation)
	ErrNonPositiveRent       = fmt.Errorf("%w: rent amount due must be positive", domain.ErrValidation)
	ErrInvalidPaymentMethod  = fmt.Errorf("%w: unknown payment method", domain.ErrValidation)
	ErrDuplicateReference    = fmt.Errorf("payment reference %w", domain.ErrDuplicateEntry)
)

// PaymentService records rent payments: it validates input, derives the
// carry-forward balance, persists the ledger entry, forces the tenant's
// house occupied, and emits the confirmation email. The read-compute-write
// sequence is serialized per tenant.
type PaymentService struct {
	paymentRepo *repositories.PaymentRepository
	tenantRepo  *repositories.TenantRepository
	occupancy   *OccupancyService
	notifier    Notifier
	locks       *lockmap.LockMap
	now         func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo *repositories.PaymentRepository,
	tenantRepo *repositories.TenantRepository,
	occupancy *OccupancyService,
	notifier Notifier,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		occupancy:   occupancy,
		notifier:    notifier,
		locks:       lockmap.New(),
		now:         time.Now,
	}
}

// RecordPaymentInput represents record payment input
type RecordPaymentInput struct {
	TenantID         uint       `json:"tenant_id"`
	AmountPaid       int64      `json:"amount_paid"`
	RentAmountDue    int64      `json:"rent_amount_due"`
	PaymentStartDate time.Time  `json:"payment_start_date"`
	PaymentEndDate   time.Time  `json:"payment_end_date"`
	RentDueDate      time.Time  `json:"rent_due_date"`
	PaymentMethod    string     `json:"payment_method"`
	ReferenceNumber  *string    `json:"reference_number,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// validate checks all preconditions before any state is touched
func (in *RecordPaymentInput) validate() error {
	if !in.PaymentStartDate.Before(in.PaymentEndDate) {
		return ErrInvalidPeriod
	}
	if in.RentDueDate.Before(in.PaymentStartDate) {
		return ErrInvalidDueDate
	}
	if in.AmountPaid < 0 {
		return ErrNegativeAmount
	}
	if in.RentAmountDue <= 0 {
		return ErrNonPositiveRent
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = models.PaymentMethodCash
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return ErrInvalidPaymentMethod
	}
	return nil
}

func tenantKey(tenantID uint) string {
	return fmt.Sprintf("tenant:%d", tenantID)
}

// Record records a rent payment for a tenant.
//
// Once the ledger entry is persisted the operation has succeeded: occupancy
// sync and email confirmation are logged on failure but never propagated,
// because the payment record is the source of truth.
func (s *PaymentService) Record(ctx context.Context, input *RecordPaymentInput) (*models.Payment, error) {
	// 1. Validate, no state mutated on failure
	if err := input.validate(); err != nil {
		return nil, err
	}

	// 2. Fetch tenant
	tenant, err := s.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	// 3+4. Compute carry-forward balance and persist, serialized per tenant
	// so two concurrent payments cannot both read the same last overpayment.
	s.locks.Lock(tenantKey(tenant.ID))
	payment, err := s.computeAndPersist(ctx, tenant, input)
	s.locks.Unlock(tenantKey(tenant.ID))
	if err != nil {
		return nil, err
	}

	// 5. A payment implies active tenancy: force the house occupied
	if tenant.HouseID != nil {
		if err := s.occupancy.MarkOccupied(ctx, *tenant.HouseID); err != nil {
			log.Printf("⚠️ Occupancy sync failed for house %d: %v", *tenant.HouseID, err)
		}
	}

	// 6. Confirmation email, best-effort
	s.sendConfirmation(payment, tenant)

	return payment, nil
}

func (s *PaymentService) computeAndPersist(ctx context.Context, tenant *models.Tenant, input *RecordPaymentInput) (*models.Payment, error) {
	last, err := s.paymentRepo.LastForTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	var lastOverpayment int64
	if last != nil {
		lastOverpayment = last.Overpayment
	}

	result := ledger.Compute(input.AmountPaid, input.RentAmountDue, lastOverpayment)

	payment := &models.Payment{
		TenantID:         tenant.ID,
		AmountPaid:       input.AmountPaid,
		RentAmountDue:    input.RentAmountDue,
		BalanceDue:       result.BalanceDue,
		Overpayment:      result.Overpayment,
		PaymentDate:      s.now(),
		PaymentStartDate: input.PaymentStartDate,
		PaymentEndDate:   input.PaymentEndDate,
		RentDueDate:      input.RentDueDate,
		PaymentMethod:    input.PaymentMethod,
		ReferenceNumber:  input.ReferenceNumber,
		Notes:            input.Notes,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateReference
		}
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) sendConfirmation(payment *models.Payment, tenant *models.Tenant) {
	if s.notifier == nil || tenant.Email == "" {
		return
	}
	subject, body := PaymentConfirmationEmail(payment, tenant.Name)
	if err := s.notifier.SendEmail(tenant.Email, subject, body); err != nil {
		log.Printf("⚠️ Error sending payment confirmation email: %v", err)
	}
}

// isDuplicateKeyError detects unique-constraint violations across drivers
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// GetByID gets a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// ListByTenant lists a tenant's payments in ledger order
func (s *PaymentService) ListByTenant(ctx context.Context, tenantID uint) ([]*models.Payment, error) {
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return s.paymentRepo.ListByTenant(ctx, tenantID)
}

// ListPaymentsOutput represents list payments output
type ListPaymentsOutput struct {
	Payments   []*models.Payment `json:"payments"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// List lists payments
func (s *PaymentService) List(ctx context.Context, page, limit int) (*ListPaymentsOutput, error) {
	p := pagination.Normalize(page, limit)
	payments, total, err := s.paymentRepo.List(ctx, p.Offset, p.Limit)
	if err != nil {
		return nil, err
	}

	return &ListPaymentsOutput{
		Payments:   payments,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pagination.Pages(total, p.Limit),
	}, nil
}
