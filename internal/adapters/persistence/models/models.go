package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'tenant'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// PasswordReset represents password_resets table
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Code      int       `json:"-"`
	Link      string    `gorm:"size:300" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

// Device maps a user to an Expo push token, upserted on registration
type Device struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	ExpoPushToken string    `gorm:"size:255;uniqueIndex;not null" json:"expo_push_token"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Device) TableName() string {
	return "devices"
}

// ============================================================
// Property Tables
// ============================================================

// Landlord represents landlords table
type Landlord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Phone     string    `gorm:"size:15" json:"phone"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Address   string    `gorm:"type:text" json:"address"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Houses []House `gorm:"foreignKey:LandlordID" json:"houses,omitempty"`
}

func (Landlord) TableName() string {
	return "landlords"
}

// House types
const (
	HouseTypeApartment  = "apartment"
	HouseTypeBungalow   = "bungalow"
	HouseTypeMansion    = "mansion"
	HouseTypeStudio     = "studio"
	HouseTypeDuplex     = "duplex"
	HouseTypeTownhouse  = "townhouse"
	HouseTypeSingleRoom = "single_room"
	HouseTypeDoubleRoom = "double_room"
)

// House represents houses table. IsOccupied is derived state: it is written
// only by the occupancy synchronizer, never accepted from a client.
type House struct {
	ID                     uint   `gorm:"primaryKey" json:"id"`
	Name                   string `gorm:"size:255;not null;default:'Unnamed Property'" json:"name"`
	Price                  int64  `gorm:"not null" json:"price"`
	Location               string `gorm:"size:255;not null" json:"location"`
	IsOccupied             bool   `gorm:"default:false" json:"is_occupied"`
	Model                  string `gorm:"size:30;default:'apartment'" json:"model"`
	ElectricityMeterNumber string `gorm:"size:50" json:"electricity_meter_number,omitempty"`
	WaterMeterNumber       string `gorm:"size:50" json:"water_meter_number,omitempty"`
	Bedrooms               uint   `gorm:"default:1" json:"bedrooms"`
	Bathrooms              uint   `gorm:"default:1" json:"bathrooms"`
	SquareFootage          *uint  `json:"square_footage,omitempty"`
	Description            string `gorm:"type:text" json:"description,omitempty"`
	Amenities              string `gorm:"type:text" json:"amenities,omitempty"`
	IsActive               bool   `gorm:"default:true" json:"is_active"`

	// House survives landlord deletion
	LandlordID *uint `gorm:"index" json:"landlord_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Landlord *Landlord `gorm:"foreignKey:LandlordID;constraint:OnDelete:SET NULL" json:"landlord,omitempty"`
	Tenants  []Tenant  `gorm:"foreignKey:HouseID" json:"tenants,omitempty"`
}

func (House) TableName() string {
	return "houses"
}

// IsAvailable checks if the house can be rented out
func (h *House) IsAvailable() bool {
	return !h.IsOccupied && h.IsActive
}

// MonthlyRevenue returns the revenue currently generated by the house
func (h *House) MonthlyRevenue() int64 {
	if h.IsOccupied {
		return h.Price
	}
	return 0
}

// HouseResponse DTO
type HouseResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	Location   string    `json:"location"`
	IsOccupied bool      `json:"is_occupied"`
	Model      string    `json:"model"`
	Bedrooms   uint      `json:"bedrooms"`
	Bathrooms  uint      `json:"bathrooms"`
	LandlordID *uint     `json:"landlord_id"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *House) ToResponse() *HouseResponse {
	return &HouseResponse{
		ID:         h.ID,
		Name:       h.Name,
		Price:      h.Price,
		Location:   h.Location,
		IsOccupied: h.IsOccupied,
		Model:      h.Model,
		Bedrooms:   h.Bedrooms,
		Bathrooms:  h.Bathrooms,
		LandlordID: h.LandlordID,
		IsActive:   h.IsActive,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
	}
}

// ============================================================
// Tenant Tables
// ============================================================

// Tenant represents tenants table
type Tenant struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     *uint  `gorm:"index" json:"user_id"`
	Name       string `gorm:"size:255;not null" json:"name"`
	Phone      string `gorm:"size:15" json:"phone"`
	Email      string `gorm:"size:100;not null" json:"email"`
	NationalID string `gorm:"size:20" json:"national_id"`

	// Currently rented house; house survives tenant deletion
	HouseID *uint `gorm:"index" json:"house_id"`

	Status         string     `gorm:"size:50;default:'active'" json:"status"`
	LeaseStartDate *time.Time `gorm:"type:date" json:"lease_start_date"`
	LeaseEndDate   *time.Time `gorm:"type:date" json:"lease_end_date"`

	EmergencyContactName  string `gorm:"size:255" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `gorm:"size:15" json:"emergency_contact_phone,omitempty"`
	Occupation            string `gorm:"size:100" json:"occupation,omitempty"`
	Employer              string `gorm:"size:255" json:"employer,omitempty"`
	MonthlyIncome         *int64 `json:"monthly_income,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	House    *House    `gorm:"foreignKey:HouseID;constraint:OnDelete:SET NULL" json:"house,omitempty"`
	Payments []Payment `gorm:"foreignKey:TenantID" json:"payments,omitempty"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// IsLeaseExpired checks if the lease end date has passed
func (t *Tenant) IsLeaseExpired() bool {
	if t.LeaseEndDate == nil {
		return false
	}
	return time.Now().After(*t.LeaseEndDate)
}

// DaysUntilLeaseExpiry returns days until lease expiry, nil when open-ended
func (t *Tenant) DaysUntilLeaseExpiry() *int {
	if t.LeaseEndDate == nil {
		return nil
	}
	days := int(time.Until(*t.LeaseEndDate).Hours() / 24)
	return &days
}

// TenantResponse DTO
type TenantResponse struct {
	ID             uint       `json:"id"`
	UserID         *uint      `json:"user_id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	NationalID     string     `json:"national_id"`
	HouseID        *uint      `json:"house_id"`
	HouseName      string     `json:"house_name,omitempty"`
	Status         string     `json:"status"`
	LeaseStartDate *time.Time `json:"lease_start_date"`
	LeaseEndDate   *time.Time `json:"lease_end_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (t *Tenant) ToResponse() *TenantResponse {
	resp := &TenantResponse{
		ID:             t.ID,
		UserID:         t.UserID,
		Name:           t.Name,
		Phone:          t.Phone,
		Email:          t.Email,
		NationalID:     t.NationalID,
		HouseID:        t.HouseID,
		Status:         t.Status,
		LeaseStartDate: t.LeaseStartDate,
		LeaseEndDate:   t.LeaseEndDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.House != nil {
		resp.HouseName = t.House.Name
	}
	return resp
}

// ============================================================
// Ledger Tables
// ============================================================

// Payment methods
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodMobileMoney  = "mobile_money"
	PaymentMethodCheque       = "cheque"
	PaymentMethodCard         = "card"
)

// ValidPaymentMethod reports whether m is a known payment method
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodMobileMoney,
		PaymentMethodCheque, PaymentMethodCard:
		return true
	}
	return false
}

// Payment represents payments table. Records are append-only ledger entries.
// BalanceDue and Overpayment are derived at record time and read-only after.
type Payment struct {
	ID            uint  `gorm:"primaryKey" json:"id"`
	TenantID      uint  `gorm:"not null;index" json:"tenant_id"`
	AmountPaid    int64 `gorm:"not null" json:"amount_paid"`
	RentAmountDue int64 `gorm:"not null" json:"rent_amount_due"`
	BalanceDue    int64 `gorm:"not null;default:0" json:"balance_due"`
	Overpayment   int64 `gorm:"not null;default:0" json:"overpayment"`

	PaymentDate      time.Time `gorm:"type:date;not null;index" json:"payment_date"`
	PaymentStartDate time.Time `gorm:"type:date;not null" json:"payment_start_date"`
	PaymentEndDate   time.Time `gorm:"type:date;not null" json:"payment_end_date"`
	RentDueDate      time.Time `gorm:"type:date;not null" json:"rent_due_date"`

	PaymentMethod   string  `gorm:"size:20;default:'cash'" json:"payment_method"`
	ReferenceNumber *string `gorm:"size:100;uniqueIndex" json:"reference_number"`
	Notes           string  `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Payments are owned by the tenant and cascade on tenant deletion
	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// IsLatePayment checks if this payment was made after the due date
func (p *Payment) IsLatePayment() bool {
	return p.PaymentDate.After(p.RentDueDate)
}

// DaysLate returns how many days late the payment was, 0 when on time
func (p *Payment) DaysLate() int {
	if !p.IsLatePayment() {
		return 0
	}
	return int(p.PaymentDate.Sub(p.RentDueDate).Hours() / 24)
}

// PaymentResponse DTO
type PaymentResponse struct {
	ID               uint      `json:"id"`
	TenantID         uint      `json:"tenant_id"`
	TenantName       string    `json:"tenant_name,omitempty"`
	AmountPaid       int64     `json:"amount_paid"`
	RentAmountDue    int64     `json:"rent_amount_due"`
	BalanceDue       int64     `json:"balance_due"`
	Overpayment      int64     `json:"overpayment"`
	PaymentDate      time.Time `json:"payment_date"`
	PaymentStartDate time.Time `json:"payment_start_date"`
	PaymentEndDate   time.Time `json:"payment_end_date"`
	RentDueDate      time.Time `json:"rent_due_date"`
	PaymentMethod    string    `json:"payment_method"`
	ReferenceNumber  *string   `json:"reference_number"`
	IsLate           bool      `json:"is_late"`
	DaysLate         int       `json:"days_late"`
	CreatedAt        time.Time `json:"created_at"`
}

func (p *Payment) ToResponse() *PaymentResponse {
	resp := &PaymentResponse{
		ID:               p.ID,
		TenantID:         p.TenantID,
		AmountPaid:       p.AmountPaid,
		RentAmountDue:    p.RentAmountDue,
		BalanceDue:       p.BalanceDue,
		Overpayment:      p.Overpayment,
		PaymentDate:      p.PaymentDate,
		PaymentStartDate: p.PaymentStartDate,
		PaymentEndDate:   p.PaymentEndDate,
		RentDueDate:      p.RentDueDate,
		PaymentMethod:    p.PaymentMethod,
		ReferenceNumber:  p.ReferenceNumber,
		IsLate:           p.IsLatePayment(),
		DaysLate:         p.DaysLate(),
		CreatedAt:        p.CreatedAt,
	}
	if p.Tenant != nil {
		resp.TenantName = p.Tenant.Name
	}
	return resp
}

// Charge types
const (
	ChargeTypeWater       = "water"
	ChargeTypeElectricity = "electricity"
	ChargeTypeMaintenance = "maintenance"
	ChargeTypeLateFee     = "late_fee"
	ChargeTypeCleaning    = "cleaning"
	ChargeTypeParking     = "parking"
	ChargeTypeSecurity    = "security"
	ChargeTypeOther       = "other"
)

// ValidChargeType reports whether t is a known charge type
func ValidChargeType(t string) bool {
	switch t {
	case ChargeTypeWater, ChargeTypeElectricity, ChargeTypeMaintenance,
		ChargeTypeLateFee, ChargeTypeCleaning, ChargeTypeParking,
		ChargeTypeSecurity, ChargeTypeOther:
		return true
	}
	return false
}

// Charge represents charges table. Charges are billed separately and never
// netted into the rent balance.
type Charge struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TenantID    uint       `gorm:"not null;index" json:"tenant_id"`
	HouseID     uint       `gorm:"not null;index" json:"house_id"`
	ChargeType  string     `gorm:"size:50;not null" json:"charge_type"`
	Amount      int64      `gorm:"not null" json:"amount"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	ChargeDate  time.Time  `gorm:"type:date;not null;index" json:"charge_date"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	IsPaid      bool       `gorm:"default:false" json:"is_paid"`
	PaidDate    *time.Time `gorm:"type:date" json:"paid_date"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`
	House  *House  `gorm:"foreignKey:HouseID;constraint:OnDelete:CASCADE" json:"house,omitempty"`
}

func (Charge) TableName() string {
	return "charges"
}

// IsOverdue checks if an unpaid charge is past its due date
func (c *Charge) IsOverdue() bool {
	if c.DueDate == nil || c.IsPaid {
		return false
	}
	return time.Now().After(*c.DueDate)
}

// ============================================================
// Maintenance Tables
// ============================================================

// MaintenanceRequest represents maintenance_requests table
type MaintenanceRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `gorm:"not null;index" json:"tenant_id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Status      string    `gorm:"size:20;default:'pending'" json:"status"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`
}

func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// ============================================================
// Document Tables
// ============================================================

// Document types
const (
	DocumentTypeLeaseAgreement   = "lease_agreement"
	DocumentTypeIDCopy           = "id_copy"
	DocumentTypePassportPhoto    = "passport_photo"
	DocumentTypeEmploymentLetter = "employment_letter"
	DocumentTypeBankStatement    = "bank_statement"
	DocumentTypeReferenceLetter  = "reference_letter"
	DocumentTypeInventoryList    = "inventory_list"
	DocumentTypeInspectionReport = "inspection_report"
	DocumentTypeOther            = "other"
)

// ValidDocumentType reports whether t is a known document type
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeLeaseAgreement, DocumentTypeIDCopy, DocumentTypePassportPhoto,
		DocumentTypeEmploymentLetter, DocumentTypeBankStatement, DocumentTypeReferenceLetter,
		DocumentTypeInventoryList, DocumentTypeInspectionReport, DocumentTypeOther:
		return true
	}
	return false
}

// Document represents documents table. Must be linked to a tenant or a house.
type Document struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TenantID     *uint      `gorm:"index" json:"tenant_id"`
	HouseID      *uint      `gorm:"index" json:"house_id"`
	DocumentType string     `gorm:"size:100;not null" json:"document_type"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	FilePath     string     `gorm:"size:500;not null" json:"file_path"`
	FileSize     *uint      `json:"file_size"`
	ExpiryDate   *time.Time `gorm:"type:date" json:"expiry_date"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
	VerifiedBy   string     `gorm:"size:255" json:"verified_by,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:SET NULL" json:"tenant,omitempty"`
	House  *House  `gorm:"foreignKey:HouseID;constraint:OnDelete:SET NULL" json:"house,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}

// IsExpired checks if the document has passed its expiry date
func (d *Document) IsExpired() bool {
	if d.ExpiryDate == nil {
		return false
	}
	return time.Now().After(*d.ExpiryDate)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		&PasswordReset{},
		&Device{},
		// Property
		&Landlord{},
		&House{},
		// Tenancy
		&Tenant{},
		// Ledger
		&Payment{},
		&Charge{},
		// Maintenance
		&MaintenanceRequest{},
		// Documents
		&Document{},
	)
}
