package repository

import (
	"context"
	"errors"
	"time"

	"equiprent/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type BookingModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	EquipmentID   int64      `gorm:"column:equipment_id"`
	EquipmentName *string    `gorm:"column:equipment_name"`
	UserID        int64      `gorm:"column:user_id"`
	UserName      *string    `gorm:"column:user_name"`
	OperatorID    int64      `gorm:"column:operator_id"`
	OperatorName  *string    `gorm:"column:operator_name"`
	StartDate     *string    `gorm:"column:start_date"`
	StartTime     *string    `gorm:"column:start_time"`
	EndDate       *string    `gorm:"column:end_date"`
	EndTime       *string    `gorm:"column:end_time"`
	Duration      int        `gorm:"column:duration"`
	DurationType  string     `gorm:"column:duration_type"`
	TotalAmount   float64    `gorm:"column:total_amount"`
	Status        string     `gorm:"column:status"`
	PaymentStatus string     `gorm:"column:payment_status"`
	CheckInTime   *time.Time `gorm:"column:check_in_time"`
	CheckOutTime  *time.Time `gorm:"column:check_out_time"`
	QRCodeScanned bool       `gorm:"column:qr_code_scanned"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (BookingModel) TableName() string { return "bookings" }

func toDomainBooking(m BookingModel) *domain.Booking {
	return &domain.Booking{
		ID:            m.ID,
		EquipmentID:   m.EquipmentID,
		EquipmentName: strOrEmpty(m.EquipmentName),
		UserID:        m.UserID,
		UserName:      strOrEmpty(m.UserName),
		OperatorID:    m.OperatorID,
		OperatorName:  strOrEmpty(m.OperatorName),
		StartDate:     strOrEmpty(m.StartDate),
		StartTime:     strOrEmpty(m.StartTime),
		EndDate:       strOrEmpty(m.EndDate),
		EndTime:       strOrEmpty(m.EndTime),
		Duration:      m.Duration,
		DurationType:  domain.DurationType(m.DurationType),
		TotalAmount:   m.TotalAmount,
		Status:        domain.BookingStatus(m.Status),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		CheckInTime:   m.CheckInTime,
		CheckOutTime:  m.CheckOutTime,
		QRCodeScanned: m.QRCodeScanned,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) BookingModel {
	return BookingModel{
		ID:            b.ID,
		EquipmentID:   b.EquipmentID,
		EquipmentName: nullableStr(b.EquipmentName),
		UserID:        b.UserID,
		UserName:      nullableStr(b.UserName),
		OperatorID:    b.OperatorID,
		OperatorName:  nullableStr(b.OperatorName),
		StartDate:     nullableStr(b.StartDate),
		StartTime:     nullableStr(b.StartTime),
		EndDate:       nullableStr(b.EndDate),
		EndTime:       nullableStr(b.EndTime),
		Duration:      b.Duration,
		DurationType:  string(b.DurationType),
		TotalAmount:   b.TotalAmount,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		CheckInTime:   b.CheckInTime,
		CheckOutTime:  b.CheckOutTime,
		QRCodeScanned: b.QRCodeScanned,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// EnsureIndexes creates the partial unique index that guarantees at most
// one open booking per equipment. Concurrent borrows race to this index;
// the loser gets a duplicate-key error which the workflow maps to
// "not available". Postgres and SQLite both support partial indexes.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_one_open_per_equipment
		 ON bookings (equipment_id)
		 WHERE status IN ('confirmed', 'active')`,
	).Error
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m BookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) FindByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var rows []BookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(rows), nil
}

func (r *BookingRepository) FindByEquipmentAndUser(ctx context.Context, equipmentID, userID int64) ([]domain.Booking, error) {
	var rows []BookingModel
	tx := r.db.WithContext(ctx).
		Where("equipment_id = ? AND user_id = ?", equipmentID, userID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(rows), nil
}

func (r *BookingRepository) FindByOperator(ctx context.Context, operatorID int64) ([]domain.Booking, error) {
	var rows []BookingModel
	tx := r.db.WithContext(ctx).
		Where("operator_id = ?", operatorID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(rows), nil
}

func toDomainBookings(rows []BookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
