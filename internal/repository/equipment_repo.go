package repository

import (
	"context"
	"errors"
	"time"

	"equiprent/internal/domain"

	"gorm.io/gorm"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

type EquipmentModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	Name              string    `gorm:"column:name"`
	Category          string    `gorm:"column:category"`
	Description       *string   `gorm:"column:description"`
	PricePerHour      float64   `gorm:"column:price_per_hour"`
	PricePerDay       float64   `gorm:"column:price_per_day"`
	Available         bool      `gorm:"column:available"`
	OperatorID        int64     `gorm:"column:operator_id"`
	OperatorName      *string   `gorm:"column:operator_name"`
	Location          *string   `gorm:"column:location"`
	Image             *string   `gorm:"column:image"`
	Rating            float64   `gorm:"column:rating"`
	TotalBookings     int       `gorm:"column:total_bookings"`
	MaintenanceStatus *string   `gorm:"column:maintenance_status"`
	QRCode            *string   `gorm:"column:qr_code"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (EquipmentModel) TableName() string { return "equipment" }

func toDomainEquipment(m EquipmentModel) *domain.Equipment {
	return &domain.Equipment{
		ID:                m.ID,
		Name:              m.Name,
		Category:          m.Category,
		Description:       strOrEmpty(m.Description),
		PricePerHour:      m.PricePerHour,
		PricePerDay:       m.PricePerDay,
		Available:         m.Available,
		OperatorID:        m.OperatorID,
		OperatorName:      strOrEmpty(m.OperatorName),
		Location:          strOrEmpty(m.Location),
		Image:             strOrEmpty(m.Image),
		Rating:            m.Rating,
		TotalBookings:     m.TotalBookings,
		MaintenanceStatus: strOrEmpty(m.MaintenanceStatus),
		QRCode:            strOrEmpty(m.QRCode),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toEquipmentModel(e *domain.Equipment) EquipmentModel {
	return EquipmentModel{
		ID:                e.ID,
		Name:              e.Name,
		Category:          e.Category,
		Description:       nullableStr(e.Description),
		PricePerHour:      e.PricePerHour,
		PricePerDay:       e.PricePerDay,
		Available:         e.Available,
		OperatorID:        e.OperatorID,
		OperatorName:      nullableStr(e.OperatorName),
		Location:          nullableStr(e.Location),
		Image:             nullableStr(e.Image),
		Rating:            e.Rating,
		TotalBookings:     e.TotalBookings,
		MaintenanceStatus: nullableStr(e.MaintenanceStatus),
		QRCode:            nullableStr(e.QRCode),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	m := toEquipmentModel(e)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = *toDomainEquipment(m)
	return nil
}

// GetByID returns nil without error when the equipment does not exist;
// the services distinguish not-found from store failures.
func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	var m EquipmentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainEquipment(m), nil
}

func (r *EquipmentRepository) Save(ctx context.Context, e *domain.Equipment) error {
	m := toEquipmentModel(e)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = *toDomainEquipment(m)
	return nil
}

type EquipmentFilter struct {
	Category      string
	AvailableOnly bool
	OperatorID    int64
}

func (r *EquipmentRepository) List(ctx context.Context, f EquipmentFilter) ([]domain.Equipment, error) {
	q := r.db.WithContext(ctx).Model(&EquipmentModel{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.AvailableOnly {
		q = q.Where("available = ?", true)
	}
	if f.OperatorID != 0 {
		q = q.Where("operator_id = ?", f.OperatorID)
	}

	var rows []EquipmentModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Equipment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainEquipment(m))
	}
	return out, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullableStr(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}
