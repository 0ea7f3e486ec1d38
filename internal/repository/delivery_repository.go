package repository

import (
	"errors"

	"github.com/pizzame/backend/internal/models"

	"gorm.io/gorm"
)

// DeliveryRepository 配送信息数据访问接口
type DeliveryRepository interface {
	Create(info *models.DeliveryInfo) error
	GetByOrderID(orderID uint) (*models.DeliveryInfo, error)
	Update(info *models.DeliveryInfo) error
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormDeliveryRepository
}

// GormDeliveryRepository GORM 实现
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository 创建配送仓库
func NewDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDeliveryRepository) WithTx(tx *gorm.DB) *GormDeliveryRepository {
	if tx == nil {
		return r
	}
	return &GormDeliveryRepository{db: tx}
}

// Create 创建配送信息
func (r *GormDeliveryRepository) Create(info *models.DeliveryInfo) error {
	return r.db.Create(info).Error
}

// GetByOrderID 根据订单 ID 获取配送信息
func (r *GormDeliveryRepository) GetByOrderID(orderID uint) (*models.DeliveryInfo, error) {
	var info models.DeliveryInfo
	if err := r.db.Where("order_id = ?", orderID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// Update 更新配送信息
func (r *GormDeliveryRepository) Update(info *models.DeliveryInfo) error {
	return r.db.Save(info).Error
}

// UpdateStatus 更新配送状态
func (r *GormDeliveryRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.DeliveryInfo{}).Where("id = ?", id).Updates(updates).Error
}
