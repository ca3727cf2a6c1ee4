package inventory

import (
	"errors"

	"boutique-backend/internal/models"

	"gorm.io/gorm"
)

var ErrItemNotFound = errors.New("item not found")

// Catalog: the persistent item catalog as seen by the BOM upload flow
// and the dashboard. Backed by Postgres in production and by an
// in-memory store in tests.
type Catalog interface {
	Items() ([]models.Item, error)
	ItemByID(id uint) (*models.Item, error)
	CreateItem(item *models.Item) error
	SaveItem(item *models.Item) error
	LowStock() ([]models.Item, error)
}

type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (g *GormCatalog) Items() ([]models.Item, error) {
	var items []models.Item
	if err := g.db.Preload("Variants").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (g *GormCatalog) ItemByID(id uint) (*models.Item, error) {
	var item models.Item
	err := g.db.Preload("Variants").First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (g *GormCatalog) CreateItem(item *models.Item) error {
	return g.db.Create(item).Error
}

func (g *GormCatalog) SaveItem(item *models.Item) error {
	// Full save so new variants appended during a BOM commit are
	// persisted together with the stock increments.
	return g.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(item).Error
}

func (g *GormCatalog) LowStock() ([]models.Item, error) {
	items, err := g.Items()
	if err != nil {
		return nil, err
	}
	low := make([]models.Item, 0)
	for _, item := range items {
		if item.TotalStock() <= item.LowStockThreshold {
			low = append(low, item)
		}
	}
	return low, nil
}
