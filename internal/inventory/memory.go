package inventory

import (
	"sync"

	"boutique-backend/internal/models"
)

// MemoryCatalog: in-memory Catalog used by tests and local tooling.
type MemoryCatalog struct {
	mu     sync.Mutex
	nextID uint
	items  []models.Item
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{nextID: 1}
}

func (m *MemoryCatalog) Items() ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Item, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryCatalog) ItemByID(id uint) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ID == id {
			copied := item
			copied.Variants = append([]models.ItemVariant(nil), item.Variants...)
			return &copied, nil
		}
	}
	return nil, ErrItemNotFound
}

func (m *MemoryCatalog) CreateItem(item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.nextID
	m.nextID++
	for i := range item.Variants {
		item.Variants[i].ItemID = item.ID
	}
	m.items = append(m.items, *item)
	return nil
}

func (m *MemoryCatalog) SaveItem(item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = *item
			return nil
		}
	}
	return ErrItemNotFound
}

func (m *MemoryCatalog) LowStock() ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	low := make([]models.Item, 0)
	for _, item := range m.items {
		if item.TotalStock() <= item.LowStockThreshold {
			low = append(low, item)
		}
	}
	return low, nil
}
