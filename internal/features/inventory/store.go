package inventory

import (
	"fmt"
	"sync"
	"time"

	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
)

type recordKey struct {
	productID uuid.UUID
	vendorID  uuid.UUID
}

// store is the in-memory backing for the stock ledger. Every check-then-act
// sequence runs under the write lock so two concurrent reservations against
// the same record can never both observe sufficient stock.
type store struct {
	mu      sync.RWMutex
	records map[recordKey]*StockRecord
	keys    []recordKey // creation order, so vendor listings are deterministic
}

func NewStore() *store {
	return &store{
		records: make(map[recordKey]*StockRecord),
	}
}

func (s *store) find(productID, vendorID uuid.UUID) (StockRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[recordKey{productID, vendorID}]
	if !exists {
		return StockRecord{}, false
	}

	return copyRecord(record), true
}

// upsert replaces the record's available quantity with qty, creating the
// record on first use. The quantity is absolute, not additive.
func (s *store) upsert(productID, vendorID uuid.UUID, qty int) StockRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey{productID, vendorID}

	record, exists := s.records[key]
	if !exists {
		record = &StockRecord{
			ProductID:    productID,
			VendorID:     vendorID,
			ReorderLevel: defaultReorderLevel,
		}
		s.records[key] = record
		s.keys = append(s.keys, key)
	}

	record.AvailableQuantity = qty
	record.UpdatedAt = time.Now().UTC()

	return copyRecord(record)
}

func (s *store) reserve(productID, vendorID uuid.UUID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[recordKey{productID, vendorID}]
	if !exists {
		return servererrors.ErrStockRecordNotFound
	}

	if record.AvailableQuantity < qty {
		return servererrors.ErrInsufficientStock
	}

	record.AvailableQuantity -= qty
	record.ReservedQuantity += qty
	record.UpdatedAt = time.Now().UTC()

	return nil
}

// release moves qty back from reserved to available. It reports whether the
// move happened; a shortfall leaves the record untouched.
func (s *store) release(productID, vendorID uuid.UUID, qty int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[recordKey{productID, vendorID}]
	if !exists || record.ReservedQuantity < qty {
		return false
	}

	record.ReservedQuantity -= qty
	record.AvailableQuantity += qty
	record.UpdatedAt = time.Now().UTC()

	return true
}

// lowStockNote appends a low-stock notification, deduplicated by exact text,
// when available quantity is at or below the reorder level. It reports the
// remaining quantity and whether a new notification was appended.
func (s *store) lowStockNote(productID, vendorID uuid.UUID) (note string, remaining int, appended bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.records[recordKey{productID, vendorID}]
	if !exists || record.AvailableQuantity > record.ReorderLevel {
		return "", 0, false
	}

	note = fmt.Sprintf(
		"Low stock alert: Only %d units left in stock for Product %s.",
		record.AvailableQuantity,
		record.ProductID,
	)

	for _, existing := range record.Notifications {
		if existing == note {
			return note, record.AvailableQuantity, false
		}
	}

	record.Notifications = append(record.Notifications, note)
	record.UpdatedAt = time.Now().UTC()

	return note, record.AvailableQuantity, true
}

func (s *store) byVendor(vendorID uuid.UUID) []StockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]StockRecord, 0)
	for _, key := range s.keys {
		if key.vendorID != vendorID {
			continue
		}
		records = append(records, copyRecord(s.records[key]))
	}

	return records
}

func (s *store) all() []StockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]StockRecord, 0, len(s.keys))
	for _, key := range s.keys {
		records = append(records, copyRecord(s.records[key]))
	}

	return records
}

func (s *store) notificationsByVendor(vendorID uuid.UUID) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]string, 0)
	for _, key := range s.keys {
		if key.vendorID != vendorID {
			continue
		}
		notifications = append(
			notifications,
			s.records[key].Notifications...,
		)
	}

	return notifications
}

func copyRecord(record *StockRecord) StockRecord {
	copied := *record
	copied.Notifications = append([]string(nil), record.Notifications...)

	return copied
}
