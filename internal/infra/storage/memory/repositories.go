// Package memory provides in-process implementations of the storage ports.
// They back the dev loop and the test suites; every error contract matches
// the mongo implementations.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainbooking "dreamstay/internal/domain/booking"
	domaininventory "dreamstay/internal/domain/inventory"
	domainproperty "dreamstay/internal/domain/property"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/stay"
)

// PropertyRepository stores listings in memory.
type PropertyRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domainproperty.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: make(map[int64]domainproperty.Property)}
}

func (r *PropertyRepository) ByID(ctx context.Context, id int64) (*domainproperty.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound("property not found")
	}
	clone := p
	return &clone, nil
}

func (r *PropertyRepository) Insert(ctx context.Context, p *domainproperty.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.HostID == p.HostID &&
			strings.EqualFold(existing.Title, p.Title) &&
			strings.EqualFold(existing.Location, p.Location) {
			return apperr.Conflict("property with the same title and location already exists")
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.items[p.ID] = *p
	return nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return apperr.NotFound("property not found")
	}
	r.items[p.ID] = *p
	return nil
}

func (r *PropertyRepository) ListByHost(ctx context.Context, hostID int64) ([]domainproperty.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domainproperty.Property
	for _, p := range r.items {
		if p.HostID == hostID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PropertyRepository) SearchApproved(ctx context.Context, filter domainproperty.SearchFilter) ([]domainproperty.Property, error) {
	location := strings.ToLower(strings.TrimSpace(filter.Location))
	title := strings.ToLower(strings.TrimSpace(filter.Title))

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domainproperty.Property
	for _, p := range r.items {
		if !p.IsApproved {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(p.Location), location) {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(p.Title), title) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// locationOf resolves a property's location for the trending aggregate.
func (r *PropertyRepository) locationOf(id int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return "", false
	}
	return p.Location, true
}

// InventoryRepository stores availability records keyed by property and date.
type InventoryRepository struct {
	mu    sync.RWMutex
	items map[int64]map[string]domaininventory.Record
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{items: make(map[int64]map[string]domaininventory.Record)}
}

func (r *InventoryRepository) Get(ctx context.Context, propertyID int64, date stay.DateKey) (*domaininventory.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.items[propertyID][date.String()]
	if !ok {
		return nil, apperr.NotFound("availability record not found")
	}
	clone := rec
	return &clone, nil
}

func (r *InventoryRepository) Range(ctx context.Context, propertyID int64, from, to stay.DateKey) ([]domaininventory.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domaininventory.Record
	for _, rec := range r.items[propertyID] {
		if rec.Date.Before(from) || !rec.Date.Before(to) {
			continue
		}
		out = append(out, rec)
	}
	sortByDate(out)
	return out, nil
}

func (r *InventoryRepository) Bookable(ctx context.Context, propertyID int64, dates []stay.DateKey) ([]domaininventory.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domaininventory.Record, 0, len(dates))
	for _, d := range dates {
		rec, ok := r.items[propertyID][d.String()]
		if !ok || !rec.Bookable() {
			continue
		}
		out = append(out, rec)
	}
	sortByDate(out)
	return out, nil
}

func (r *InventoryRepository) Insert(ctx context.Context, rec domaininventory.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byDate, ok := r.items[rec.PropertyID]
	if !ok {
		byDate = make(map[string]domaininventory.Record)
		r.items[rec.PropertyID] = byDate
	}
	key := rec.Date.String()
	if _, exists := byDate[key]; exists {
		return apperr.Conflict("availability record already exists for this date")
	}
	byDate[key] = rec
	return nil
}

func (r *InventoryRepository) Apply(ctx context.Context, propertyID int64, date stay.DateKey, m domaininventory.Mutation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.items[propertyID][date.String()]
	if !ok {
		return apperr.NotFound("availability record not found")
	}
	if rec.IsReserved {
		return apperr.Conflict("availability record is reserved")
	}
	if m.Price != nil {
		rec.Price = *m.Price
	}
	if m.IsAvailable != nil {
		rec.IsAvailable = *m.IsAvailable
	}
	if m.IsBlocked != nil {
		rec.IsBlocked = *m.IsBlocked
	}
	r.items[propertyID][date.String()] = rec
	return nil
}

// Reserve checks every night under the write lock before flipping any of
// them, so a lost race leaves no record half reserved.
func (r *InventoryRepository) Reserve(ctx context.Context, propertyID int64, dates []stay.DateKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byDate := r.items[propertyID]
	for _, d := range dates {
		rec, ok := byDate[d.String()]
		if !ok || !rec.Bookable() {
			return apperr.Conflict("some dates are not available for booking")
		}
	}
	for _, d := range dates {
		rec := byDate[d.String()]
		rec.IsReserved = true
		byDate[d.String()] = rec
	}
	return nil
}

func sortByDate(records []domaininventory.Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

// BookingRepository stores bookings in memory. The trending aggregate joins
// bookings to listing locations through the property repository.
type BookingRepository struct {
	mu         sync.RWMutex
	nextID     int64
	items      map[int64]domainbooking.Booking
	Properties *PropertyRepository
}

func NewBookingRepository(properties *PropertyRepository) *BookingRepository {
	return &BookingRepository{
		items:      make(map[int64]domainbooking.Booking),
		Properties: properties,
	}
}

func (r *BookingRepository) Insert(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	r.items[b.ID] = *b
	return nil
}

func (r *BookingRepository) ByID(ctx context.Context, id int64) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, apperr.NotFound("booking not found")
	}
	clone := b
	return &clone, nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID int64) ([]domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domainbooking.Booking
	for _, b := range r.items {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *BookingRepository) TopDestinations(ctx context.Context, limit int) ([]domainbooking.DestinationCount, error) {
	if limit <= 0 {
		return nil, nil
	}
	r.mu.RLock()
	counts := make(map[string]int64)
	for _, b := range r.items {
		if b.Status != domainbooking.StatusConfirmed {
			continue
		}
		location, ok := r.Properties.locationOf(b.PropertyID)
		if !ok {
			continue
		}
		counts[location]++
	}
	r.mu.RUnlock()

	out := make([]domainbooking.DestinationCount, 0, len(counts))
	for location, n := range counts {
		out = append(out, domainbooking.DestinationCount{Location: location, Reservations: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Reservations == out[j].Reservations {
			return out[i].Location < out[j].Location
		}
		return out[i].Reservations > out[j].Reservations
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
