package catalog

import (
	"errors"
	"fmt"

	"salon-booking/internal/slots"
)

var (
	ErrUnknownService   = errors.New("unknown service")
	ErrDuplicateService = errors.New("duplicate service key")
)

type Entry struct {
	Key string `json:"key"`
	slots.Service
}

// Catalog is the ordered list of services the salon offers.
type Catalog struct {
	entries []Entry
	byKey   map[string]int
}

// Default mirrors the salon's menu.
func Default() *Catalog {
	c, _ := New([]Entry{
		{Key: "corte", Service: slots.Service{Name: "Corte de Cabelo", DurationMinutes: 45}},
		{Key: "escova", Service: slots.Service{Name: "Escova Simples", DurationMinutes: 30}},
		{Key: "manicure", Service: slots.Service{Name: "Manicure + Pedicure", DurationMinutes: 60}},
		{Key: "coloracao", Service: slots.Service{Name: "Coloração", DurationMinutes: 90}},
	})
	return c
}

func New(entries []Entry) (*Catalog, error) {
	const op = "catalog.New"

	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if _, ok := c.byKey[e.Key]; ok {
			return nil, fmt.Errorf("%s: %w: %s", op, ErrDuplicateService, e.Key)
		}
		if err := e.Service.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		c.byKey[e.Key] = len(c.entries)
		c.entries = append(c.entries, e)
	}

	return c, nil
}

func (c *Catalog) Lookup(key string) (slots.Service, error) {
	i, ok := c.byKey[key]
	if !ok {
		return slots.Service{}, fmt.Errorf("catalog.Lookup: %w: %q", ErrUnknownService, key)
	}
	return c.entries[i].Service, nil
}

// All returns a copy of the entries in menu order.
func (c *Catalog) All() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
