package web

import (
	"slices"
	"strings"
	"sync"

	"github.com/borrmann/bautagebuch/pkg/format"
	"github.com/borrmann/bautagebuch/pkg/table"
)

// Material is an entry of the material catalog.
type Material struct {
	ID        string
	Name      string
	Kategorie string
	Einheit   string
	Preis     float64
}

// Catalog is the in-memory list of materials shown in the admin table.
type Catalog struct {
	mu        sync.RWMutex
	materials []Material
	format    *format.Formatter
}

// NewCatalog creates a catalog over materials.
func NewCatalog(f *format.Formatter, materials ...Material) *Catalog {
	return &Catalog{materials: slices.Clone(materials), format: f}
}

// DefaultMaterials seeds the catalog.
func DefaultMaterials() []Material {
	return []Material{
		{ID: "1", Name: "Beton C25/30", Kategorie: "Beton", Einheit: "m³", Preis: 112.5},
		{ID: "2", Name: "Bewehrungsstahl", Kategorie: "Stahl", Einheit: "t", Preis: 980},
		{ID: "3", Name: "Kalksandstein", Kategorie: "Mauerwerk", Einheit: "Stk", Preis: 1.85},
		{ID: "4", Name: "Kabel NYM-J 3x1,5", Kategorie: "Elektro", Einheit: "m", Preis: 0.79},
		{ID: "5", Name: "Dämmplatten EPS", Kategorie: "Dämmung", Einheit: "m²", Preis: 14.2},
	}
}

// Get returns the material id.
func (c *Catalog) Get(id string) (Material, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := slices.IndexFunc(c.materials, func(m Material) bool { return m.ID == id })
	if i < 0 {
		return Material{}, false
	}
	return c.materials[i], true
}

// HasName reports whether a material with name exists, ignoring case.
func (c *Catalog) HasName(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.ContainsFunc(c.materials, func(m Material) bool {
		return strings.EqualFold(m.Name, strings.TrimSpace(name))
	})
}

// Remove deletes id from the catalog.
func (c *Catalog) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := len(c.materials)
	c.materials = slices.DeleteFunc(c.materials, func(m Material) bool { return m.ID == id })
	return len(c.materials) != before
}

// Len returns the number of materials.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.materials)
}

// MaterialsTableID is the id of the material table.
const MaterialsTableID = "materials"

// Table returns the catalog as a table.
func (c *Catalog) Table() *table.Table {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows := make([]table.Row, 0, len(c.materials))
	for _, m := range c.materials {
		rows = append(rows, table.Row{
			ID:    m.ID,
			Cells: []string{m.Name, m.Kategorie, m.Einheit, c.format.Currency(m.Preis)},
		})
	}
	return &table.Table{
		ID: MaterialsTableID,
		Columns: []table.Column{
			{Label: "Bezeichnung", Sortable: true},
			{Label: "Kategorie", Sortable: true},
			{Label: "Einheit", Sortable: true},
			{Label: "Preis", Sortable: true},
		},
		Rows: rows,
	}
}
