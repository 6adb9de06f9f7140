package field

// FieldType distinguishes built-in product attributes from tenant-defined
// custom fields in display configuration.
const (
	DisplaySystem = "system"
	DisplayCustom = "custom"
)

// Display configures visibility and ordering of one field in the two
// storefront contexts: the catalog listing and the single-product page.
type Display struct {
	ID            string `json:"id"`
	TenantID      string `json:"tenant_id"`
	FieldType     string `json:"field_type"`
	FieldName     string `json:"field_name"`
	CatalogOrder  int    `json:"catalog_order"`
	ShowInCatalog bool   `json:"show_in_catalog"`
	ProductOrder  int    `json:"product_order"`
	ShowInProduct bool   `json:"show_in_product"`
}

// ReorderItem is one entry of a display reorder batch. A nil order leaves
// that axis unchanged; negative values are skipped for that axis.
type ReorderItem struct {
	ID           string `json:"id"`
	CatalogOrder *int   `json:"catalog_order,omitempty"`
	ProductOrder *int   `json:"product_order,omitempty"`
}

// SystemDisplayDefaults returns the display rows seeded for the fixed
// built-in product attributes of a new tenant. Internal technical fields
// (visible, vendable, photo_url) exist as rows but are hidden in both
// contexts; photo is likewise hidden by default.
func SystemDisplayDefaults(tenantID string) []Display {
	visible := []struct {
		name  string
		order int
	}{
		{"name", 0},
		{"reference", 1},
		{"price", 2},
		{"stock", 3},
	}
	hidden := []string{"photo", "visible", "vendable", "photo_url"}

	out := make([]Display, 0, len(visible)+len(hidden))
	for _, f := range visible {
		out = append(out, Display{
			TenantID:      tenantID,
			FieldType:     DisplaySystem,
			FieldName:     f.name,
			CatalogOrder:  f.order,
			ShowInCatalog: true,
			ProductOrder:  f.order,
			ShowInProduct: true,
		})
	}
	for i, name := range hidden {
		out = append(out, Display{
			TenantID:     tenantID,
			FieldType:    DisplaySystem,
			FieldName:    name,
			CatalogOrder: len(visible) + i,
			ProductOrder: len(visible) + i,
		})
	}
	return out
}
