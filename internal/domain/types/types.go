// Package types contains common read shapes shared across the application.
package types

// CompetencyInfo describes one competency for form-rendering clients.
type CompetencyInfo struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

// CatalogInfo is the read-only catalog contract: the competency list, the
// label-to-value rating scale and the active tier boundary scheme.
type CatalogInfo struct {
	Competencies []CompetencyInfo `json:"competencies"`
	Scale        map[string]int   `json:"scale"`
	Scheme       string           `json:"scheme"`
}
