package models

// Company is a registry row used as a matching target. The pipeline never
// mutates the registry.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
