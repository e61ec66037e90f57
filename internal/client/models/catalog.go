package models

type Provincia struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type Categoria struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type Municipio struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	ProvinciaID *int   `json:"provincia_id,omitempty"`
}

// NewCatalogEntry is the body of every catalog create call.
type NewCatalogEntry struct {
	Nombre string `json:"nombre"`
}
