package dto

import "time"

// ImportPackagesRequest entrada para importar una lista explícita de nombres.
type ImportPackagesRequest struct {
	Names []string `json:"names" validate:"required"`
}

// ImportLockfileRequest entrada JSON alternativa a la subida multipart del lockfile.
type ImportLockfileRequest struct {
	Filename string `json:"filename" validate:"required"`
	Content  string `json:"content"`
}

// ImportPackagesResponse resultado de una importación por lista. Cada nombre distinto de la
// entrada aparece en exactamente un bucket, en orden de primera aparición.
type ImportPackagesResponse struct {
	ImportedCount int      `json:"imported_count"`
	SkippedCount  int      `json:"skipped_count"`
	InvalidCount  int      `json:"invalid_count"`
	Imported      []string `json:"imported"`
	Skipped       []string `json:"skipped"`
	Invalid       []string `json:"invalid"`
}

// ImportLockfileResponse resultado de una importación desde lockfile (sin bucket de inválidos).
type ImportLockfileResponse struct {
	Dialect       string   `json:"dialect"`
	TotalParsed   int      `json:"total_parsed"`
	ImportedCount int      `json:"imported_count"`
	SkippedCount  int      `json:"skipped_count"`
	Imported      []string `json:"imported"`
	Skipped       []string `json:"skipped"`
}

// PackageResponse salida de un paquete del catálogo.
type PackageResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	Name       string    `json:"name"`
	Registry   string    `json:"registry"`
	ImportedBy string    `json:"imported_by,omitempty"`
	ImportedAt time.Time `json:"imported_at"`
}

// PackageListResponse lista paginada del catálogo.
type PackageListResponse struct {
	Items []PackageResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
