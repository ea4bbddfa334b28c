package models

import "encoding/json"

// ============================================================
// Drawing Model
// ============================================================

// Drawing сохранённый чертёж: исходный запрос и сводка его размеров.
// Картинка лежит в файловом хранилище под тем же ID.
type Drawing struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Kind       string          `json:"kind"`
	Format     string          `json:"format"`
	Request    json.RawMessage `json:"request,omitempty"`
	Lifts      int             `json:"lifts"`
	TotalWidth float64         `json:"total_width"`
	TotalDepth float64         `json:"total_depth"`
	CreatedAt  string          `json:"created_at"`
}
