package directory

import (
	"time"

	"github.com/medbook/platform/internal/shared/types"
)

// Category is a medical specialty patients browse first.
type Category struct {
	ID          types.ID  `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Doctor is a bookable practitioner within one category.
type Doctor struct {
	ID           types.ID  `json:"id"`
	CategoryID   types.ID  `json:"category_id"`
	FullName     string    `json:"full_name"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
}
