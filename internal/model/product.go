package model

import "time"

// Product is a catalog item nested under a supplier record. Price and
// MOQ are display strings, not currency types: the directory shows what
// the supplier typed.
type Product struct {
	ID          string   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID  string   `json:"supplier_id" gorm:"type:uuid;index;not null"`
	Name        string   `json:"name" gorm:"type:varchar(200);not null"`
	Description string   `json:"description" gorm:"type:text"`
	Price       string   `json:"price" gorm:"type:varchar(50)"`
	MOQ         string   `json:"moq" gorm:"type:varchar(50)"`
	Category    string   `json:"category" gorm:"type:varchar(100)"`
	Images      []string `json:"images" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a deep copy of the product.
func (p Product) Clone() Product {
	out := p
	out.Images = append([]string(nil), p.Images...)
	return out
}
