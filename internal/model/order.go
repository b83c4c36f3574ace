package model

import "time"

// Order is a buyer's purchase record, shown read-only on the buyer
// profile screen. There is no placement flow; rows are seeded by the
// trade-desk side of the platform.
type Order struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BuyerID     string    `json:"buyer_id" gorm:"type:uuid;index;not null"`
	SupplierID  string    `json:"supplier_id" gorm:"type:uuid;index;not null"`
	Total       string    `json:"total" gorm:"type:varchar(50)"`
	Status      string    `json:"status" gorm:"type:varchar(50)"`
	Progress    int       `json:"progress"`
	EstDelivery string    `json:"est_delivery" gorm:"type:varchar(50)"`
	CreatedAt   time.Time `json:"created_at"`

	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}
