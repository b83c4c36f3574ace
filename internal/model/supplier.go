package model

import (
	"time"
)

// Industry is the fixed sector classification used by the directory.
type Industry string

const (
	IndustryAgriculture    Industry = "Agriculture"
	IndustryGarmentTextile Industry = "Garment & Textile"
	IndustryHandicrafts    Industry = "Handicrafts"
	IndustryElectronics    Industry = "Electronics"
	IndustryConstruction   Industry = "Construction"
	IndustryFoodProcessing Industry = "Food Processing"
)

// Industries lists every sector in display order.
func Industries() []Industry {
	return []Industry{
		IndustryAgriculture,
		IndustryGarmentTextile,
		IndustryHandicrafts,
		IndustryElectronics,
		IndustryConstruction,
		IndustryFoodProcessing,
	}
}

// Supplier represents a directory entry: either a company dossier
// (IsOwner) or an independent product listing owned by a supplier
// account (BelongsToOwner).
type Supplier struct {
	ID          string   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerUserID string   `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Name        string   `json:"name" gorm:"type:varchar(200);index;not null"`
	Industry    Industry `json:"industry" gorm:"type:varchar(50);index"`
	Category    string   `json:"category" gorm:"type:varchar(100)"`
	Location    string   `json:"location" gorm:"type:varchar(100)"`
	Rating      float64  `json:"rating" gorm:"type:numeric(3,1);default:5"`
	Description string   `json:"description" gorm:"type:text"`

	ContactEmail string `json:"contact_email" gorm:"type:varchar(200);index"`
	ImageURL     string `json:"image_url" gorm:"type:text"`

	IsOwner        bool `json:"is_owner" gorm:"default:false"`
	BelongsToOwner bool `json:"belongs_to_owner" gorm:"default:false"`

	// Extended dossier fields, populated by the AI profile generator or
	// left blank.
	EstablishedYear    int    `json:"established_year,omitempty"`
	EmployeeCount      string `json:"employee_count,omitempty" gorm:"type:varchar(50)"`
	FactorySize        string `json:"factory_size,omitempty" gorm:"type:varchar(50)"`
	ProductionCapacity string `json:"production_capacity,omitempty" gorm:"type:varchar(100)"`
	BusinessType       string `json:"business_type,omitempty" gorm:"type:varchar(100)"`

	Certifications []string `json:"certifications" gorm:"serializer:json"`
	ExportMarkets  []string `json:"export_markets,omitempty" gorm:"serializer:json"`

	Products []Product `json:"products" gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedBy reports whether this record belongs to the given session
// identity. The stable owner user ID wins; the contact email is only a
// fallback for offline/demo sessions that never got a durable user ID.
func (s *Supplier) OwnedBy(userID, email string) bool {
	if s.OwnerUserID != "" && userID != "" {
		return s.OwnerUserID == userID
	}
	return s.ContactEmail != "" && s.ContactEmail == email
}

// Clone returns a deep copy so callers can never alias the reconciler's
// in-memory collection.
func (s Supplier) Clone() Supplier {
	out := s
	out.Certifications = append([]string(nil), s.Certifications...)
	out.ExportMarkets = append([]string(nil), s.ExportMarkets...)
	out.Products = make([]Product, len(s.Products))
	for i, p := range s.Products {
		out.Products[i] = p.Clone()
	}
	return out
}
