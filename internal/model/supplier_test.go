package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwnedBy(t *testing.T) {
	s := Supplier{OwnerUserID: "u-1", ContactEmail: "a@x.kh"}

	assert.True(t, s.OwnedBy("u-1", "other@x.kh"), "user id wins over email")
	assert.False(t, s.OwnedBy("u-2", "a@x.kh"), "a mismatched user id is never rescued by the email")

	// Records without a durable owner id fall back to the contact email.
	legacy := Supplier{ContactEmail: "a@x.kh"}
	assert.True(t, legacy.OwnedBy("u-1", "a@x.kh"))
	assert.False(t, legacy.OwnedBy("u-1", "b@x.kh"))

	// Neither side identified: no ownership.
	var blank Supplier
	assert.False(t, blank.OwnedBy("", ""))
}

func TestSupplierCloneIsDeep(t *testing.T) {
	s := Supplier{
		Name:           "A",
		Certifications: []string{"ISO 9001"},
		ExportMarkets:  []string{"EU"},
		Products: []Product{
			{Name: "P", Images: []string{"img"}},
		},
	}

	c := s.Clone()
	c.Certifications[0] = "changed"
	c.ExportMarkets[0] = "changed"
	c.Products[0].Name = "changed"
	c.Products[0].Images[0] = "changed"

	assert.Equal(t, "ISO 9001", s.Certifications[0])
	assert.Equal(t, "EU", s.ExportMarkets[0])
	assert.Equal(t, "P", s.Products[0].Name)
	assert.Equal(t, "img", s.Products[0].Images[0])
}
