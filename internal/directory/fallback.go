package directory

import "quicksupply/internal/model"

// FallbackSuppliers is the static dataset served when the backend is
// unreachable. Records use small fixture IDs on purpose: they can never
// pass the persistence-identifier check, so an edit against them is
// always routed to local-only mutation.
func FallbackSuppliers() []model.Supplier {
	return []model.Supplier{
		{
			ID:                 "1",
			Name:               "Phnom Penh Textile Co., Ltd.",
			Industry:           model.IndustryGarmentTextile,
			Category:           "Outerwear",
			Location:           "Phnom Penh",
			Rating:             4.8,
			Description:        "Leading manufacturer of high-quality jackets and sportswear for global brands. ISO 9001 certified with state-of-the-art sewing lines and advanced bonding technologies.",
			ContactEmail:       "sales@pptextile.kh",
			ImageURL:           "https://images.unsplash.com/photo-1551434678-e076c223a692?q=80&w=800",
			EstablishedYear:    2005,
			EmployeeCount:      "2,500+",
			FactorySize:        "15,000 sqm",
			ProductionCapacity: "150,000 units/month",
			BusinessType:       "Manufacturer",
			ExportMarkets:      []string{"USA", "EU", "Japan"},
			Certifications:     []string{"ISO 9001", "OEKO-TEX"},
			Products: []model.Product{
				{
					ID:          "p1",
					SupplierID:  "1",
					Name:        "Technical Raincoat",
					Description: "Triple-layer waterproof tech-fabric with taped seams, built for heavy rain and high durability.",
					Price:       "$15.00",
					MOQ:         "500 units",
					Category:    "Outerwear",
					Images:      []string{"https://images.unsplash.com/photo-1551434678-e076c223a692?q=80&w=800"},
				},
				{
					ID:          "p2",
					SupplierID:  "1",
					Name:        "Insulated Ski Jacket",
					Description: "Sub-zero performance insulation with high breathability, supplied to major Nordic sportswear brands.",
					Price:       "$28.00",
					MOQ:         "300 units",
					Category:    "Outerwear",
					Images:      []string{"https://images.unsplash.com/photo-1521791136064-7986c2959663?q=80&w=800"},
				},
			},
		},
		{
			ID:                 "2",
			Name:               "Angkor Organic Cashews",
			Industry:           model.IndustryAgriculture,
			Category:           "Nuts & Seeds",
			Location:           "Kampong Thom",
			Rating:             4.9,
			Description:        "Premium organic cashews harvested from sustainable farms across Cambodia. Processing follows strict international organic standards.",
			ContactEmail:       "export@angkorcashews.kh",
			ImageURL:           "https://images.unsplash.com/photo-1596541223130-5d31a73fb6c6?q=80&w=800",
			EstablishedYear:    2012,
			EmployeeCount:      "150+",
			FactorySize:        "5,000 sqm",
			ProductionCapacity: "500 MT/annum",
			BusinessType:       "Agricultural Cooperative",
			ExportMarkets:      []string{"EU", "South Korea", "China"},
			Certifications:     []string{"EU Organic", "HACCP"},
			Products: []model.Product{
				{
					ID:          "p3",
					SupplierID:  "2",
					Name:        "Roasted Cashews",
					Description: "Honey-roasted premium grade kernels, vacuum packed for maximum freshness retention.",
					Price:       "$8.50 / kg",
					MOQ:         "100 kg",
					Category:    "Nuts",
					Images:      []string{"https://images.unsplash.com/photo-1596541223130-5d31a73fb6c6?q=80&w=800"},
				},
			},
		},
		{
			ID:             "3",
			Name:           "Siem Reap Artisan Collective",
			Industry:       model.IndustryHandicrafts,
			Category:       "Home Decor",
			Location:       "Siem Reap",
			Rating:         4.7,
			Description:    "A collective of over 200 local artisans producing hand-woven baskets, stone carvings and lacquerware for boutique retailers worldwide.",
			ContactEmail:   "hello@srartisans.kh",
			ImageURL:       "https://images.unsplash.com/photo-1513519245088-0e12902e5a38?q=80&w=800",
			BusinessType:   "Craft Collective",
			ExportMarkets:  []string{"USA", "Australia"},
			Certifications: []string{"Fair Trade"},
			Products: []model.Product{
				{
					ID:          "p4",
					SupplierID:  "3",
					Name:        "Hand-Woven Rattan Basket",
					Description: "Traditional weave, food-safe finish, customisable sizes.",
					Price:       "$4.20",
					MOQ:         "200 units",
					Category:    "Home Decor",
					Images:      []string{"https://images.unsplash.com/photo-1513519245088-0e12902e5a38?q=80&w=800"},
				},
			},
		},
		{
			ID:                 "4",
			Name:               "Mekong Electronics Assembly",
			Industry:           model.IndustryElectronics,
			Category:           "Components",
			Location:           "Bavet",
			Rating:             4.5,
			Description:        "SMT assembly and cable harness production in the Bavet special economic zone, serving automotive and consumer electronics supply chains.",
			ContactEmail:       "sourcing@mekongea.kh",
			ImageURL:           "https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?q=80&w=800",
			EstablishedYear:    2016,
			EmployeeCount:      "800+",
			FactorySize:        "12,000 sqm",
			ProductionCapacity: "2M components/month",
			BusinessType:       "Contract Manufacturer",
			ExportMarkets:      []string{"Japan", "Thailand", "Vietnam"},
			Certifications:     []string{"ISO 9001", "IATF 16949"},
			Products: []model.Product{
				{
					ID:          "p5",
					SupplierID:  "4",
					Name:        "Automotive Wire Harness",
					Description: "Custom harness assembly to OEM drawings, 100% electrical test.",
					Price:       "Inquire",
					MOQ:         "1,000 units",
					Category:    "Components",
					Images:      []string{"https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?q=80&w=800"},
				},
			},
		},
	}
}
