package catalog

import "github.com/shopspring/decimal"

// DefaultCatalog returns the seed inventory used when no store file exists or
// the existing one cannot be read.
func DefaultCatalog() Catalog {
	return Catalog{
		1: {
			ID:          1,
			Name:        "Mug Insert - Light Grey",
			Price:       decimal.New(1000, -2),
			Image:       "1. Mug Insert Light Grey.jpg",
			Description: "Hey! Is your favorite mug too big for your car's cup holder? This light grey mug insert is the perfect solution, designed to hold mugs up to 3.5 inches in diameter so you can take your favorite drink on the road. Mug not included.",
			Stock:       5,
			Sold:        1,
		},
		2: {
			ID:          2,
			Name:        "Mug Insert - Dark Grey",
			Price:       decimal.New(1000, -2),
			Image:       "2.Mug Insert Dark Grey.jpg",
			Description: "Hey! Is your favorite mug too big for your car's cup holder? This dark grey mug insert is the perfect solution, designed to hold mugs up to 3.5 inches in diameter so you can take your favorite drink on the road. Mug not included.",
			Stock:       5,
			Sold:        1,
		},
		3: {
			ID:          3,
			Name:        "Art Brush Holder",
			Price:       decimal.New(2000, -2),
			Image:       "3.BrushHolder.jpeg",
			Description: "Keep your artistic brushes neat and accessible.",
			Stock:       5,
			Sold:        0,
		},
	}
}
