package chart

// Category is the fixed label and color of one chart slice or series.
type Category struct {
	Key   string
	Label string
	Color string // hex, without '#'
}

// Slices are bound to data entries by position, in the order below.
var (
	GenderCategories = []Category{
		{Key: "male", Label: "male", Color: "f54394"},
		{Key: "female", Label: "female", Color: "5a8dee"},
		{Key: "others", Label: "others", Color: "2cc6c6"},
	}

	AgeCategories = []Category{
		{Key: "18-44", Label: "18-44", Color: "2d87bb"},
		{Key: "44-60", Label: "44-60", Color: "a3df9f"},
		{Key: "above-60", Label: "Above 60", Color: "64c2a6"},
	}

	DoseSeries = []Category{
		{Key: "dose1", Label: "dose1", Color: "5a8dee"},
		{Key: "dose2", Label: "dose2", Color: "f54394"},
	}
)

// fallbackColor is used for entries beyond the configured categories.
const fallbackColor = "9e9e9e"

// categoryAt returns the category bound to position i.
func categoryAt(categories []Category, i int) Category {
	if i < len(categories) {
		return categories[i]
	}
	return Category{Color: fallbackColor}
}
