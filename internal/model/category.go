package model

const (
	// DefaultCategoryColor is used when a category is created without a color.
	DefaultCategoryColor = "#6b7280"
	// DefaultCategoryIcon is used when a category is created without an icon.
	DefaultCategoryIcon = "tag"

	// UnknownCategoryName labels spending whose category id no longer resolves.
	UnknownCategoryName = "Unknown"
	// UnknownCategoryColor is the neutral gray used for unresolved categories.
	UnknownCategoryColor = "#9ca3af"
)

// Category is a user-defined label for grouping expense transactions. Icon is a
// symbolic name; the presentation layer owns the mapping from name to glyph,
// the core only stores the identifier. Names are not required to be unique;
// categories are disambiguated by id.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// DefaultCategories returns the built-in category set used to seed an empty
// store. IDs are fixed so seeded data is stable across installs.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat-food", Name: "Food & Dining", Color: "#ef4444", Icon: "utensils"},
		{ID: "cat-transport", Name: "Transportation", Color: "#f97316", Icon: "car"},
		{ID: "cat-shopping", Name: "Shopping", Color: "#eab308", Icon: "shopping-bag"},
		{ID: "cat-entertainment", Name: "Entertainment", Color: "#8b5cf6", Icon: "film"},
		{ID: "cat-bills", Name: "Bills & Utilities", Color: "#3b82f6", Icon: "receipt"},
		{ID: "cat-health", Name: "Health & Fitness", Color: "#22c55e", Icon: "heart-pulse"},
		{ID: "cat-education", Name: "Education", Color: "#06b6d4", Icon: "graduation-cap"},
		{ID: "cat-other", Name: "Other", Color: "#6b7280", Icon: "circle-ellipsis"},
	}
}
