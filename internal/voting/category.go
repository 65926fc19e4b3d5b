package voting

type Category string

const (
	CategoryOverall   Category = "OVERALL"
	CategoryTechnical Category = "TECHNICAL"
	CategoryFunny     Category = "FUNNY"
)

// Categories lists every vote category in display order.
var Categories = []Category{CategoryOverall, CategoryTechnical, CategoryFunny}

// ParseCategory accepts only the exact upper-case category names.
func ParseCategory(raw string) (Category, bool) {
	for _, category := range Categories {
		if string(category) == raw {
			return category, true
		}
	}
	return "", false
}

func (c Category) Label() string {
	switch c {
	case CategoryOverall:
		return "Overall"
	case CategoryTechnical:
		return "Technical"
	case CategoryFunny:
		return "Funny"
	default:
		return string(c)
	}
}
