// Package order models the sort parameters of a search request.
package order

// Field selects which document field results are sorted by.
type Field string

// Sortable fields. None means the template's default ordering applies.
const (
	None   Field = ""
	Date   Field = "date"
	Price  Field = "price"
	Rating Field = "rating"
)

// ParseField normalizes a raw orderby value. Unrecognized values collapse
// to None, which adds no sort clause.
func ParseField(raw string) Field {
	switch Field(raw) {
	case Date, Price, Rating:
		return Field(raw)
	default:
		return None
	}
}

// Direction is the sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection normalizes a raw order value, defaulting to Asc.
func ParseDirection(raw string) Direction {
	if Direction(raw) == Desc {
		return Desc
	}
	return Asc
}
