package filter

// Where is a single field condition applied to a Firestore query.
type Where struct {
	Path  string
	Op    string
	Value interface{}
}

// OrderBy sorts a query by the field path.
type OrderBy struct {
	Path string
	Desc bool
}
