package ops

// Firestore query operators.
const (
	Equal          = "=="
	NotEqual       = "!="
	Less           = "<"
	LessOrEqual    = "<="
	Greater        = ">"
	GreaterOrEqual = ">="
	In             = "in"
	ArrayContains  = "array-contains"
)
