package transformations

// Transformation is the interface that all transformations must implement
type Transformation interface {
	// Apply returns the rewritten input and true when field is the
	// transformation's target field, or "" and false otherwise.
	Apply(field int, input string) (string, bool)
}

// Type identifies a transformation in the command grammar
type Type string

const (
	TypeLowerCase Type = "u"
	TypeUpperCase Type = "U"
	TypeReplace   Type = "R"
)
