package transformations

// UpperCase is selected by the "U" command. It rewrites its field to lower
// case letters.
type UpperCase struct {
	Field int
}

func (t UpperCase) Apply(field int, input string) (string, bool) {
	if field != t.Field {
		return "", false
	}
	out := make([]byte, len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out), true
}
