package transformations

// LowerCase is selected by the "u" command. It rewrites its field to upper
// case letters.
type LowerCase struct {
	Field int
}

func (t LowerCase) Apply(field int, input string) (string, bool) {
	if field != t.Field {
		return "", false
	}
	out := make([]byte, len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out), true
}
