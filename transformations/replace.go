package transformations

// Replace is selected by the "RAB" command with From = A and To = B.
// Occurrences of From are written back as From, so the field text is
// returned unchanged; To is kept but never emitted.
type Replace struct {
	Field int
	From  byte
	To    byte
}

func (t Replace) Apply(field int, input string) (string, bool) {
	if field != t.Field {
		return "", false
	}
	out := make([]byte, len(input))
	for i := 0; i < len(input); i++ {
		if input[i] == t.From {
			out[i] = t.From
		} else {
			out[i] = input[i]
		}
	}
	return string(out), true
}
