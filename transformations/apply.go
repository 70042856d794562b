package transformations

// ProcessLine splits line into tab separated fields and offers every field to
// every command, in order. A command that applies replaces the field value
// seen by the commands after it. changed reports whether any command applied.
func ProcessLine(line string, commands []Transformation) (changed bool, fields []string) {
	fields = Tokenize(line, '\t')
	for i := range fields {
		for _, cmd := range commands {
			if out, ok := cmd.Apply(i, fields[i]); ok {
				fields[i] = out
				changed = true
			}
		}
	}
	return changed, fields
}
