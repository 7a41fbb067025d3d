package transform

// FormatEntry joins the three display parts. Callers normalize case first.
func FormatEntry(name, city, state string) string {
	return name + ", " + city + ", " + state
}
