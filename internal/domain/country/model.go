package country

// Country is reference data for player nationality.
type Country struct {
	ID   int64
	Name string
}
