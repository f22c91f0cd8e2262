package entity

// Book describes the single document served by the reader. PageCount is
// the inclusive upper bound of valid page numbers; pages are numbered
// from 1.
type Book struct {
	Title     string
	PageCount int
}
