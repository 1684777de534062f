package dto

// FieldEntry is one raw value typed into a reception field
type FieldEntry struct {
	Field string
	Value string
	Line  int
}

// ReceptionInput is the ordered sequence of entries that builds one reception
type ReceptionInput struct {
	Reference string
	Entries   []FieldEntry
}
