package models

// Attachment is a file picked for a receive batch, held in memory until the
// batch is submitted. At most one attachment travels with a batch.
type Attachment struct {
	Name     string
	MIMEType string
	Content  []byte
}
