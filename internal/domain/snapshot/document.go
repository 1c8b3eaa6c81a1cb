package snapshot

import "time"

// Row is a label/value pair on a page
type Row struct {
	Label string
	Value string
}

// Section groups rows and free text under a heading. Table sections are
// drawn with borders.
type Section struct {
	Heading string
	Rows    []Row
	Lines   []string
	Table   bool
}

type Page struct {
	Title    string
	Sections []Section
}

// Document is the rendering-independent content of a Snapshot. It is a pure
// function of the lead, so two documents built from the same lead compare
// equal.
type Document struct {
	Title      string
	PreparedAt time.Time
	Pages      []Page
	Footer     string
}

// Snapshot is a composed report ready for download or attachment
type Snapshot struct {
	Document    Document
	PDF         []byte
	Filename    string
	GeneratedAt time.Time
}
