package markdown

// LinkKind classifies how a link appeared in the source.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
	LinkKindHTML                LinkKind = "html"
)

// Link is a link-like construct found in a page body.
type Link struct {
	Kind        LinkKind
	Destination string
}

// Section is a run of body text under one heading. The leading section of a
// page (before any heading) has an empty Heading and ID.
type Section struct {
	Heading    string
	ID         string
	Level      int
	Paragraphs []string
}
