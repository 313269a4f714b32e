package xbrlfacts

// TaggedElement is a parsed view of one element that may carry a numeric
// fact. A nil attribute pointer means the attribute was absent; a pointer to
// an empty string means it was present but empty.
type TaggedElement struct {
	// Tag is the element's tag name as parsed, e.g. "ix:nonfraction".
	Tag string

	Name       string
	ContextRef *string
	Format     *string
	Decimals   *string
	Scale      *string
	UnitRef    *string
	Sign       *string

	// Nil is true when the element's nil indicator equals "true".
	Nil bool

	// Text is the raw inner text.
	Text string
}

// Stage identifies one step of the element search cascade.
type Stage string

// Stage constants, in the order a FactLocator tries them.
const (
	StageKnownTag  Stage = "known-tag"
	StageAttribute Stage = "attribute"
	StageRecursive Stage = "recursive"

	// StageInstance is the single stage used for XBRL instance documents.
	StageInstance Stage = "instance"
)

// StageReport records how many elements one executed stage matched.
type StageReport struct {
	Stage   Stage
	Matches int
}

// Location is the outcome of searching one document for tagged elements.
type Location struct {
	// Elements are the located elements in document order.
	Elements []TaggedElement

	// Stages lists every stage that ran, in execution order.
	// A stage absent from this list was never invoked.
	Stages []StageReport
}

// Ran returns true if the stage was executed.
func (l *Location) Ran(stage Stage) bool {
	for _, s := range l.Stages {
		if s.Stage == stage {
			return true
		}
	}
	return false
}

// FactLocator finds the elements representing numeric facts in a document.
type FactLocator interface {
	// Locate searches the document content. Finding no elements is not an
	// error; an error is returned only when the document cannot be read.
	Locate(content []byte) (*Location, error)
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}
