package xbrlfacts

import "errors"

// DefaultScale is the scale applied when an element has none.
const DefaultScale = "0"

// Fact is a decoded numeric fact.
type Fact struct {
	AccountItem string  `json:"accountItem"`
	ContextRef  *string `json:"contextRef"`
	Format      *string `json:"format"`
	Decimals    *string `json:"decimals"`
	Scale       string  `json:"scale"`
	UnitRef     *string `json:"unitRef"`

	// Amount is nil when the element is nil or has no text.
	Amount *int64 `json:"amount"`
}

// FactDecoder converts a located element into a Fact.
type FactDecoder interface {
	// Decode returns an *ElementDecodeError if the element's text is not a
	// valid number.
	Decode(el TaggedElement) (*Fact, error)
}

// DecodeAll decodes elements in order. Elements that fail to decode are
// skipped and their errors returned alongside the decoded facts.
func DecodeAll(d FactDecoder, elements []TaggedElement) ([]Fact, []*ElementDecodeError) {
	facts := make([]Fact, 0, len(elements))
	var skipped []*ElementDecodeError

	for _, el := range elements {
		fact, err := d.Decode(el)
		if err != nil {
			skipped = append(skipped, asDecodeError(el, err))
			continue
		}
		facts = append(facts, *fact)
	}

	return facts, skipped
}

func asDecodeError(el TaggedElement, err error) *ElementDecodeError {
	var de *ElementDecodeError
	if errors.As(err, &de) {
		return de
	}
	de = &ElementDecodeError{AccountItem: el.Name, Text: el.Text, Err: err}
	if el.ContextRef != nil {
		de.ContextRef = *el.ContextRef
	}
	return de
}
