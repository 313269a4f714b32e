package mock

import "github.com/fwojciec/xbrlfacts"

var (
	_ xbrlfacts.FactLocator = (*FactLocator)(nil)
	_ xbrlfacts.FactDecoder = (*FactDecoder)(nil)
)

// FactLocator is a mock implementation of xbrlfacts.FactLocator.
type FactLocator struct {
	LocateFn func(content []byte) (*xbrlfacts.Location, error)
}

func (l *FactLocator) Locate(content []byte) (*xbrlfacts.Location, error) {
	return l.LocateFn(content)
}

// FactDecoder is a mock implementation of xbrlfacts.FactDecoder.
type FactDecoder struct {
	DecodeFn func(el xbrlfacts.TaggedElement) (*xbrlfacts.Fact, error)
}

func (d *FactDecoder) Decode(el xbrlfacts.TaggedElement) (*xbrlfacts.Fact, error) {
	return d.DecodeFn(el)
}
