// Package etree implements xbrlfacts.FactLocator for XBRL instance documents.
package etree

import (
	"github.com/beevik/etree"
	"github.com/fwojciec/xbrlfacts"
	"golang.org/x/net/html/charset"
)

var _ xbrlfacts.FactLocator = (*Locator)(nil)

// Locator finds numeric items in XBRL instance documents: elements carrying
// both a contextRef and a unitRef attribute.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate parses the instance document and returns its numeric items in
// document order. Instance values are already scaled, so Scale, Sign and
// Format are always absent.
func (l *Locator) Locate(content []byte) (*xbrlfacts.Location, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, xbrlfacts.Errorf(xbrlfacts.EINVALID, "failed to parse instance document: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, xbrlfacts.Errorf(xbrlfacts.EINVALID, "empty instance document")
	}

	elements := []xbrlfacts.TaggedElement{}
	for _, el := range root.FindElements("//*") {
		contextRef := el.SelectAttr("contextRef")
		unitRef := el.SelectAttr("unitRef")
		if contextRef == nil || unitRef == nil {
			continue
		}
		elements = append(elements, xbrlfacts.TaggedElement{
			Tag:        el.FullTag(),
			Name:       el.FullTag(),
			ContextRef: xbrlfacts.Ptr(contextRef.Value),
			Decimals:   attr(el, "decimals"),
			UnitRef:    xbrlfacts.Ptr(unitRef.Value),
			Nil:        el.SelectAttrValue("xsi:nil", "") == "true",
			Text:       el.Text(),
		})
	}

	return &xbrlfacts.Location{
		Elements: elements,
		Stages:   []xbrlfacts.StageReport{{Stage: xbrlfacts.StageInstance, Matches: len(elements)}},
	}, nil
}

func attr(el *etree.Element, key string) *string {
	a := el.SelectAttr(key)
	if a == nil {
		return nil
	}
	return xbrlfacts.Ptr(a.Value)
}
