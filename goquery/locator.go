package goquery

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xbrlfacts"
	"golang.org/x/net/html/charset"
)

var _ xbrlfacts.FactLocator = (*Locator)(nil)

// Attribute and tag names as produced by the HTML parser, which lowercases
// both.
const (
	// Marker is the substring identifying numeric-fact tags.
	Marker = "nonfraction"

	attrName       = "name"
	attrContextRef = "contextref"
	attrFormat     = "format"
	attrDecimals   = "decimals"
	attrScale      = "scale"
	attrUnitRef    = "unitref"
	attrSign       = "sign"
	attrNil        = "xsi:nil"
)

// xmlDeclaration matches the encoding label of a leading XML declaration.
var xmlDeclaration = regexp.MustCompile(`^\s*<\?xml\s[^>]*?encoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// XMLEncoding returns the encoding label declared by the document's XML
// declaration, or "" if there is none within the first 1024 bytes.
func XMLEncoding(content []byte) string {
	head := bytes.TrimPrefix(content[:min(len(content), 1024)], []byte("\xef\xbb\xbf"))
	m := xmlDeclaration.FindSubmatch(head)
	if m == nil {
		return ""
	}
	return string(m[1])
}

// KnownTags are the numeric-fact tag names searched in the first stage,
// with and without the inline-XBRL namespace prefix.
var KnownTags = []string{"ix:nonfraction", "nonfraction"}

// Strategy is one stage of the element search.
type Strategy struct {
	Stage xbrlfacts.Stage
	Find  func(doc *goquery.Document) *goquery.Selection
}

// DefaultStrategies returns the widening search used by NewLocator:
// known tag names, then named elements that look like facts, then every
// element that looks like a fact.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Stage: xbrlfacts.StageKnownTag, Find: findKnownTags},
		{Stage: xbrlfacts.StageAttribute, Find: findNamedFacts},
		{Stage: xbrlfacts.StageRecursive, Find: findAnyFacts},
	}
}

func findKnownTags(doc *goquery.Document) *goquery.Selection {
	known := make(map[string]bool, len(KnownTags))
	for _, tag := range KnownTags {
		known[tag] = true
	}
	return doc.Find("*").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return known[goquery.NodeName(sel)]
	})
}

func findNamedFacts(doc *goquery.Document) *goquery.Selection {
	return doc.Find("[" + attrName + "]").FilterFunction(looksLikeFact)
}

func findAnyFacts(doc *goquery.Document) *goquery.Selection {
	return doc.Find("*").FilterFunction(looksLikeFact)
}

// looksLikeFact reports whether the tag contains the marker or the element
// carries a context reference.
func looksLikeFact(_ int, sel *goquery.Selection) bool {
	if strings.Contains(goquery.NodeName(sel), Marker) {
		return true
	}
	_, ok := sel.Attr(attrContextRef)
	return ok
}

// Locator finds inline-XBRL numeric facts in HTML and XHTML documents.
type Locator struct {
	strategies []Strategy
}

// Option configures a Locator.
type Option func(*Locator)

// WithStrategies replaces the search stages.
func WithStrategies(strategies ...Strategy) Option {
	return func(l *Locator) {
		l.strategies = strategies
	}
}

// NewLocator creates a new Locator.
func NewLocator(opts ...Option) *Locator {
	l := &Locator{strategies: DefaultStrategies()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate tries each strategy in order and returns the elements of the first
// one that matches anything. The document's character encoding is detected
// from its byte order mark, XML declaration or meta declaration, in that
// order.
func (l *Locator) Locate(content []byte) (*xbrlfacts.Location, error) {
	var contentType string
	if label := XMLEncoding(content); label != "" {
		contentType = "text/html; charset=" + label
	}

	r, err := charset.NewReader(bytes.NewReader(content), contentType)
	if err != nil {
		return nil, xbrlfacts.Errorf(xbrlfacts.EINVALID, "failed to decode document: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, xbrlfacts.Errorf(xbrlfacts.EINVALID, "failed to parse document: %v", err)
	}

	loc := &xbrlfacts.Location{Elements: []xbrlfacts.TaggedElement{}}
	for _, s := range l.strategies {
		sel := s.Find(doc)
		loc.Stages = append(loc.Stages, xbrlfacts.StageReport{Stage: s.Stage, Matches: sel.Length()})
		if sel.Length() == 0 {
			continue
		}

		sel.Each(func(_ int, el *goquery.Selection) {
			loc.Elements = append(loc.Elements, toElement(el))
		})
		break
	}

	return loc, nil
}

func toElement(sel *goquery.Selection) xbrlfacts.TaggedElement {
	name, _ := sel.Attr(attrName)
	nilAttr, _ := sel.Attr(attrNil)
	return xbrlfacts.TaggedElement{
		Tag:        goquery.NodeName(sel),
		Name:       name,
		ContextRef: attr(sel, attrContextRef),
		Format:     attr(sel, attrFormat),
		Decimals:   attr(sel, attrDecimals),
		Scale:      attr(sel, attrScale),
		UnitRef:    attr(sel, attrUnitRef),
		Sign:       attr(sel, attrSign),
		Nil:        nilAttr == "true",
		Text:       sel.Text(),
	}
}

func attr(sel *goquery.Selection, name string) *string {
	v, ok := sel.Attr(name)
	if !ok {
		return nil
	}
	return &v
}
