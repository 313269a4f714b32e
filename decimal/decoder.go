// Package decimal implements xbrlfacts.FactDecoder using arbitrary-precision
// decimal arithmetic, so scaling never silently overflows.
package decimal

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/fwojciec/xbrlfacts"
	"github.com/shopspring/decimal"
)

// Ensure Decoder implements xbrlfacts.FactDecoder at compile time.
var _ xbrlfacts.FactDecoder = (*Decoder)(nil)

// DefaultSeparators are the thousands separators removed before parsing.
const DefaultSeparators = ","

// MaxScale bounds the absolute value of a scale attribute.
const MaxScale = 30

// Decoder converts tagged elements into facts.
type Decoder struct {
	separators *strings.Replacer
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithSeparators sets the characters treated as thousands separators.
func WithSeparators(chars string) Option {
	return func(d *Decoder) {
		d.separators = newReplacer(chars)
	}
}

// NewDecoder creates a new Decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{separators: newReplacer(DefaultSeparators)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func newReplacer(chars string) *strings.Replacer {
	var pairs []string
	for _, r := range chars {
		pairs = append(pairs, string(r), "")
	}
	return strings.NewReplacer(pairs...)
}

// Decode converts el into a Fact. A nil element or blank text yields a fact
// without an amount. Otherwise the text, stripped of thousands separators,
// is parsed as a base-10 integer, multiplied by 10^scale and negated when
// the sign attribute is "-".
func (d *Decoder) Decode(el xbrlfacts.TaggedElement) (*xbrlfacts.Fact, error) {
	fact := &xbrlfacts.Fact{
		AccountItem: el.Name,
		ContextRef:  el.ContextRef,
		Format:      el.Format,
		Decimals:    el.Decimals,
		Scale:       xbrlfacts.DefaultScale,
		UnitRef:     el.UnitRef,
	}
	if el.Scale != nil && *el.Scale != "" {
		fact.Scale = *el.Scale
	}

	// Nil wins over sign and text.
	if el.Nil {
		return fact, nil
	}

	text := strings.TrimSpace(el.Text)
	if text == "" {
		return fact, nil
	}

	amount, err := d.amount(text, fact.Scale, el.Sign)
	if err != nil {
		de := &xbrlfacts.ElementDecodeError{AccountItem: el.Name, Text: el.Text, Err: err}
		if el.ContextRef != nil {
			de.ContextRef = *el.ContextRef
		}
		return nil, de
	}
	fact.Amount = &amount

	return fact, nil
}

func (d *Decoder) amount(text, scale string, sign *string) (int64, error) {
	exp, err := strconv.Atoi(strings.TrimSpace(scale))
	if err != nil {
		return 0, fmt.Errorf("invalid scale %q", scale)
	}
	if exp > MaxScale || exp < -MaxScale {
		return 0, fmt.Errorf("scale %d out of range", exp)
	}

	digits := d.separators.Replace(text)
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return 0, errors.New("not an integer")
	}

	value := decimal.NewFromBigInt(n, int32(exp))
	if !value.IsInteger() {
		return 0, fmt.Errorf("scaled value %s is not an integer", value.String())
	}
	if sign != nil && *sign == "-" {
		value = value.Neg()
	}

	v := value.BigInt()
	if !v.IsInt64() {
		return 0, fmt.Errorf("value %s overflows int64", v.String())
	}
	return v.Int64(), nil
}
