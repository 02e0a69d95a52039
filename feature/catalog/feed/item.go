package feed

import (
	"bytes"
	"encoding/json"
	"strings"

	"catalog-sync/core/utils"

	"github.com/shopspring/decimal"
)

// RemoteItem is one product record of the feed.
type RemoteItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       Price  `json:"price"`
	SKU         string `json:"sku"`
	Collection  string `json:"Collection"`
	ParentFacet string `json:"parentfacet"`
	ChildFacet  string `json:"childfacet"`
	Unit        string `json:"unit"`
	Measurement string `json:"measurement"`
	Brand       string `json:"brand,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
// Some feeds send id and sku as numbers; both are kept as their literal text.
func (it *RemoteItem) UnmarshalJSON(b []byte) error {
	type plain RemoteItem
	aux := struct {
		*plain
		ID  any `json:"id"`
		SKU any `json:"sku"`
	}{plain: (*plain)(it)}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&aux); err != nil {
		return err
	}
	it.ID = utils.ToString(aux.ID)
	it.SKU = utils.ToString(aux.SKU)
	return nil
}

// Price is a decimal price given either as a JSON string or number.
// A missing or malformed value leaves Valid false instead of failing the whole feed.
type Price struct {
	Value decimal.Decimal
	Raw   string
	Valid bool
}

// NewPrice parses s into a Price.
func NewPrice(s string) Price {
	p := Price{Raw: s}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err == nil {
		p.Value, p.Valid = d, true
	}
	return p
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if raw == "null" {
		*p = Price{}
		return nil
	}
	*p = NewPrice(strings.Trim(raw, `"`))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte(`"` + p.Raw + `"`), nil
	}
	return []byte(`"` + p.Value.String() + `"`), nil
}

// Document is the envelope returned by the feed.
type Document struct {
	Items []RemoteItem `json:"Items"`
}
