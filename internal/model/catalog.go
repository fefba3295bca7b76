package model

import (
	"bytes"
	"encoding/json"
)

// Stock is one selectable ticker.
type Stock struct {
	Ticker string `json:"ticker" yaml:"ticker"`
	Name   string `json:"name" yaml:"name"`
}

// Category groups stocks under a display heading.
type Category struct {
	Name   string  `yaml:"name"`
	Stocks []Stock `yaml:"stocks"`
}

// Catalog is an ordered list of categories. It marshals to a JSON object
// keyed by category name, preserving category order.
type Catalog []Category

func (c Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		stocks := cat.Stocks
		if stocks == nil {
			stocks = []Stock{}
		}
		val, err := json.Marshal(stocks)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Lookup returns the stock with the given ticker.
func (c Catalog) Lookup(ticker string) (Stock, bool) {
	for _, cat := range c {
		for _, s := range cat.Stocks {
			if s.Ticker == ticker {
				return s, true
			}
		}
	}
	return Stock{}, false
}
