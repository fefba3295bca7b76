package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"MrPredictor/internal/model"
)

// Default returns the built-in asset catalog.
func Default() model.Catalog {
	return model.Catalog{
		{Name: "🔥 Popular", Stocks: []model.Stock{
			{Ticker: "AAPL", Name: "Apple Inc."},
			{Ticker: "MSFT", Name: "Microsoft"},
			{Ticker: "GOOGL", Name: "Google"},
			{Ticker: "AMZN", Name: "Amazon"},
			{Ticker: "TSLA", Name: "Tesla"},
			{Ticker: "NVDA", Name: "NVIDIA"},
			{Ticker: "META", Name: "Meta Platforms"},
			{Ticker: "NFLX", Name: "Netflix"},
		}},
		{Name: "💰 Crypto", Stocks: []model.Stock{
			{Ticker: "BTC-USD", Name: "Bitcoin"},
			{Ticker: "ETH-USD", Name: "Ethereum"},
			{Ticker: "BNB-USD", Name: "Binance Coin"},
			{Ticker: "XRP-USD", Name: "Ripple"},
			{Ticker: "ADA-USD", Name: "Cardano"},
			{Ticker: "DOGE-USD", Name: "Dogecoin"},
			{Ticker: "SOL-USD", Name: "Solana"},
			{Ticker: "MATIC-USD", Name: "Polygon"},
		}},
		{Name: "🏦 Finance", Stocks: []model.Stock{
			{Ticker: "JPM", Name: "JPMorgan Chase"},
			{Ticker: "BAC", Name: "Bank of America"},
			{Ticker: "WFC", Name: "Wells Fargo"},
			{Ticker: "GS", Name: "Goldman Sachs"},
			{Ticker: "V", Name: "Visa"},
			{Ticker: "MA", Name: "Mastercard"},
			{Ticker: "AXP", Name: "American Express"},
			{Ticker: "C", Name: "Citigroup"},
		}},
		{Name: "💊 Healthcare", Stocks: []model.Stock{
			{Ticker: "JNJ", Name: "Johnson & Johnson"},
			{Ticker: "UNH", Name: "UnitedHealth"},
			{Ticker: "PFE", Name: "Pfizer"},
			{Ticker: "ABBV", Name: "AbbVie"},
			{Ticker: "TMO", Name: "Thermo Fisher"},
			{Ticker: "MRK", Name: "Merck"},
			{Ticker: "LLY", Name: "Eli Lilly"},
			{Ticker: "ABT", Name: "Abbott Labs"},
		}},
		{Name: "⚡ Tech", Stocks: []model.Stock{
			{Ticker: "AMD", Name: "AMD"},
			{Ticker: "INTC", Name: "Intel"},
			{Ticker: "ORCL", Name: "Oracle"},
			{Ticker: "CSCO", Name: "Cisco"},
			{Ticker: "IBM", Name: "IBM"},
			{Ticker: "CRM", Name: "Salesforce"},
			{Ticker: "ADBE", Name: "Adobe"},
			{Ticker: "AVGO", Name: "Broadcom"},
		}},
		{Name: "🛍️ Consumer", Stocks: []model.Stock{
			{Ticker: "WMT", Name: "Walmart"},
			{Ticker: "HD", Name: "Home Depot"},
			{Ticker: "DIS", Name: "Disney"},
			{Ticker: "NKE", Name: "Nike"},
			{Ticker: "MCD", Name: "McDonald's"},
			{Ticker: "SBUX", Name: "Starbucks"},
			{Ticker: "KO", Name: "Coca-Cola"},
			{Ticker: "PEP", Name: "PepsiCo"},
		}},
	}
}

// Load returns the catalog stored in a YAML file, or the default catalog
// when path is empty.
//
// The file holds a list of categories:
//
//	- name: Crypto
//	  stocks:
//	    - {ticker: BTC-USD, name: Bitcoin}
func Load(path string) (model.Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cat model.Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, c := range cat {
		if c.Name == "" {
			return nil, fmt.Errorf("catalog category %d has no name", i)
		}
		for _, s := range c.Stocks {
			if s.Ticker == "" {
				return nil, fmt.Errorf("catalog category %q has an entry without ticker", c.Name)
			}
		}
	}
	return cat, nil
}
