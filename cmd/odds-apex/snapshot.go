package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/yourusername/odds-apex/internal/input"
)

// snapshotFile is the content of a --snapshot file: the same text fields a
// user types, plus quotes as a list of {market, price} or a market map
type snapshotFile struct {
	Fields   map[string]string
	Quotes   []input.RawQuote
	LiveOver string
}

func loadSnapshotFile(path string) (*snapshotFile, error) {
	if path == "" {
		return nil, fmt.Errorf("a snapshot file is required")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	sf := &snapshotFile{
		Fields:   v.GetStringMapString("fields"),
		LiveOver: v.GetString("live_over"),
	}

	switch v.Get("quotes").(type) {
	case nil:
	case []interface{}:
		if err := v.UnmarshalKey("quotes", &sf.Quotes); err != nil {
			return nil, fmt.Errorf("failed to parse quotes: %w", err)
		}
	case map[string]interface{}:
		sf.Quotes = input.QuotesFromMap(v.GetStringMapString("quotes"))
	default:
		return nil, fmt.Errorf("quotes must be a list or a map of market to price")
	}

	return sf, nil
}
