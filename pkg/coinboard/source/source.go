package source

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

// ErrFetch wraps every failure to obtain market records: transport, status
// and decode errors alike.
var ErrFetch = errors.New("fetch market data")

// Source loads one page of raw market records.
type Source interface {
	Load(ctx context.Context) ([]types.MarketRecord, error)
}

// decodeListing decodes a markets array one element at a time. An element that
// does not fit MarketRecord is kept with Err set, so normalization drops it
// without losing the rest of the listing.
func decodeListing(data []byte) ([]types.MarketRecord, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, err
	}
	records := make([]types.MarketRecord, 0, len(elems))
	for _, e := range elems {
		var m types.MarketRecord
		if err := json.Unmarshal(e, &m); err != nil {
			m = types.MarketRecord{ID: peekID(e), Err: err}
		}
		records = append(records, m)
	}
	return records, nil
}

func peekID(e json.RawMessage) string {
	var v struct {
		ID any `json:"id"`
	}
	if err := json.Unmarshal(e, &v); err != nil {
		return ""
	}
	if id, ok := v.ID.(string); ok {
		return id
	}
	return ""
}
