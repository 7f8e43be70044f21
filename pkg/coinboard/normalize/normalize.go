package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

// ErrIncomplete is matched by every *IncompleteError.
var ErrIncomplete = errors.New("incomplete market record")

// IncompleteError reports the required fields a MarketRecord is missing.
type IncompleteError struct {
	ID      string
	Missing []string
}

func (e *IncompleteError) Error() string {
	id := e.ID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("%s %s: missing %s", ErrIncomplete, id, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Is(target error) bool { return target == ErrIncomplete }

// ErrMalformed is matched by every *MalformedError.
var ErrMalformed = errors.New("malformed market record")

// MalformedError reports a listing entry that could not be decoded.
type MalformedError struct {
	ID  string
	Err error
}

func (e *MalformedError) Error() string {
	id := e.ID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("%s %s: %v", ErrMalformed, id, e.Err)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

func (e *MalformedError) Unwrap() error { return e.Err }

// Normalize validates m and copies the display fields verbatim.
// The 1h and 7d change windows may be absent; everything else is required.
func Normalize(m types.MarketRecord) (types.Record, error) {
	if m.Err != nil {
		return types.Record{}, &MalformedError{ID: m.ID, Err: m.Err}
	}
	var missing []string
	if strings.TrimSpace(m.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(m.Symbol) == "" {
		missing = append(missing, "symbol")
	}
	if !m.CurrentPrice.Valid {
		missing = append(missing, "current_price")
	}
	if !m.Low24h.Valid {
		missing = append(missing, "low_24h")
	}
	if !m.High24h.Valid {
		missing = append(missing, "high_24h")
	}
	if !m.PriceChangePercentage24h.Valid {
		missing = append(missing, "price_change_percentage_24h")
	}
	if len(missing) > 0 {
		return types.Record{}, &IncompleteError{ID: m.ID, Missing: missing}
	}

	return types.Record{
		ID:            m.ID,
		Name:          m.Name,
		Symbol:        m.Symbol,
		Image:         m.Image,
		MarketCapRank: m.MarketCapRank,
		CurrentPrice:  m.CurrentPrice.Decimal,
		Low24h:        m.Low24h.Decimal,
		High24h:       m.High24h.Decimal,
		Change1h:      m.PriceChangePercentage1h,
		Change24h:     m.PriceChangePercentage24h.Decimal,
		Change7d:      m.PriceChangePercentage7d,
	}, nil
}

// All normalizes raw in order. Malformed and incomplete records are logged
// and skipped; a bad record never stops the rest of the list.
func All(raw []types.MarketRecord, logger logrus.FieldLogger) []types.Record {
	out := make([]types.Record, 0, len(raw))
	for _, m := range raw {
		r, err := Normalize(m)
		if err != nil {
			if logger != nil {
				warn(logger, m.ID, err)
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

func warn(logger logrus.FieldLogger, id string, err error) {
	entry := logger.WithField("id", id)
	var ie *IncompleteError
	if errors.As(err, &ie) {
		entry.WithField("missing", strings.Join(ie.Missing, ",")).Warn(ErrIncomplete.Error())
		return
	}
	var me *MalformedError
	if errors.As(err, &me) {
		entry = entry.WithError(me.Err)
	}
	entry.Warn(ErrMalformed.Error())
}
