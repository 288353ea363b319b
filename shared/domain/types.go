package domain

import (
	"strings"
	"time"
)

type (
	BoardId    = string
	BoardTitle = string

	CardId    = string
	CardTitle = string
	Color     = string

	ItemId    = string
	ItemTitle = string
)

// TimestampLayout renders the stored wall clock with a literal Z, no zone conversion.
const TimestampLayout = "2006-01-02T15:04:05Z"

type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(TimestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
