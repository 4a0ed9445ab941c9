package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// MeID is the sentinel identifier of the signed-in user.
const MeID = "me"

var ErrInvalidID = errors.New("id must be a JSON number or string")

// ID is a backend primary key. The backend sends integers, but the user
// resource also accepts the "me" sentinel, so IDs are kept as strings.
type ID string

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return id == "" }

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return ErrInvalidID
	}
	*id = ID(n.String())
	return nil
}

// Keyed is implemented by every record stored in a collection cache.
type Keyed interface {
	Key() ID
}

// Owned is implemented by records that can belong to the signed-in user.
type Owned interface {
	Mine() bool
}
