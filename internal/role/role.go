// Package role models the console roles and the capabilities each one holds.
package role

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

type Role int

const (
	Admin  Role = 1
	CSR    Role = 2
	Vendor Role = 3
)

var (
	ErrUnknownRole  = errors.New("unknown role")
	ErrNotPermitted = errors.New("not permitted for this role")
)

var roleLabels = map[Role]string{
	Admin:  "Admin",
	CSR:    "CSR",
	Vendor: "Vendor",
}

// ParseRole accepts the wire form used by the remote API ("1", "2", "3").
func ParseRole(s string) (Role, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	r := Role(n)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

func (r Role) String() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return "Unknown"
}

// Code is the wire form of the role.
func (r Role) Code() string {
	return strconv.Itoa(int(r))
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Code())
}

// UnmarshalJSON accepts both "1" and 1.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownRole, data)
		}
		s = strconv.Itoa(n)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
