package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray is a custom type for storing string arrays as JSON in the database.
type StringArray []string

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded string representation of the slice.
//   - error: non-nil if marshaling fails.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringArray")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, a)
}

// LinkMap stores social links keyed by source kind as JSON in the database.
// At most one locator per kind.
type LinkMap map[SourceKind]string

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded string representation of the map.
//   - error: non-nil if marshaling fails.
func (m LinkMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (m *LinkMap) Scan(value interface{}) error {
	if value == nil {
		*m = LinkMap{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan LinkMap")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, m)
}

// PortfolioItem is one piece of work attached to a profile. Items keep the
// ordering of the source they came from and are deduplicated by MediaURL.
type PortfolioItem struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	MediaType   string     `json:"media_type"`
	MediaURL    string     `json:"media_url"`
	Tags        []string   `json:"tags"`
	SourceKind  SourceKind `json:"source_kind"`
}

// PortfolioList stores portfolio items as a JSON column.
type PortfolioList []PortfolioItem

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded string representation of the list.
//   - error: non-nil if marshaling fails.
func (l PortfolioList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (l *PortfolioList) Scan(value interface{}) error {
	if value == nil {
		*l = PortfolioList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan PortfolioList")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, l)
}

// Profile is the canonical merged record for one subject.
// Invariants: skills are case-insensitively unique with first-seen casing,
// social links hold at most one locator per source kind, portfolio items
// are unique by media URL.
type Profile struct {
	ID         string        `gorm:"type:text;primaryKey" json:"id"`
	Name       string        `gorm:"type:text" json:"name"`
	Profession string        `gorm:"type:text" json:"profession"`
	Email      string        `gorm:"type:text" json:"email,omitempty"`
	Phone      string        `gorm:"type:text" json:"phone,omitempty"`
	Location   string        `gorm:"type:text" json:"location,omitempty"`
	Bio        string        `gorm:"type:text" json:"bio"`
	Skills     StringArray   `gorm:"type:text" json:"skills"`
	Links      LinkMap       `gorm:"type:text" json:"social_links"`
	Portfolio  PortfolioList `gorm:"type:text" json:"portfolio_items"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// TableName returns the database table name for Profile.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Profile) TableName() string {
	return "profiles"
}

// ProfileSummary is the listing projection of a profile.
type ProfileSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Profession string    `json:"profession"`
	UpdatedAt  time.Time `json:"updated_at"`
}
