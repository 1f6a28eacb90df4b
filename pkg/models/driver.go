package models

// DefaultPIN applies to drivers that have no PIN stored.
const DefaultPIN = "1234"

type Driver struct {
	ID         string  `json:"id"`
	License    string  `json:"license"`
	Name       string  `json:"name"`
	Phone      *string `json:"phone"`
	PIN        *string `json:"-"`
	AuthToken  *string `json:"-"`
	Active     bool    `json:"active"`
	TelegramID *int64  `json:"telegram_id"`
}

// DriverIdentity is what a successful login hands back to the portal.
// ID is the license code drivers log in with; UUID is the internal id.
type DriverIdentity struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	UUID  string  `json:"uuid"`
	Phone *string `json:"phone"`
}

func (d *Driver) Identity() *DriverIdentity {
	return &DriverIdentity{
		ID:    d.License,
		Name:  d.Name,
		UUID:  d.ID,
		Phone: d.Phone,
	}
}

// ExpectedPIN is the stored PIN, or DefaultPIN when none is set.
func (d *Driver) ExpectedPIN() string {
	if d.PIN == nil || *d.PIN == "" {
		return DefaultPIN
	}
	return *d.PIN
}
