package models

import "time"

// Person is a household member who owns transactions.
type Person struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null;index" json:"name"`
	Age       int       `gorm:"not null" json:"age"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// IsMinor reports whether the person is younger than adultAge.
func (p *Person) IsMinor(adultAge int) bool {
	return p.Age < adultAge
}
