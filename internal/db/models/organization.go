package models

// Organization represents a tenant organization in the system.
// All branches, departments and users belong to exactly one organization.
type Organization struct {
	// ID is the unique identifier for the organization.
	ID uint `gorm:"primaryKey"`
	// Name is the unique display name of the organization.
	Name string `gorm:"unique;size:200;not null"`
	// Code is the unique short code of the organization (e.g. "EVI").
	Code string `gorm:"unique;size:50;not null"`
	// Email is the primary contact address.
	Email string `gorm:"size:100"`
	// Phone is the primary contact number.
	Phone   string `gorm:"size:20"`
	Address string `gorm:"type:text"`
	City    string `gorm:"size:100"`
	State   string `gorm:"size:100"`
	Country string `gorm:"size:100"`
	Pincode string `gorm:"size:10"`
	// LogoURL points to the organization logo in object storage.
	LogoURL string `gorm:"size:500"`
	Website string `gorm:"size:200"`
	// GSTNumber is the tax registration number.
	GSTNumber string `gorm:"size:50"`

	Audit `gorm:"embedded"`
}

// TableName specifies the database table name for the Organization model.
// This overrides GORM's default pluralized table naming.
func (Organization) TableName() string {
	return "organizations"
}
