package models

// Branch represents a physical or logical branch of an organization.
type Branch struct {
	// ID is the unique identifier for the branch.
	ID uint `gorm:"primaryKey"`
	// OrganizationID is the owning organization.
	OrganizationID uint `gorm:"not null"`
	// Organization is the associated organization (loaded via foreign key).
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	// Name is the display name of the branch.
	Name string `gorm:"size:200;not null"`
	// Code is the branch short code, unique within an organization by convention.
	Code    string `gorm:"size:50;not null"`
	Email   string `gorm:"size:100"`
	Phone   string `gorm:"size:20"`
	Address string `gorm:"type:text"`
	City    string `gorm:"size:100"`
	State   string `gorm:"size:100"`
	Country string `gorm:"size:100"`
	Pincode string `gorm:"size:10"`
	// IsHeadOffice marks the head office branch of an organization.
	IsHeadOffice bool `gorm:"default:false"`

	Audit `gorm:"embedded"`
}

// TableName specifies the database table name for the Branch model.
func (Branch) TableName() string {
	return "branches"
}
