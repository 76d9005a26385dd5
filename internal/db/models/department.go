package models

// Department represents a department within a branch.
type Department struct {
	// ID is the unique identifier for the department.
	ID uint `gorm:"primaryKey"`
	// BranchID is the owning branch.
	BranchID uint `gorm:"not null"`
	// Branch is the associated branch (loaded via foreign key).
	Branch Branch `gorm:"foreignKey:BranchID;constraint:OnDelete:CASCADE"`
	// Name is the display name of the department.
	Name string `gorm:"size:200;not null"`
	// Code is the department short code.
	Code        string `gorm:"size:50;not null"`
	Description string `gorm:"type:text"`

	Audit `gorm:"embedded"`
}

// TableName specifies the database table name for the Department model.
func (Department) TableName() string {
	return "departments"
}
