package models

// Setting value types.
const (
	SettingTypeString  = "string"
	SettingTypeNumber  = "number"
	SettingTypeBoolean = "boolean"
	SettingTypeJSON    = "json"
)

// Setting represents a per-organization configuration setting.
// Keys are unique within an organization; the type field tells consumers
// how to interpret the stored value.
type Setting struct {
	// ID is the unique identifier for the setting.
	ID uint `gorm:"primaryKey"`
	// OrganizationID scopes the setting to a tenant.
	OrganizationID uint `gorm:"not null;index"`
	// Organization is the associated organization (loaded via foreign key).
	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	// Key is the setting key, unique within the organization.
	Key string `gorm:"column:setting_key;size:100;not null"`
	// Value is the raw setting value.
	Value string `gorm:"column:setting_value;type:text"`
	// Type is one of string, number, boolean or json.
	Type string `gorm:"column:setting_type;size:50;default:'string'"`
	// Category groups settings (general, email, payment, ...).
	Category    string `gorm:"size:50"`
	Description string `gorm:"type:text"`

	Audit `gorm:"embedded"`
}

// TableName specifies the database table name for the Setting model.
func (Setting) TableName() string {
	return "settings"
}
