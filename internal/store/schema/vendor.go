package schema

import (
	"time"
)

// Zone represents the zones table - a contested territory vendors compete over
type Zone struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the human-readable zone name
	Name string `gorm:"column:name;not null;type:varchar(128)"`
	// CreatedAt is the timestamp when this zone was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Zone model
func (Zone) TableName() string {
	return "zones"
}

// Vendor represents the vendors table - a votable vendor competing in a zone
type Vendor struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the vendor's display name
	Name string `gorm:"column:name;not null;type:varchar(128)"`
	// ZoneID is the zone this vendor competes in
	ZoneID int64 `gorm:"column:zone_id;not null;index:idx_vendors_zone"`
	// Active indicates whether the vendor currently accepts votes
	Active bool `gorm:"column:active;not null;default:true"`
	// CreatedAt is the timestamp when this vendor was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this vendor was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Zone Zone `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
