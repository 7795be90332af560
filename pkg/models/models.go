package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

type Role string

const (
	// RoleAdmin is the global administrator: sees every tenant, mutates nothing.
	RoleAdmin Role = "admin"
	// RoleMaster is the tenant administrator.
	RoleMaster Role = "master"
	// RoleUser is the site-scoped operator; legacy site_manager and auditor
	// profiles both migrate onto this role (auditor keeps ReadOnly + expiry).
	RoleUser Role = "user"
)

type EnvironmentType string

const (
	EnvironmentTypeColdStorage EnvironmentType = "cold_storage"
	EnvironmentTypeFreezer     EnvironmentType = "freezer"
	EnvironmentTypeChiller     EnvironmentType = "chiller"
	EnvironmentTypeGeneric     EnvironmentType = "generic"
)

type SensorStatus string

const (
	SensorStatusActive      SensorStatus = "active"
	SensorStatusInactive    SensorStatus = "inactive"
	SensorStatusMaintenance SensorStatus = "maintenance"
)

type ThresholdLevel string

const (
	ThresholdLevelOrg         ThresholdLevel = "org"
	ThresholdLevelSite        ThresholdLevel = "site"
	ThresholdLevelEnvironment ThresholdLevel = "environment"
	ThresholdLevelSensor      ThresholdLevel = "sensor"
)

type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

type AlertStatus string

const (
	AlertStatusOpen         AlertStatus = "open"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
)

// StringList is a JSON-encoded list of ids stored in a single text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

type Tenant struct {
	ID       string `gorm:"primaryKey"`
	Name     string
	Plan     string
	Status   TenantStatus `gorm:"type:varchar(20);check:status IN ('active','suspended')"`
	MaxUsers int

	Sites []Site `gorm:"foreignKey:TenantID;references:ID"`
}

type Profile struct {
	ID       string `gorm:"primaryKey"`
	Email    string `gorm:"index"`
	Role     Role   `gorm:"type:varchar(20);check:role IN ('admin','master','user')"`
	TenantID string `gorm:"index"` // empty only for admin

	// GrantedSites narrows a user's reach; irrelevant for admin and master.
	GrantedSites StringList `gorm:"type:text"`
	// ReadOnly marks view-only profiles (legacy auditor).
	ReadOnly bool
	// AccessExpiresAt, when set and past, invalidates the profile entirely.
	AccessExpiresAt *time.Time
}

type Site struct {
	ID       string `gorm:"primaryKey"`
	TenantID string `gorm:"index"`
	Name     string
	Location string

	Environments []Environment `gorm:"foreignKey:SiteID;references:ID"`
}

type Environment struct {
	ID       string `gorm:"primaryKey"`
	SiteID   string `gorm:"index"`
	TenantID string `gorm:"index"`
	Name     string
	Type     EnvironmentType `gorm:"type:varchar(20);check:type IN ('cold_storage','freezer','chiller','generic')"`

	Sensors []Sensor `gorm:"foreignKey:EnvironmentID;references:ID"`
}

type Sensor struct {
	ID            string `gorm:"primaryKey"`
	EnvironmentID string `gorm:"index"`
	SiteID        string `gorm:"index"`
	TenantID      string `gorm:"index"`
	LocalID       string
	Property      string
	Status        SensorStatus `gorm:"type:varchar(20);check:status IN ('active','inactive','maintenance')"`
}

// Reading is append-only; nothing in the core updates or deletes rows.
type Reading struct {
	ID        uint   `gorm:"primaryKey"`
	SensorID  string `gorm:"index"`
	Timestamp time.Time
	Value     float64
	Humidity  *float64
}

type Threshold struct {
	ID       string         `gorm:"primaryKey"`
	TenantID string         `gorm:"index;uniqueIndex:idx_threshold_scope"`
	Level    ThresholdLevel `gorm:"type:varchar(20);check:level IN ('org','site','environment','sensor');uniqueIndex:idx_threshold_scope"`
	LevelRef string         `gorm:"uniqueIndex:idx_threshold_scope"`
	MinValue float64
	MaxValue float64
}

type Alert struct {
	ID            string `gorm:"primaryKey"`
	TenantID      string `gorm:"index"`
	SiteID        string `gorm:"index"`
	EnvironmentID string
	SensorID      string        `gorm:"index"`
	Severity      AlertSeverity `gorm:"type:varchar(20);check:severity IN ('info','warning','critical')"`
	Status        AlertStatus   `gorm:"type:varchar(20);check:status IN ('open','acknowledged','resolved')"`
	Message       string

	OpenedAt        time.Time
	AcknowledgedAt  *time.Time
	AcknowledgedBy  string
	ResolvedAt      *time.Time
	ResolvedBy      string
	ResolutionNotes string
}

// DeviceCredential binds a field device to its tenant and HMAC secret.
type DeviceCredential struct {
	DeviceID string `gorm:"primaryKey"`
	TenantID string `gorm:"index"`
	Secret   string
}
