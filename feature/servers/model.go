package servers

import "time"

// Server is a game server whose modpack install the updater tracks.
// Manifests are referenced by object key, never stored inline.
type Server struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:128;not null;uniqueIndex" json:"name"`
	Modpack          string    `gorm:"size:128" json:"modpack"`
	InstalledVersion string    `gorm:"size:64" json:"installed_version"`
	LiveManifest     string    `gorm:"size:512" json:"live_manifest"`
	TargetManifest   string    `gorm:"size:512" json:"target_manifest"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName pins the table name for externally managed schemas.
func (Server) TableName() string {
	return "servers"
}

// requiredColumns are checked when the schema is not migrated by the updater.
var requiredColumns = []string{"id", "name", "modpack", "installed_version", "live_manifest", "target_manifest"}

// UpdateRequest is the body of PUT /servers/:id.
type UpdateRequest struct {
	Name             string `json:"name"`
	Modpack          string `json:"modpack"`
	InstalledVersion string `json:"installed_version"`
	LiveManifest     string `json:"live_manifest"`
	TargetManifest   string `json:"target_manifest"`
}
