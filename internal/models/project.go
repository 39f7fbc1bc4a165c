package models

import "time"

// Project is owned by exactly one user. DeletedAt is managed explicitly
// rather than through gorm.DeletedAt: a cascading soft delete stamps the
// project and its tasks with one shared timestamp, and restore matches
// tasks against that exact marker.
type Project struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	OwnerID     uint64     `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `gorm:"index" json:"-"`

	// Relations
	Owner User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

// Deleted reports whether the project is soft-deleted.
func (p *Project) Deleted() bool {
	return p.DeletedAt != nil
}
