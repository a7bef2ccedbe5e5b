package db

import (
	"time"
)

// Resolver maps a (provider, hostname) pair to an IPv4 address. Rows are
// never physically removed; delete flips IsDeleted and the pair becomes
// reusable by a new row.
type Resolver struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Provider  string    `gorm:"size:255;index:idx_resolver_pair,priority:1" json:"provider"`
	Hostname  string    `gorm:"size:255;index:idx_resolver_pair,priority:2" json:"hostname"`
	Alias     string    `gorm:"size:255" json:"alias"`
	IPv4      string    `gorm:"column:ipv4;size:15" json:"ipv4"`
	IsDeleted bool      `gorm:"index" json:"isDeleted"`
	CreatedAt time.Time `json:"ctime"`
	UpdatedAt time.Time `json:"mtime"`
}
