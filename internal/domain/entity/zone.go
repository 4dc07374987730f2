package entity

import "time"

// Zone representa un centro o zona de cultivo donde se cosecha la biomasa.
type Zone struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
}
