package monitor

import "time"

type Status struct {
	MongoDB     bool      `json:"mongodb"`
	Subscribers int       `json:"subscribers"`
	LastCheck   time.Time `json:"last_check"`
}
