package model

import "time"

// Comment is a repository-level issue or pull request comment, reduced to the
// fields the engagement probe needs.
type Comment struct {
	ID        int64
	Author    string
	CreatedAt time.Time
}
