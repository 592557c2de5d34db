package template

import (
	"time"
)

// Template is a reusable report text block.
type Template struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Content   string    `db:"content" json:"content"`
	Deleted   bool      `db:"deleted" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type Payload struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (p Payload) values() map[string]interface{} {
	return map[string]interface{}{
		"name":    p.Name,
		"content": p.Content,
	}
}
