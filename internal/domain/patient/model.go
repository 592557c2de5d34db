package patient

import (
	"time"
)

type Patient struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Age       *int      `db:"age" json:"age,omitempty"`
	Gender    string    `db:"gender" json:"gender"`
	Deleted   bool      `db:"deleted" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Payload is the request body for create and update. Updates are full
// replaces: absent optional fields clear the stored value.
type Payload struct {
	Name   string  `json:"name"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
	Age    *int    `json:"age"`
	Gender string  `json:"gender"`
}

func (p Payload) values() map[string]interface{} {
	return map[string]interface{}{
		"name":   p.Name,
		"phone":  p.Phone,
		"email":  p.Email,
		"age":    p.Age,
		"gender": p.Gender,
	}
}
