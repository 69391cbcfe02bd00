package models

// User is a directory record as returned by the name lookup.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	From     string `json:"from"`
	Age      int    `json:"age"`
}

// UserWithKey is a directory record together with the key from its
// settings blob. The age query returns these.
type UserWithKey struct {
	User
	Key string `json:"key"`
}

// Settings is the decoded settings column.
type Settings struct {
	Key string `json:"key"`
}

// NewUser is one record of a bulk insert.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	LastName string `json:"lastName"`
	Age      int    `json:"age" validate:"gte=0"`
}
