package domain

import "time"

// User is the full internal account record, including the hashed password.
// It is the shape all repository writes go through.
type User struct {
	ID         int64     `json:"id" bson:"_id,omitempty"`
	Name       string    `json:"name" bson:"name"`
	Email      string    `json:"email" bson:"email"`
	Password   string    `json:"-" bson:"password"`
	ResumePath string    `json:"resume_path" bson:"resume_path"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// UserDTO is the externally-facing projection of a User. It never carries
// the password.
type UserDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ResumePath string `json:"resume_path"`
}

// DTO projects the user into its external shape.
func (u *User) DTO() UserDTO {
	return UserDTO{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		ResumePath: u.ResumePath,
	}
}

// Entity re-wraps the projection into a full record. The password is left
// empty; repository writes preserve a stored hash when the field is empty.
func (d UserDTO) Entity() User {
	return User{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		ResumePath: d.ResumePath,
	}
}

// Admin is a privileged credential holder authenticated separately from
// ordinary users.
type Admin struct {
	ID       int64  `json:"id" bson:"_id,omitempty"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password"`
}
