package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile("^(.+)@(.+)$")

type UserModel struct {
	UserId    string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (m *UserModel) Id() string {
	if m.UserId == "" {
		m.UserId = uuid.New().String()
	}

	return m.UserId
}

func (m *UserModel) Validate() error {
	if m.Name == "" {
		return &ValidationError{Reason: "name is required"}
	}
	if !emailPattern.MatchString(m.Email) {
		return &ValidationError{Reason: "a valid email is required"}
	}
	if m.Password == "" {
		return &ValidationError{Reason: "password is required"}
	}
	return nil
}
