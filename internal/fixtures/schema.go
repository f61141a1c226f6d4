package fixtures

import "time"

// File is the top-level structure of a sandbox fixture file.
type File struct {
	Links []LinkFixture `yaml:"links" validate:"dive"`
}

// LinkFixture seeds one account link.
type LinkFixture struct {
	Token       string    `yaml:"token" validate:"required,uuid"`
	Username    string    `yaml:"username" validate:"required"`
	Email       string    `yaml:"email" validate:"omitempty,email"`
	Domain      string    `yaml:"domain" validate:"required"`
	CreatedAt   time.Time `yaml:"created_at" validate:"required"`
	Permissions []string  `yaml:"permissions"`
}
