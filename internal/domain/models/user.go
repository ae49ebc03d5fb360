package models

import (
	"errors"
	"strings"
	"time"
)

type Role string

const (
	RoleApplicant Role = "applicant"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// ToRole normalizes case: the identity directory historically stored
// both 'ADMIN' and 'admin'.
func ToRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case string(RoleApplicant):
		return RoleApplicant, nil
	case string(RoleEmployer):
		return RoleEmployer, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", errors.New("invalid role")
	}
}

func (r Role) Is(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// User is a read-only projection of the identity directory.
type User struct {
	ID              int64
	Email           string
	FullName        string
	Role            Role
	IsVerified      bool
	EducationLevel  string
	ExperienceYears int
	CreatedAt       time.Time
}

func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
