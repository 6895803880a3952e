package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/foodflow/internal/common"
	"github.com/dmitrijs2005/foodflow/internal/cryptox"
	"github.com/dmitrijs2005/foodflow/internal/models"
)

// Role selects the account type at signup.
type Role string

const (
	RoleUser     Role = "user"
	RoleBusiness Role = "business"
)

// SecurityQuestions are the fixed recovery prompts offered at signup.
var SecurityQuestions = []string{
	"What is your favourite food?",
	"What city were you born in?",
	"What is your pet's name?",
	"What is your favourite colour?",
}

var (
	reDigit = regexp.MustCompile(`\d`)
	reUpper = regexp.MustCompile(`[A-Z]`)
)

func validatePassword(p string) error {
	if len(p) < 8 || !reDigit.MatchString(p) || !reUpper.MatchString(p) {
		return common.ErrWeakPassword
	}
	return nil
}

// ActiveUser returns the logged-in user, or nil.
func (s *Store) ActiveUser() *models.User { return s.activeUser }

// ActiveBusiness returns the logged-in business, or nil.
func (s *Store) ActiveBusiness() *models.Business { return s.activeBusiness }

func (s *Store) setActiveUser(u *models.User) {
	// at most one active account: user XOR business
	s.activeUser = u
	s.activeBusiness = nil
}

func (s *Store) setActiveBusiness(b *models.Business) {
	s.activeBusiness = b
	s.activeUser = nil
}

// Signup creates a new account and logs it in. Usernames are
// case-sensitive and must be unique across users and businesses
// combined. Passwords must be at least 8 characters with a digit and a
// capital letter. The security question is optional; recovery is simply
// unavailable without one.
func (s *Store) Signup(ctx context.Context, role Role, username, password, name, secQ, secA string) error {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" || password == "" || name == "" {
		return fmt.Errorf("%w: username, password and display name are required", common.ErrValidation)
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	if s.usernameTaken(username) {
		return common.ErrUsernameTaken
	}

	switch role {
	case RoleUser:
		u := models.NewUser(username, password, name, secQ, strings.TrimSpace(secA))
		s.users = append(s.users, u)
		s.setActiveUser(u)
	case RoleBusiness:
		b := models.NewBusiness(username, password, name, secQ, strings.TrimSpace(secA))
		s.businesses = append(s.businesses, b)
		s.setActiveBusiness(b)
	default:
		return fmt.Errorf("%w: unknown role %q", common.ErrValidation, role)
	}

	return s.Save(ctx)
}

// Login verifies credentials against users first, then businesses, and
// starts a session for whichever matched. For a business the pending
// sale notifications are returned and cleared from the record. A wrong
// username and a wrong password are indistinguishable to the caller.
func (s *Store) Login(ctx context.Context, username, password string) ([]string, error) {
	if u := s.findUser(username); u != nil && cryptox.VerifyPassword(u.Password, password) {
		s.setActiveUser(u)
		return nil, s.Save(ctx)
	}

	if b := s.findBusiness(username); b != nil && cryptox.VerifyPassword(b.Password, password) {
		notifications := b.Notifications
		b.Notifications = []string{}
		s.setActiveBusiness(b)
		if err := s.Save(ctx); err != nil {
			// undelivered notifications are kept for the next login
			b.Notifications = notifications
			return nil, err
		}
		return notifications, nil
	}

	return nil, common.ErrorUnauthorized
}

// Logout ends the active session.
func (s *Store) Logout(ctx context.Context) error {
	s.activeUser = nil
	s.activeBusiness = nil
	return s.Save(ctx)
}

// SecurityQuestion returns the recovery question registered for the
// given username.
func (s *Store) SecurityQuestion(username string) (string, error) {
	q, _, err := s.recoveryFields(username)
	return q, err
}

func (s *Store) recoveryFields(username string) (question, answer string, err error) {
	if u := s.findUser(username); u != nil {
		question, answer = u.SecQuestion, u.SecAnswer
	} else if b := s.findBusiness(username); b != nil {
		question, answer = b.SecQuestion, b.SecAnswer
	} else {
		return "", "", common.ErrorNotFound
	}
	if question == "" {
		return "", "", common.ErrNoSecurityQuestion
	}
	return question, answer, nil
}

// ResetPassword sets a new password for the account if the recovery
// answer matches (case-insensitively). The new password must meet the
// same policy as at signup.
func (s *Store) ResetPassword(ctx context.Context, username, answer, newPassword string) error {
	_, stored, err := s.recoveryFields(username)
	if err != nil {
		return err
	}
	if !models.CheckSecurityAnswer(stored, answer) {
		return common.ErrWrongAnswer
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	cred := cryptox.HashPassword(newPassword, nil, 0)
	if u := s.findUser(username); u != nil {
		u.Password = cred
	} else if b := s.findBusiness(username); b != nil {
		b.Password = cred
	}
	return s.Save(ctx)
}
