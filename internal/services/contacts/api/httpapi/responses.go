package httpapi

import (
	"time"

	"github.com/louisbranch/contactbook/internal/services/contacts/contact"
	"github.com/louisbranch/contactbook/internal/services/contacts/user"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// ContactResponse is the public view of a contact.
type ContactResponse struct {
	ID             int64         `json:"id"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Email          string        `json:"email"`
	PhoneNumber    string        `json:"phone_number"`
	Birthday       string        `json:"birthday"`
	AdditionalData *string       `json:"additional_data"`
	CreatedAt      *time.Time    `json:"created_at"`
	UpdatedAt      *time.Time    `json:"updated_at"`
	User           *UserResponse `json:"user"`
}

// UpcomingBirthdayResponse adds the next celebration date to a contact.
type UpcomingBirthdayResponse struct {
	ContactResponse
	NextBirthday string `json:"next_birthday"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// MessageResponse carries a human readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

func newUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}

func newContactResponse(c contact.Contact) ContactResponse {
	resp := ContactResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Birthday:    c.Birthday,
	}
	if c.AdditionalData != "" {
		note := c.AdditionalData
		resp.AdditionalData = &note
	}
	if !c.CreatedAt.IsZero() {
		createdAt := c.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	if c.Owner != nil {
		owner := newUserResponse(*c.Owner)
		resp.User = &owner
	}
	return resp
}

func newContactResponses(contacts []contact.Contact) []ContactResponse {
	resp := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		resp = append(resp, newContactResponse(c))
	}
	return resp
}
