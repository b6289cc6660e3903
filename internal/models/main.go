// Package models defines the core data structures shared by the client
// and the candidate API server.
package models

// Candidate is a job-applicant record as it travels over the wire.
// Optional contact fields are pointers so that an absent field is
// distinguishable from an empty string.
type Candidate struct {
	// ID is the server-assigned identifier, immutable after creation.
	ID string `json:"id"`
	// FirstName is the candidate's given name.
	FirstName string `json:"firstName"`
	// LastName is the candidate's family name.
	LastName string `json:"lastName"`
	// Email is the candidate's contact address.
	Email string `json:"email"`
	// Phone is the optional phone number.
	Phone *string `json:"phone"`
	// Note holds optional free-form recruiter notes.
	Note *string `json:"note"`
	// LinkedinURL is the optional profile link.
	LinkedinURL *string `json:"linkedinURL"`
	// IsFavorite marks the candidate as a favorite. Only the server
	// flips this, via the favorite endpoint.
	IsFavorite bool `json:"isFavorite"`
}

// CandidateRequest is the create/update payload. Optional fields carry
// omitempty so an unset field is left out of the body entirely rather
// than sent as null.
type CandidateRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Note        *string `json:"note,omitempty"`
	LinkedinURL *string `json:"linkedinURL,omitempty"`
}

// AuthResponse is the body returned by the authentication endpoint.
type AuthResponse struct {
	// Token is the opaque bearer token for subsequent requests.
	Token string `json:"token"`
	// IsAdmin reports whether the authenticated user may toggle favorites.
	IsAdmin bool `json:"isAdmin"`
}

// User represents a registered account on the server side.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// FirstName is the user's given name.
	FirstName string
	// LastName is the user's family name.
	LastName string
	// Email is the login identifier.
	Email string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
	// IsAdmin grants the favorite-toggle permission.
	IsAdmin bool
}
