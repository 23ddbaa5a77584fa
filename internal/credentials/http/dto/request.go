// Package dto provides data transfer objects for the credential endpoints.
package dto

import (
	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
)

// CredentialRequest is the body of credential create and update. Field rules are
// enforced by the use case.
type CredentialRequest struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
}

// ToDomain converts the request.
func (r *CredentialRequest) ToDomain() *credentialsDomain.CredentialInput {
	return &credentialsDomain.CredentialInput{
		Title:    r.Title,
		Username: r.Username,
		Password: r.Password,
		URL:      r.URL,
	}
}
