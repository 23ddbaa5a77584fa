package dto

import (
	"time"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
)

// CredentialSummaryResponse is a list item. The password is withheld.
type CredentialSummaryResponse struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Username string `json:"username"`
	URL      string `json:"url"`
}

// CredentialResponse is a single credential including its password.
type CredentialResponse struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	URL       string    `json:"url"`
	Division  string    `json:"division"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MapCredentialsToSummaryResponse converts a division listing. The result is never nil.
func MapCredentialsToSummaryResponse(credentials []*credentialsDomain.Credential) []CredentialSummaryResponse {
	data := make([]CredentialSummaryResponse, 0, len(credentials))
	for _, c := range credentials {
		data = append(data, CredentialSummaryResponse{
			ID:       c.ID.String(),
			Title:    c.Title,
			Username: c.Username,
			URL:      c.URL,
		})
	}
	return data
}

// MapCredentialToResponse converts a credential whose password has been opened.
func MapCredentialToResponse(c *credentialsDomain.Credential) CredentialResponse {
	return CredentialResponse{
		ID:        c.ID.String(),
		Title:     c.Title,
		Username:  c.Username,
		Password:  c.Password,
		URL:       c.URL,
		Division:  c.DivisionID.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
