// Package dto provides data transfer objects for the hierarchy endpoints.
package dto

import (
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

// PublicItemResponse is the registration-form view of an OU or division.
type PublicItemResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// OUResponse represents an organizational unit.
type OUResponse struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DivisionResponse represents a division and its owning OU.
type DivisionResponse struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	OU          string `json:"ou"`
}

// MapOUsToPublicResponse converts OUs to the public listing.
func MapOUsToPublicResponse(ous []*hierarchyDomain.OU) []PublicItemResponse {
	data := make([]PublicItemResponse, 0, len(ous))
	for _, ou := range ous {
		data = append(data, PublicItemResponse{ID: ou.ID.String(), Name: ou.Name})
	}
	return data
}

// MapDivisionsToPublicResponse converts divisions to the public listing.
func MapDivisionsToPublicResponse(divisions []*hierarchyDomain.Division) []PublicItemResponse {
	data := make([]PublicItemResponse, 0, len(divisions))
	for _, d := range divisions {
		data = append(data, PublicItemResponse{ID: d.ID.String(), Name: d.Name})
	}
	return data
}

// MapOUsToResponse converts OUs to the authenticated listing.
func MapOUsToResponse(ous []*hierarchyDomain.OU) []OUResponse {
	data := make([]OUResponse, 0, len(ous))
	for _, ou := range ous {
		data = append(data, OUResponse{ID: ou.ID.String(), Name: ou.Name, Description: ou.Description})
	}
	return data
}

// MapDivisionsToResponse converts divisions to the authenticated listing.
func MapDivisionsToResponse(divisions []*hierarchyDomain.Division) []DivisionResponse {
	data := make([]DivisionResponse, 0, len(divisions))
	for _, d := range divisions {
		data = append(data, DivisionResponse{
			ID:          d.ID.String(),
			Name:        d.Name,
			Description: d.Description,
			OU:          d.OUID.String(),
		})
	}
	return data
}
