package dto

import (
	"github.com/allisson/credvault/internal/authz"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

// MeResponse is the caller's view of their own token snapshot.
type MeResponse struct {
	Role      authz.Role `json:"role"`
	Divisions []string   `json:"divisions"`
	OUs       []string   `json:"OUs"`
}

// UserResponse represents a user without the password hash.
type UserResponse struct {
	ID        string     `json:"_id"`
	Username  string     `json:"username"`
	Role      authz.Role `json:"role"`
	OUs       []string   `json:"OUs"`
	Divisions []string   `json:"divisions"`
}

// AssignmentResponse is returned by assign and role change. Token belongs to the
// acting admin.
type AssignmentResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// MapSnapshotToMeResponse converts the caller's snapshot.
func MapSnapshotToMeResponse(snapshot *authz.Snapshot) MeResponse {
	return MeResponse{
		Role:      snapshot.Role,
		Divisions: snapshot.Divisions.Strings(),
		OUs:       snapshot.OUs.Strings(),
	}
}

// MapUserToResponse converts a domain user.
func MapUserToResponse(user *userDomain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Role:      user.Role,
		OUs:       user.OUs.Strings(),
		Divisions: user.Divisions.Strings(),
	}
}

// MapUsersToResponse converts a list of users. The result is never nil.
func MapUsersToResponse(users []*userDomain.User) []UserResponse {
	data := make([]UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, MapUserToResponse(user))
	}
	return data
}

// MapAssignmentResultToResponse converts an assignment result.
func MapAssignmentResultToResponse(message string, result *userDomain.AssignmentResult) AssignmentResponse {
	return AssignmentResponse{
		Message: message,
		User:    MapUserToResponse(result.User),
		Token:   result.Token,
	}
}
