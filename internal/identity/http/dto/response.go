package dto

// UserResponse is the public representation of a user. The password digest is
// never serialized.
type UserResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	DivisionIDs []string `json:"division_ids"`
	OUIDs       []string `json:"ou_ids"`
}

// AuthResponse is returned by register and login: the signed token plus the
// user it was issued for.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
