package domain

// Credentials is the payload of a login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration extends Credentials with the optional profile fields sent on sign-up.
type Registration struct {
	Credentials
	FullName *string `json:"full_name,omitempty"`
}

// AccessToken is the response of a successful login.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
