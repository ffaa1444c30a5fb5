package models

// TokenPair bundles a short-lived access token and a long-lived refresh
// token, minted together at login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AccessToken carries a freshly minted access token; the refresh
// exchange never reissues the refresh token itself.
type AccessToken struct {
	AccessToken string `json:"access_token"`
}
