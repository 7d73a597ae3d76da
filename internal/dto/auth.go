package dto

type LoginResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	User         *PersonSummary `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}
