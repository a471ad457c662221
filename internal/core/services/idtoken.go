package services

import "github.com/golang-jwt/jwt/v5"

// accountEmail extracts the email claim from an OIDC ID token. The token
// arrived over TLS directly from the provider's token endpoint, so the
// signature is not verified here; the claim is informational only and never
// used for authorization. Returns "" when there is no token or no claim.
func accountEmail(idToken string) string {
	if idToken == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return ""
	}

	email, _ := claims["email"].(string)
	return email
}
