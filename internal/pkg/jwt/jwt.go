package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// NewVerifier builds the token verifier for bearer tokens minted by the
// upstream identity service. This backend never issues tokens; it checks
// the shared HS256 signature and reads claims. The skew tolerates clock
// drift between the issuer and this host.
func NewVerifier(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil, jwt.WithAcceptableSkew(30*time.Second))
}
