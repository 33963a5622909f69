package graphql

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/server/auth"
)

// authenticate attaches the caller's identity when the request carries a
// valid bearer token. Requests without one continue anonymously, and it is
// up to each operation to require an identity.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get(common.AuthorizationHeaderName))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			s.logger.Warn(ctx, "rejected session token", "error", err, "remote", clientIP(r))
			next.ServeHTTP(w, r)
			return
		}

		ctx = auth.WithIdentity(ctx, &auth.Identity{Username: claims.Username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
