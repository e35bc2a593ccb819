package middleware

import (
	"net/http"
	"strings"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"
	"brcargo_cotacoes/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderUserID = "X-User-ID"
	callerKey    = "caller"
)

var (
	errMissingIdentity = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing X-User-ID header", http.StatusUnauthorized)
	errUnknownIdentity = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Unknown user", http.StatusUnauthorized)
	errIdentityLookup  = pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
)

// Identity resolves the caller named by X-User-ID from the user directory.
// Whether the caller may act is decided later by the use cases.
func Identity(users interfaces.IUserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if id == "" {
			c.AbortWithStatusJSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
			return
		}
		u, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(errIdentityLookup.HTTPStatus, errIdentityLookup.ToHTTPError())
			return
		}
		if u.ID == "" {
			c.AbortWithStatusJSON(errUnknownIdentity.HTTPStatus, errUnknownIdentity.ToHTTPError())
			return
		}
		SetCaller(c, u)
		c.Next()
	}
}

func SetCaller(c *gin.Context, u entities.User) {
	c.Set(callerKey, u)
}

// Caller returns the user stored by Identity, or the zero user.
func Caller(c *gin.Context) entities.User {
	if v, ok := c.Get(callerKey); ok {
		if u, ok := v.(entities.User); ok {
			return u
		}
	}
	return entities.User{}
}
