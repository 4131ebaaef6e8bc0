package middleware

import "github.com/gin-gonic/gin"

// accountIDKey is the key used to store the authenticated account's ID.
// Account resolution happens in an external identity system; the JWT subject
// is the owning-account reference used to scope every query.
const accountIDKey = contextKey("accountID")

// GetAccountIDFromContext retrieves the authenticated account ID from the
// Gin context. It returns the account ID and a boolean indicating if it was
// found.
func GetAccountIDFromContext(c *gin.Context) (string, bool) {
	accountIDVal, exists := c.Get(string(accountIDKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(accountIDKey)
		if ctxVal != nil {
			if accountID, ok := ctxVal.(string); ok {
				return accountID, true
			}
		}
		return "", false
	}

	accountID, ok := accountIDVal.(string)
	if !ok {
		return "", false
	}

	return accountID, true
}
