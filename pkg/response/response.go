package response

import "github.com/gin-gonic/gin"

// Machine-readable error codes returned in the {"error": CODE} envelope.
// Clients branch on these, never on HTTP reason phrases.
const (
	CodeMissingFields      = "MISSING_FIELDS"
	CodeInvalidPayload     = "INVALID_PAYLOAD"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeDBError            = "DB_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
)

// OK writes a success body as-is.
func OK(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// Fail writes the error envelope. An optional details map is attached for
// validation failures; error codes stay generic for auth failures so the
// response carries no oracle about which check failed.
func Fail(c *gin.Context, status int, code string, details ...map[string]string) {
	body := gin.H{"error": code}
	if len(details) > 0 && details[0] != nil {
		body["details"] = details[0]
	}
	c.JSON(status, body)
}

// AbortFail writes the error envelope and aborts the handler chain.
// Used by middleware.
func AbortFail(c *gin.Context, status int, code string) {
	c.AbortWithStatusJSON(status, gin.H{"error": code})
}
