package bridgetoken

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// tokenRequest is the body accepted by POST /dev/token
type tokenRequest struct {
	ClientID    string   `json:"clientId"`
	Role        string   `json:"role"`
	Publish     []string `json:"publish"`
	Subscribe   []string `json:"subscribe"`
	ExpiryHours *float64 `json:"expiryHours"`
}

// NewRouter returns a Gin engine serving the development token endpoint.
// It is meant for local gateway testing, never for production issuance.
func NewRouter(issuer *Issuer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.GET("/roles", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"roles": Presets()})
	})

	r.POST("/dev/token", issueHandler(issuer))

	return r
}

// requestID generates or propagates X-Request-ID for correlation
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), id))
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func issueHandler(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body tokenRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, buildErrorResponse(
				NewError(ErrMalformed, "request body must be a JSON object", err)))
			return
		}

		params := Params{
			ClientID:    body.ClientID,
			Role:        body.Role,
			Publish:     body.Publish,
			Subscribe:   body.Subscribe,
			ExpiryHours: DefaultExpiryHours,
		}
		if body.ExpiryHours != nil {
			params.ExpiryHours = *body.ExpiryHours
		}

		req, err := params.Resolve()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, buildErrorResponse(err))
			return
		}

		token, claims, err := issuer.Issue(c.Request.Context(), req)
		if err != nil {
			status := http.StatusBadRequest
			if CodeOf(err) == ErrSigning {
				status = http.StatusInternalServerError
			}
			c.AbortWithStatusJSON(status, buildErrorResponse(err))
			return
		}

		c.JSON(http.StatusOK, Result{Token: token, Payload: claims})
	}
}

// buildErrorResponse constructs the JSON error body
func buildErrorResponse(err error) gin.H {
	response := gin.H{
		"error":  "bad_request",
		"reason": string(CodeOf(err)),
	}
	if CodeOf(err) == ErrSigning {
		response["error"] = "internal_error"
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		response["message"] = e.Message
	}
	return response
}
