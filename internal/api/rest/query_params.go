package rest

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-catalog/internal/api/shared/dto"
	"github.com/feral-file/ff-catalog/internal/auth"
	"github.com/feral-file/ff-catalog/internal/domain"
)

const (
	QUERY_PARAMS_KEY = "QUERY_PARAMS"
	API_KEY_KEY      = "API_KEY"
)

// callerFrom reads the credentials presented with the request
func callerFrom(c *gin.Context) dto.Caller {
	return dto.Caller{
		APIKey:      c.Query(API_KEY_KEY),
		AccessToken: auth.BearerToken(c.GetHeader("Authorization")),
	}
}

// parseQueryParams decodes the JSON document carried by QUERY_PARAMS.
// It returns nil when the parameter is absent.
func parseQueryParams[T any](c *gin.Context) (*T, error) {
	raw, ok := c.GetQuery(QUERY_PARAMS_KEY)
	if !ok || raw == "" {
		return nil, nil
	}
	var params T
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, domain.Validationf("QUERY_PARAMS must be a valid JSON document: %v", err)
	}
	return &params, nil
}

// bindBody decodes the JSON request body into T
func bindBody[T any](c *gin.Context) (T, error) {
	var body T
	if err := c.ShouldBindJSON(&body); err != nil {
		return body, domain.Validationf("request body must be a valid JSON document: %v", err)
	}
	return body, nil
}
