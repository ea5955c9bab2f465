package apierrors

import (
	"maps"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
)

// IsValidationError reports whether the failure is a 400 carrying a
// field-keyed error map in either the backend-native format (data) or the
// custom format (errors). Validation errors bypass classification entirely:
// they are surfaced to forms, not as notifications.
func IsValidationError(err error) bool {
	status, ok := apiclient.StatusOf(err)
	if !ok || status != http.StatusBadRequest {
		return false
	}

	body := apiclient.BodyOf(err)
	return body != nil && (len(body.Data) > 0 || len(body.Errors) > 0)
}

// ExtractValidationErrors returns the field-keyed error map from the
// failure, preferring the backend-native format. The result is never nil.
func ExtractValidationErrors(err error) map[string]string {
	body := apiclient.BodyOf(err)
	if body == nil {
		return map[string]string{}
	}

	if len(body.Data) > 0 {
		return maps.Clone(body.Data)
	}
	if len(body.Errors) > 0 {
		return maps.Clone(body.Errors)
	}

	return map[string]string{}
}
