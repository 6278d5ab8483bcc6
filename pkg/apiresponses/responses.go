/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package apiresponses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InternalErrorText is the plain-text body of the generic 500 fallback.
const InternalErrorText = "An internal server error occurred. Check logs for details."

// Result is the envelope every JSON endpoint answers with.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Error carries the underlying error text where an endpoint chooses to expose it.
	Error string `json:"error,omitempty"`
}

// RespondSuccess sends a 200 OK with a success envelope.
func RespondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Result{Success: true, Message: message})
}

// RespondOK sends a 200 OK response with the given data.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// RespondBadRequest sends a 400 Bad Request response.
func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Result{Message: message})
}

// RespondForbidden sends a 403 Forbidden response with an optional reason.
func RespondForbidden(c *gin.Context, reason string) {
	if reason == "" {
		reason = "access denied"
	}
	c.JSON(http.StatusForbidden, Result{Message: reason})
}

// RespondNotFound sends a 404 for unknown routes.
func RespondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Result{Message: "Not found"})
}

// RespondInternalError logs err with full detail and answers 500 with a
// sanitized message only.
func RespondInternalError(c *gin.Context, message string, err error, log *zap.SugaredLogger) {
	if log != nil {
		log.Errorw(message, "error", err)
	}
	c.JSON(http.StatusInternalServerError, Result{Message: message})
}

// RespondInternalErrorWithDetail answers 500 and includes err's text in the
// body. Only for endpoints that are unavailable in production.
func RespondInternalErrorWithDetail(c *gin.Context, message string, err error) {
	res := Result{Message: message}
	if err != nil {
		res.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, res)
}

// RespondInternalErrorText is the plain-text fallback for unhandled failures.
func RespondInternalErrorText(c *gin.Context) {
	c.String(http.StatusInternalServerError, InternalErrorText)
}
