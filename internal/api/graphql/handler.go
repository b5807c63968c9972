package graphql

import (
	"encoding/json"
	"errors"
	"net/http"

	gql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bloghub/blog-api/internal/core/ports"
)

// request is the standard GraphQL POST body.
type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// responseError is one entry of the errors array: {message, data, code}.
type responseError struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Code    int         `json:"code"`
}

type response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []responseError `json:"errors,omitempty"`
}

// Handler executes GraphQL documents against the schema and flattens resolver
// errors into the {message, data, code} envelope.
type Handler struct {
	schema *gql.Schema
	logger zerolog.Logger
}

// NewHandler parses the schema against the resolver set. It panics on a
// schema/resolver mismatch, which is a programming error caught at startup.
func NewHandler(auth ports.AuthService, posts ports.PostService, logger zerolog.Logger) *Handler {
	schema := gql.MustParseSchema(Schema, NewResolver(auth, posts, logger))
	return &Handler{schema: schema, logger: logger}
}

// Serve handles POST /graphql.
func (h *Handler) Serve(c echo.Context) error {
	var req request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response{
			Errors: []responseError{{Message: "invalid request body", Code: http.StatusBadRequest}},
		})
	}

	result := h.schema.Exec(c.Request().Context(), req.Query, req.OperationName, req.Variables)

	out := response{Data: result.Data}
	for _, qe := range result.Errors {
		out.Errors = append(out.Errors, formatError(qe))
	}
	return c.JSON(http.StatusOK, out)
}

// formatError renders a query error as {message, data, code}. Errors without a
// resolver-set code (parse and validation failures included) default to 500.
func formatError(qe *gqlerrors.QueryError) responseError {
	cause := qe.ResolverError
	if cause == nil {
		cause = qe.Err
	}

	var ae *Error
	if cause != nil && errors.As(cause, &ae) {
		var data interface{}
		if len(ae.Data) > 0 {
			data = ae.Data
		}
		return responseError{Message: ae.Message, Data: data, Code: ae.Code}
	}

	return responseError{Message: qe.Message, Code: http.StatusInternalServerError}
}
