package graph

import (
	"context"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Path is where the query endpoint and the explorer are mounted.
const Path = "/graphql"

// NewHandler serves schema over HTTP with the GraphiQL explorer on browser
// GETs. Execution errors are logged once per request.
func NewHandler(schema graphql.Schema, logger zerolog.Logger) http.Handler {
	return handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
		ResultCallbackFn: func(ctx context.Context, params *graphql.Params, result *graphql.Result, _ []byte) {
			if !result.HasErrors() {
				return
			}
			msgs := make([]string, 0, len(result.Errors))
			for _, e := range result.Errors {
				msgs = append(msgs, e.Message)
			}
			logger.Warn().
				Str("operation", params.OperationName).
				Strs("errors", msgs).
				Msg("graphql errors")
		},
	})
}

// Register mounts the endpoint for GET and POST.
func Register(e *echo.Echo, h http.Handler) {
	wrapped := echo.WrapHandler(h)
	e.GET(Path, wrapped)
	e.POST(Path, wrapped)
}
