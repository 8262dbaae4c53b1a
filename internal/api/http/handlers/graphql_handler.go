package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// GraphQLHandler executes GraphQL operations posted to the single endpoint.
type GraphQLHandler struct {
	schema graphql.Schema
}

// NewGraphQLHandler constructs handler.
func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Post handles POST /graphql. Business outcomes always come back with HTTP
// 200; execution errors ride in the standard "errors" field.
func (h *GraphQLHandler) Post(c *fiber.Ctx) error {
	var req graphqlRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Query == "" {
		return fiber.NewError(http.StatusBadRequest, "query required")
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.UserContext(),
	})
	return c.JSON(result)
}
