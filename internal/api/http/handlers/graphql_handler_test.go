package handlers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

func newPingSchema(t *testing.T) graphql.Schema {
	t.Helper()
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"ping": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return "pong", nil
					},
				},
			},
		}),
	})
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}
	return schema
}

func newHandlerApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Post("/graphql", NewGraphQLHandler(newPingSchema(t)).Post)
	return app
}

func TestGraphQLHandler_ExecutesQuery(t *testing.T) {
	app := newHandlerApp(t)

	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(`{"query":"{ ping }"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status: got %d want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "pong") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestGraphQLHandler_SyntaxErrorStaysHTTP200(t *testing.T) {
	app := newHandlerApp(t)

	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(`{"query":"{ nope "}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("execution errors ride the errors field, status %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "errors") {
		t.Fatalf("expected errors field in body: %s", body)
	}
}

func TestGraphQLHandler_RejectsMissingQuery(t *testing.T) {
	app := newHandlerApp(t)

	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status: got %d want 400", resp.StatusCode)
	}
}
