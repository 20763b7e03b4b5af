// Package docs holds the OpenAPI description served at /swagger/doc.json.
// The info block mirrors the annotations in cmd/server/main.go. Paths are
// maintained by hand next to internal/transport/rest/router.go, and the router
// tests fail when a route is missing here.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {"post": {"summary": "Register a company account", "tags": ["auth"], "responses": {"201": {"description": "Created"}, "400": {"description": "Missing email or password"}, "409": {"description": "User already exists"}}}},
        "/auth/login": {"post": {"summary": "Log in", "tags": ["auth"], "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}},
        "/products/analyze": {"post": {"summary": "Score product data", "tags": ["products"], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid or missing fields"}}}},
        "/products": {
            "post": {"summary": "Score and save a product", "tags": ["products"], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}},
            "get": {"summary": "List saved products", "tags": ["products"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/products/{id}": {"get": {"summary": "Get a saved product", "tags": ["products"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Product not found"}}}},
        "/questions/generate": {"post": {"summary": "Follow-up questions for the base answers", "tags": ["questions"], "responses": {"200": {"description": "OK"}, "400": {"description": "Missing name or category"}}}},
        "/questions/providers": {"get": {"summary": "Configured question provider", "tags": ["questions"], "responses": {"200": {"description": "OK"}}}},
        "/reports/generate": {"post": {"summary": "Render a transparency report (pdf or md)", "tags": ["reports"], "produces": ["application/pdf", "text/markdown"], "responses": {"200": {"description": "Report document"}}}},
        "/reports/{id}": {"get": {"summary": "Get a stored report", "tags": ["reports"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Report not found"}}}},
        "/sessions": {"post": {"summary": "Start a form session", "tags": ["sessions"], "responses": {"201": {"description": "Created"}}}},
        "/sessions/{id}": {"get": {"summary": "Get a session", "tags": ["sessions"], "responses": {"200": {"description": "OK"}, "404": {"description": "Session not found"}}}},
        "/sessions/{id}/answers": {"put": {"summary": "Merge answers into a session", "tags": ["sessions"], "responses": {"200": {"description": "OK"}, "409": {"description": "Session already completed"}}}},
        "/sessions/{id}/next": {"post": {"summary": "Advance a session", "tags": ["sessions"], "responses": {"200": {"description": "OK"}, "400": {"description": "Required questions unanswered"}, "409": {"description": "Session is being advanced by another request"}}}},
        "/sessions/{id}/report": {"get": {"summary": "Render the session report", "tags": ["sessions"], "responses": {"200": {"description": "Report document"}, "409": {"description": "Session has no report yet"}}}},
        "/ws/sessions/{id}": {"get": {"summary": "Session events over WebSocket", "tags": ["sessions"], "responses": {"101": {"description": "Switching Protocols"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Product Transparency API",
	Description:      "Transparency scoring, follow-up questions and reports for consumer products",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
