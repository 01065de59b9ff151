// Package docs registers the OpenAPI description served at /swagger.
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
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/profile": {
            "get": {"tags": ["profile"], "summary": "Current user's profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["profile"], "summary": "Create or edit the current user's profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/onboarding/draft": {
            "get": {"tags": ["onboarding"], "summary": "Load the saved onboarding form", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["onboarding"], "summary": "Save the onboarding form", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["onboarding"], "summary": "Discard the onboarding form", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}}}
        },
        "/onboarding/complete": {
            "post": {"tags": ["onboarding"], "summary": "Finish onboarding and queue the first plan", "security": [{"BearerAuth": []}], "responses": {"202": {"description": "Accepted"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/plans": {
            "get": {"tags": ["plans"], "summary": "All plans of the current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["plans"], "summary": "Create and activate a hand-written plan", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/plans/generate": {
            "post": {"tags": ["plans"], "summary": "Ask the coach to author a new plan", "security": [{"BearerAuth": []}], "responses": {"202": {"description": "Accepted"}, "503": {"description": "Service Unavailable"}}}
        },
        "/plans/active": {
            "get": {"tags": ["plans"], "summary": "Active plan with today's week number and phase", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/plans/{id}": {
            "get": {"tags": ["plans"], "summary": "One plan", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/workouts": {
            "get": {"tags": ["workouts"], "summary": "Workouts between two dates", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "from", "in": "query"}, {"type": "string", "name": "to", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"tags": ["workouts"], "summary": "Schedule a workout", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/workouts/week": {
            "get": {"tags": ["workouts"], "summary": "Monday to Sunday week containing a date", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "date", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/workouts/{id}": {
            "get": {"tags": ["workouts"], "summary": "One workout", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["workouts"], "summary": "Edit a workout", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "delete": {"tags": ["workouts"], "summary": "Turn a workout into a rest day", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/workouts/{id}/complete": {
            "post": {"tags": ["workouts"], "summary": "Log or withdraw a completion", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/metrics": {
            "get": {"tags": ["metrics"], "summary": "Daily readings between two dates", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/metrics/{date}": {
            "get": {"tags": ["metrics"], "summary": "Readings for one day", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["metrics"], "summary": "Record readings for one day", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/dashboard": {
            "get": {"tags": ["dashboard"], "summary": "Home screen for today", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/coach/chat": {
            "post": {"tags": ["coach"], "summary": "Send a message to the coach", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/coach/messages": {
            "get": {"tags": ["coach"], "summary": "Conversation history", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/coach/adapt": {
            "post": {"tags": ["coach"], "summary": "Let the coach reshape the next seven days", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}
        },
        "/stats": {
            "get": {"tags": ["stats"], "summary": "Planned vs completed training", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "start_date", "in": "query"}, {"type": "string", "name": "end_date", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/billing/webhook": {
            "post": {"tags": ["billing"], "summary": "Payment provider webhook", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Summit API",
	Description:      "Training plans, workouts and an AI coach.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
