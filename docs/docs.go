// Package docs registers the rig API description for /swagger.
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
    "paths": {
        "/health": {
            "get": {"tags": ["system"], "summary": "Health check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/auth/sign-up": {
            "post": {"tags": ["auth"], "summary": "Register an operator",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"200": {"description": "id"}, "400": {"description": "Bad Request"}, "409": {"description": "Username taken"}}}
        },
        "/auth/sign-in": {
            "post": {"tags": ["auth"], "summary": "Sign in and get a bearer token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"200": {"description": "token"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/v1/pumps": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["pumps"], "summary": "Get pump configuration",
                "responses": {"200": {"description": "Pump N -> ingredient", "schema": {"$ref": "#/definitions/stringMap"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["pumps"], "summary": "Replace pump configuration",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/stringMap"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid pump label"}}}
        },
        "/api/v1/cocktails": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["cocktails"], "summary": "List cocktails",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CocktailCollection"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["cocktails"], "summary": "Replace the cocktail collection",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.CocktailCollection"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid collection"}}}
        },
        "/api/v1/cocktails/{name}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["cocktails"], "summary": "Get one cocktail",
                "parameters": [{"in": "path", "name": "name", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Cocktail"}}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/cocktails/{name}/ingredients": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["cocktails"], "summary": "Save adjusted ingredient measurements",
                "parameters": [
                    {"in": "path", "name": "name", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/stringMap"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/selection": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["selection"], "summary": "Get the selected cocktail",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Nothing selected"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["selection"], "summary": "Select a cocktail",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SelectionRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/calibration": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["calibration"], "summary": "Get calibration",
                "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["calibration"], "summary": "Set calibration",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CalibrationRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid calibration"}}}
        },
        "/api/v1/pour": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["operations"], "summary": "Pour a cocktail",
                "parameters": [{"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handlers.PourRequest"}}],
                "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/models.Operation"}},
                    "400": {"description": "Bad Request"}, "409": {"description": "Another operation is running"}}}
        },
        "/api/v1/maintenance/prime": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["operations"], "summary": "Prime every pump",
                "parameters": [{"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handlers.MaintenanceRequest"}}],
                "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/models.Operation"}}, "409": {"description": "Busy"}}}
        },
        "/api/v1/maintenance/clean": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["operations"], "summary": "Clean every pump (reverse)",
                "parameters": [{"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handlers.MaintenanceRequest"}}],
                "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/models.Operation"}}, "409": {"description": "Busy"}}}
        },
        "/api/v1/operations/current": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["operations"], "summary": "Current operation",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Operation"}}}}
        },
        "/api/v1/operations/current/cancel": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["operations"], "summary": "Cancel the running operation",
                "responses": {"202": {"description": "Accepted"}, "409": {"description": "No operation running"}}}
        },
        "/api/v1/logs": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["logs"], "summary": "List rig events",
                "parameters": [
                    {"in": "query", "name": "from", "type": "string"},
                    {"in": "query", "name": "to", "type": "string"},
                    {"in": "query", "name": "type", "type": "string",
                        "enum": ["POUR_START", "POUR_DONE", "INGREDIENT_POURED", "INGREDIENT_SKIPPED", "PRIME", "CLEAN", "FAULT", "CALIBRATION", "CONFIG"]}
                ],
                "responses": {"200": {"description": "count, events"}, "400": {"description": "Bad Request"}}}
        }
    },
    "definitions": {
        "stringMap": {"type": "object", "additionalProperties": {"type": "string"}},
        "credentials": {"type": "object", "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "handlers.SelectionRequest": {"type": "object", "required": ["cocktail"],
            "properties": {"cocktail": {"type": "string", "example": "moscow_mule"}}},
        "handlers.CalibrationRequest": {"type": "object", "required": ["seconds_per_ounce"],
            "properties": {"seconds_per_ounce": {"type": "number", "example": 8}}},
        "handlers.PourRequest": {"type": "object",
            "properties": {
                "cocktail": {"type": "string", "example": "moscow_mule"},
                "mode": {"type": "string", "enum": ["single", "double"]},
                "ingredients": {"$ref": "#/definitions/stringMap"}
            }},
        "handlers.MaintenanceRequest": {"type": "object",
            "properties": {"duration_sec": {"type": "number", "example": 5}}},
        "models.Cocktail": {"type": "object",
            "properties": {
                "normal_name": {"type": "string"},
                "fun_name": {"type": "string"},
                "ingredients": {"$ref": "#/definitions/stringMap"}
            }},
        "models.CocktailCollection": {"type": "object",
            "properties": {"cocktails": {"type": "array", "items": {"$ref": "#/definitions/models.Cocktail"}}}},
        "models.Operation": {"type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string", "enum": ["POUR", "PRIME", "CLEAN"]},
                "state": {"type": "string", "enum": ["IDLE", "PREPARING", "CLEANUP", "DONE", "FAILED", "CANCELED"]},
                "cocktail": {"type": "string"},
                "mode": {"type": "string"},
                "started_at": {"type": "string"},
                "finished_at": {"type": "string"},
                "error": {"type": "string"}
            }}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cocktail Rig API",
	Description:      "Pour cocktails, prime and clean pumps, and manage recipes on the pump rig.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
