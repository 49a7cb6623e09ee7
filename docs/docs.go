// Package docs registra el documento OpenAPI que sirve /swagger/*.
// Mantenerlo alineado con las anotaciones de internal/domain/cats/api.go.
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
        "/api/csrf": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Issue an authenticity token for the current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.csrfResponse"}}
                }
            }
        },
        "/api/cats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "List cats",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.catResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Create a cat",
                "parameters": [
                    {"type": "string", "description": "authenticity token", "name": "X-CSRF-Token", "in": "header", "required": true},
                    {"description": "cat fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cats.catRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/cats.catResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/cats.violationsResponse"}}
                }
            }
        },
        "/api/cats/{catID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Show a cat",
                "parameters": [
                    {"type": "integer", "description": "cat id", "name": "catID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.catResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Update a cat",
                "parameters": [
                    {"type": "string", "description": "authenticity token", "name": "X-CSRF-Token", "in": "header", "required": true},
                    {"type": "integer", "description": "cat id", "name": "catID", "in": "path", "required": true},
                    {"description": "cat fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cats.catRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.catResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/cats.violationsResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Update a cat",
                "parameters": [
                    {"type": "string", "description": "authenticity token", "name": "X-CSRF-Token", "in": "header", "required": true},
                    {"type": "integer", "description": "cat id", "name": "catID", "in": "path", "required": true},
                    {"description": "cat fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cats.catRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.catResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/cats.violationsResponse"}}
                }
            },
            "delete": {
                "tags": ["cats"],
                "summary": "Delete a cat",
                "parameters": [
                    {"type": "string", "description": "authenticity token", "name": "X-CSRF-Token", "in": "header", "required": true},
                    {"type": "integer", "description": "cat id", "name": "catID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "cats.catRequest": {
            "type": "object",
            "properties": {
                "cat": {
                    "type": "object",
                    "properties": {
                        "breed": {"type": "string"},
                        "name": {"type": "string"}
                    }
                }
            }
        },
        "cats.catResponse": {
            "type": "object",
            "properties": {
                "breed": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "cats.csrfResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "cats.violationsResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "cat-registry API",
	Description:      "JSON mirror of the cats CRUD. Mutations require an X-CSRF-Token from GET /api/csrf.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
