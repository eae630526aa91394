// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/web/main.go -o docs
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
        "/posts/search": {
            "get": {
                "description": "Same query contract as the /search page. The query string is sent to the backend unchanged; use nextStartIndex as startIndex to fetch the next page.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Search posts",
                "parameters": [
                    {"type": "string", "description": "Search term", "name": "searchTerm", "in": "query"},
                    {"type": "string", "description": "desc (default) or asc", "name": "sort", "in": "query"},
                    {"type": "string", "description": "Category, uncategorized for all", "name": "category", "in": "query"},
                    {"type": "integer", "description": "Offset of the first post", "name": "startIndex", "in": "query"},
                    {"type": "integer", "description": "Page size (backend default 9)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SearchResultDTO"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponseDTO"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponseDTO": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "could not load articles"}
            }
        },
        "dto.PostCardDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "image": {"type": "string"},
                "category": {"type": "string"},
                "category_label": {"type": "string"},
                "excerpt": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "querystate.State": {
            "type": "object",
            "properties": {
                "searchTerm": {"type": "string"},
                "sort": {"type": "string"},
                "category": {"type": "string"}
            }
        },
        "dto.SearchResultDTO": {
            "type": "object",
            "properties": {
                "state": {"$ref": "#/definitions/querystate.State"},
                "posts": {"type": "array", "items": {"$ref": "#/definitions/dto.PostCardDTO"}},
                "showMore": {"type": "boolean"},
                "nextStartIndex": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "KalShield API",
	Description:      "Read-only JSON access to the KalShield article search",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
