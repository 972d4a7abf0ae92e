// Package docs registers the OpenAPI document served at /swagger/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/evaluate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["evaluate"],
                "summary": "Evaluate precision@k and recall@k",
                "parameters": [
                    {
                        "description": "Scores, relevance and cutoffs",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/router.EvaluateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.EvaluateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/router.ErrorResponse"}}
                }
            }
        },
        "/v1/runs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "List stored runs",
                "parameters": [
                    {"type": "integer", "default": 50, "description": "Maximum number of runs", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.RunListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.ErrorResponse"}}
                }
            }
        },
        "/v1/runs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Get a stored run",
                "parameters": [
                    {"type": "string", "description": "Run ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.RunResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/router.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/router.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "router.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "router.EvaluateRequest": {
            "type": "object",
            "properties": {
                "job_name": {"type": "string", "example": "val"},
                "scores": {"type": "array", "items": {"type": "array", "items": {"type": "number"}}},
                "relevance": {"type": "array", "items": {"type": "array", "items": {"type": "integer"}}},
                "train_relevance": {"type": "array", "items": {"type": "array", "items": {"type": "integer"}}},
                "cutoffs": {"type": "array", "items": {"type": "integer"}},
                "return_all": {"type": "boolean"},
                "offset": {"type": "integer"},
                "save": {"type": "boolean"}
            }
        },
        "router.EvaluateResponse": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string", "format": "uuid"},
                "cutoffs": {"type": "array", "items": {"type": "integer"}},
                "precision": {"type": "array", "items": {"type": "number"}},
                "recall": {"type": "array", "items": {"type": "number"}}
            }
        },
        "router.RunResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "job_name": {"type": "string"},
                "rows": {"type": "integer"},
                "cols": {"type": "integer"},
                "offset": {"type": "integer"},
                "train_excluded": {"type": "boolean"},
                "cutoffs": {"type": "array", "items": {"type": "integer"}},
                "precision": {"type": "array", "items": {"type": "number"}},
                "recall": {"type": "array", "items": {"type": "number"}},
                "created_at": {"type": "string"}
            }
        },
        "router.RunListResponse": {
            "type": "object",
            "properties": {
                "runs": {"type": "array", "items": {"$ref": "#/definitions/router.RunResponse"}},
                "count": {"type": "integer"}
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
	Title:            "rankeval API",
	Description:      "Cutoff-based precision@k and recall@k evaluation of ranking scores",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
