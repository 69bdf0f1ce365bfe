// Package docs holds the OpenAPI document for the provider API, registered with
// swag so the swagger UI can serve it. Regenerate with
// `swag init -g cmd/server/main.go -o webapi/docs` after changing handler annotations.
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
        "/api/providers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "List providers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/api/providers/{name}": {
            "get": {
                "security": [{"UserID": []}],
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "Get provider status",
                "parameters": [
                    {"type": "string", "description": "Provider name", "name": "name", "in": "path", "required": true},
                    {"type": "integer", "description": "Chain id", "name": "chain_id", "in": "query", "required": true},
                    {"type": "string", "description": "ISO alpha-2 country for new customers", "name": "country", "in": "query"},
                    {"type": "string", "description": "Redirect after KYC", "name": "redirect_uri", "in": "query"},
                    {"type": "string", "description": "Persona inquiry scope", "name": "persona_scope", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/providers/{name}/deposit": {
            "post": {
                "security": [{"UserID": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "Get fiat deposit instructions",
                "parameters": [
                    {"type": "string", "description": "Provider name", "name": "name", "in": "path", "required": true},
                    {"description": "Deposit request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/onramp.DepositRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/providers/{name}/crypto-deposit": {
            "post": {
                "security": [{"UserID": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "Get crypto deposit address",
                "parameters": [
                    {"type": "string", "description": "Provider name", "name": "name", "in": "path", "required": true},
                    {"description": "Crypto deposit request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/onramp.CryptoDepositRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/providers/{name}/onboarding": {
            "post": {
                "security": [{"UserID": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "Submit onboarding",
                "parameters": [
                    {"type": "string", "description": "Provider name", "name": "name", "in": "path", "required": true},
                    {"description": "Onboarding request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/onramp.OnboardingRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "common.ProblemDetails": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "detail": {"type": "string"},
                "errors": {},
                "instance": {"type": "string"},
                "status": {"type": "integer"},
                "title": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "common.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "onramp.CryptoDepositRequest": {
            "type": "object",
            "required": ["account_address", "chain_id", "crypto_currency", "network"],
            "properties": {
                "account_address": {"type": "string"},
                "chain_id": {"type": "integer"},
                "crypto_currency": {"type": "string"},
                "network": {"type": "string", "enum": ["TRON", "SOLANA", "STELLAR"]}
            }
        },
        "onramp.DepositRequest": {
            "type": "object",
            "required": ["account_address", "chain_id", "currency"],
            "properties": {
                "account_address": {"type": "string"},
                "chain_id": {"type": "integer"},
                "currency": {"type": "string"}
            }
        },
        "onramp.OnboardingRequest": {
            "type": "object",
            "properties": {
                "persona_scope": {"type": "string"},
                "signed_agreement_id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "UserID": {"type": "apiKey", "name": "X-User-ID", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Onramp API",
	Description:      "Fiat on-ramp provider status, deposit instructions and onboarding",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
