package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Event Registration API",
        "description": "Registration intake and payment-verification review",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Reviewer authentication"},
        {"name": "Registrations", "description": "Intake and review workflow"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate the reviewer account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registrations": {
            "post": {
                "tags": ["Registrations"],
                "summary": "Submit a registration with payment proof",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "member_flag", "in": "formData", "required": true, "type": "string"},
                    {"name": "interest_flag", "in": "formData", "required": true, "type": "string"},
                    {"name": "title", "in": "formData", "required": true, "type": "string"},
                    {"name": "first_name", "in": "formData", "required": true, "type": "string"},
                    {"name": "last_name", "in": "formData", "required": true, "type": "string"},
                    {"name": "company", "in": "formData", "type": "string"},
                    {"name": "po_box", "in": "formData", "type": "string"},
                    {"name": "city", "in": "formData", "type": "string"},
                    {"name": "telephone", "in": "formData", "required": true, "type": "string"},
                    {"name": "email", "in": "formData", "required": true, "type": "string"},
                    {"name": "practice_track", "in": "formData", "required": true, "type": "string"},
                    {"name": "payment_method", "in": "formData", "required": true, "type": "string"},
                    {"name": "consent", "in": "formData", "required": true, "type": "string"},
                    {"name": "payment_proof", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Registrations"],
                "summary": "List registrations",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registrations/{id}": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Get a registration",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registrations/{id}/status": {
            "patch": {
                "tags": ["Registrations"],
                "summary": "Transition a registration to a new status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/registrations/{id}/file": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Stream the uploaded payment proof",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/registrations/export": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Export registrations as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/registrations/stats": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Per-status registration counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["status"]
        },
        "Registration": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string"},
                "memberFlag": {"type": "string"},
                "interestFlag": {"type": "string"},
                "title": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "company": {"type": "string"},
                "poBox": {"type": "string"},
                "city": {"type": "string"},
                "telephone": {"type": "string"},
                "email": {"type": "string"},
                "practiceTrack": {"type": "string"},
                "paymentMethod": {"type": "string"},
                "consent": {"type": "string"},
                "paymentFileName": {"type": "string"},
                "adminNotes": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
