// Package docs registers the OpenAPI description served by http-swagger at
// /swagger/. It is kept in step with the swag annotations on the handlers
// in internal/api.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["text/html"],
                "tags": ["applicant"],
                "summary": "Landing page",
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}}
                }
            }
        },
        "/admin": {
            "get": {
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "Admin panel",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive email substring", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}},
                    "302": {"description": "Redirect to /admin/login without an admin session", "schema": {"type": "string"}},
                    "500": {"description": "Error loading admin panel.", "schema": {"type": "string"}}
                }
            }
        },
        "/admin/login": {
            "get": {
                "produces": ["text/html"],
                "tags": ["admin"],
                "summary": "Admin login page",
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "tags": ["admin"],
                "summary": "Admin login",
                "parameters": [
                    {"type": "string", "description": "Admin username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Admin password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Login page with error", "schema": {"type": "string"}},
                    "302": {"description": "Redirect to /admin", "schema": {"type": "string"}},
                    "429": {"description": "Login page with throttling error", "schema": {"type": "string"}}
                }
            }
        },
        "/admin/logout": {
            "get": {
                "tags": ["admin"],
                "summary": "Admin logout",
                "responses": {
                    "302": {"description": "Redirect to /admin/login", "schema": {"type": "string"}}
                }
            }
        },
        "/admin/update-application": {
            "post": {
                "description": "Omitting adminMessage keeps the stored message; an empty value clears it.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "tags": ["admin"],
                "summary": "Update application status",
                "parameters": [
                    {"type": "string", "description": "Application id", "name": "id", "in": "formData", "required": true},
                    {"type": "string", "description": "Pending, Applied or Declined", "name": "status", "in": "formData", "required": true},
                    {"type": "string", "description": "Message shown to the applicant", "name": "adminMessage", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Redirect to /admin", "schema": {"type": "string"}},
                    "400": {"description": "Missing required fields.", "schema": {"type": "string"}},
                    "404": {"description": "Application not found.", "schema": {"type": "string"}},
                    "500": {"description": "Error updating application.", "schema": {"type": "string"}}
                }
            }
        },
        "/chat/email": {
            "get": {
                "tags": ["applicant"],
                "summary": "Email support",
                "responses": {
                    "302": {"description": "Redirect to mailto", "schema": {"type": "string"}}
                }
            }
        },
        "/chat/whatsapp": {
            "get": {
                "tags": ["applicant"],
                "summary": "WhatsApp chat",
                "responses": {
                    "302": {"description": "Redirect to wa.me", "schema": {"type": "string"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/information": {
            "get": {
                "produces": ["text/html"],
                "tags": ["applicant"],
                "summary": "Terms and conditions page",
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "tags": ["applicant"],
                "summary": "Agree to terms",
                "parameters": [
                    {"type": "string", "description": "Any non-empty value", "name": "agree", "in": "formData", "required": true},
                    {"type": "string", "description": "Applicant email", "name": "email", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "You must agree to the terms and conditions.", "schema": {"type": "string"}},
                    "302": {"description": "Redirect to /jobform", "schema": {"type": "string"}}
                }
            }
        },
        "/jobform": {
            "get": {
                "produces": ["text/html"],
                "tags": ["applicant"],
                "summary": "Job application form",
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "tags": ["applicant"],
                "summary": "Submit job application",
                "parameters": [
                    {"type": "string", "description": "Full name", "name": "fullName", "in": "formData"},
                    {"type": "string", "description": "Contact email", "name": "email", "in": "formData"},
                    {"type": "string", "description": "WhatsApp number", "name": "whatsapp", "in": "formData"},
                    {"type": "string", "description": "Phone number", "name": "contact", "in": "formData"},
                    {"type": "string", "description": "Country", "name": "country", "in": "formData"},
                    {"type": "string", "description": "Company names", "name": "companyNames", "in": "formData"},
                    {"type": "string", "description": "Company location (Online for remote work)", "name": "companyLocation", "in": "formData"},
                    {"type": "string", "description": "Position", "name": "position", "in": "formData"},
                    {"type": "string", "description": "Job type", "name": "jobType", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Redirect to /status", "schema": {"type": "string"}},
                    "400": {"description": "No applicant email in session", "schema": {"type": "string"}},
                    "500": {"description": "Server error", "schema": {"type": "string"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["text/html"],
                "tags": ["applicant"],
                "summary": "Application status",
                "parameters": [
                    {"type": "string", "description": "Applicant email", "name": "email", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}},
                    "400": {"description": "Email is required.", "schema": {"type": "string"}},
                    "500": {"description": "Server error", "schema": {"type": "string"}}
                }
            }
        },
        "/submit-email": {
            "post": {
                "description": "New emails continue to /information; known emails go straight to their status page.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "tags": ["applicant"],
                "summary": "Submit applicant email",
                "parameters": [
                    {"type": "string", "description": "Applicant email", "name": "email", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "Redirect to /information or /status", "schema": {"type": "string"}},
                    "400": {"description": "Email is required.", "schema": {"type": "string"}},
                    "500": {"description": "Server error", "schema": {"type": "string"}}
                }
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
	Title:            "Job Intake API",
	Description:      "Applicant intake funnel and admin review panel for job applications",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
