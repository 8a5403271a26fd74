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
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a passenger account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterRequest"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Phone or email already registered"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in with phone or email",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/routes": {
            "get": {
                "tags": ["routes"],
                "summary": "List route templates",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/routes/cities": {
            "get": {
                "tags": ["routes"],
                "summary": "Cities served by at least one route",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/searches": {
            "post": {
                "tags": ["search"],
                "summary": "Expand matching routes into trips for a date",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/inventory.SearchParams"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Same city or past date"}}
            }
        },
        "/searches/{id}/trips": {
            "get": {
                "tags": ["search"],
                "summary": "Filter the trips of a stored search",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "number", "name": "max_price", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "name": "bus_type", "in": "query"},
                    {"type": "array", "items": {"type": "integer"}, "name": "slot", "in": "query"},
                    {"type": "number", "name": "min_rating", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Search expired"}}
            }
        },
        "/checkout/trip": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["checkout"],
                "summary": "Select a trip and start checkout",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Search or trip not found"}}
            }
        },
        "/checkout/seats": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["checkout"],
                "summary": "Select seats and declare passenger counts",
                "responses": {"200": {"description": "OK"}, "422": {"description": "Seat unavailable or counts disagree"}}
            }
        },
        "/checkout/details": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["checkout"],
                "summary": "Submit passengers and contact",
                "responses": {"200": {"description": "OK"}, "422": {"description": "Reserved seat or count mismatch"}}
            }
        },
        "/checkout/pay": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["checkout"],
                "summary": "Pay and record the booking",
                "responses": {"201": {"description": "Created"}, "409": {"description": "No draft in session"}}
            }
        },
        "/users/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Dashboard of the user's bookings, newest first",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/bookings/{id}/cancellation-quote": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["cancellation"],
                "summary": "Refund the booking would receive now",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Booking not found"}}
            }
        },
        "/bookings/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["cancellation"],
                "summary": "Cancel a confirmed booking",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Not cancellable"}}
            }
        },
        "/bookings/{id}/rate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Rate a completed journey",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Already rated"}, "422": {"description": "Journey not completed"}}
            }
        },
        "/bookings/{id}/ticket": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Download the ticket as PDF",
                "produces": ["application/pdf"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Cancelled bookings cannot be printed"}}
            }
        },
        "/refund-policy": {
            "get": {
                "tags": ["cancellation"],
                "summary": "Deduction tiers by notice before departure",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/checkout/coupon": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["checkout"],
                "summary": "Apply a percent coupon to the pending booking",
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unknown or already applied coupon"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["checkout"],
                "summary": "Remove the applied coupon",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/checkout/payment-intent": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["checkout"],
                "summary": "UPI deep link for the pending total",
                "responses": {"200": {"description": "OK"}, "409": {"description": "No pending booking"}}
            }
        },
        "/admin/analytics/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Ledger totals, revenue and cancellation rate",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/admin/analytics/bookings/daily": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Bookings and revenue per day",
                "parameters": [{"name": "days", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/analytics/routes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Busiest routes",
                "parameters": [{"name": "limit", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/analytics/cancellations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Processed cancellations by deduction tier",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "auth.LoginRequest": {
            "type": "object",
            "required": ["identifier", "password"],
            "properties": {"identifier": {"type": "string"}, "password": {"type": "string"}}
        },
        "auth.RegisterRequest": {
            "type": "object",
            "required": ["name", "phone", "password", "confirm_password"],
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "confirm_password": {"type": "string"}
            }
        },
        "inventory.SearchParams": {
            "type": "object",
            "required": ["from", "to", "date"],
            "properties": {"from": {"type": "string"}, "to": {"type": "string"}, "date": {"type": "string", "example": "2025-12-01"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "BusGo API",
	Description:      "Bus ticket search, checkout and booking ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
