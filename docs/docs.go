// Package docs registers the Swagger document served at /swagger/.
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
        "/catalog": {
            "get": {
                "produces": ["application/json"],
                "summary": "List the full catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.Listing"}}}
                }
            }
        },
        "/catalog/options": {
            "get": {
                "produces": ["application/json"],
                "summary": "Filter and sort options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.optionsResponse"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "produces": ["application/json"],
                "summary": "Start a browse session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.sessionResponse"}}
                }
            }
        },
        "/session": {
            "delete": {
                "summary": "End the browse session",
                "security": [{"SessionCookie": []}],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/session/view": {
            "get": {
                "produces": ["application/json"],
                "summary": "Visible listings for the current selection",
                "security": [{"SessionCookie": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.viewResponse"}}
                }
            }
        },
        "/session/selection": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Set filter, sort and search fields",
                "security": [{"SessionCookie": []}],
                "parameters": [
                    {"in": "body", "name": "selection", "required": true, "schema": {"$ref": "#/definitions/main.selectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.viewResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/session/selection/{field}": {
            "delete": {
                "produces": ["application/json"],
                "summary": "Clear one selection field",
                "security": [{"SessionCookie": []}],
                "parameters": [
                    {"type": "string", "enum": ["make", "terrain", "year", "sort", "search"], "name": "field", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.viewResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/session/cards/{id}/flip": {
            "post": {
                "produces": ["application/json"],
                "summary": "Flip a listing card",
                "security": [{"SessionCookie": []}],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.flipResponse"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/session/cart": {
            "get": {
                "produces": ["application/json"],
                "summary": "Cart contents",
                "security": [{"SessionCookie": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.cartResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Add a listing to the cart",
                "security": [{"SessionCookie": []}],
                "parameters": [
                    {"in": "body", "name": "item", "required": true, "schema": {"$ref": "#/definitions/main.addToCartRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.cartResponse"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/session/checkout": {
            "get": {
                "produces": ["application/json", "text/plain"],
                "summary": "Checkout summary",
                "security": [{"SessionCookie": []}],
                "parameters": [
                    {"type": "string", "enum": ["json", "text"], "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.checkoutResponse"}}
                }
            }
        },
        "/session/checkout/toggle": {
            "post": {
                "produces": ["application/json"],
                "summary": "Show or hide the checkout summary",
                "security": [{"SessionCookie": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.checkoutResponse"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.Listing": {
            "type": "object",
            "properties": {
                "ID": {"type": "string"},
                "Make": {"type": "string"},
                "Model": {"type": "string"},
                "Year": {"type": "integer"},
                "Terrain": {"type": "string", "enum": ["Road", "Offroad"]},
                "Displacement": {"type": "number"},
                "Price": {"type": "number"},
                "Description": {"type": "string"},
                "Image": {"type": "string"}
            }
        },
        "browse.Selection": {
            "type": "object",
            "properties": {
                "make": {"type": "string"},
                "terrain": {"type": "string"},
                "year": {"type": "string"},
                "sort": {"type": "string", "enum": ["", "price-asc", "price-desc", "year-asc", "year-desc"]},
                "search": {"type": "string"}
            }
        },
        "main.selectionRequest": {"$ref": "#/definitions/browse.Selection"},
        "main.optionsResponse": {
            "type": "object",
            "properties": {
                "makes": {"type": "array", "items": {"type": "string"}},
                "years": {"type": "array", "items": {"type": "integer"}},
                "terrains": {"type": "array", "items": {"type": "string"}},
                "sorts": {"type": "array", "items": {"type": "string"}}
            }
        },
        "main.sessionResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}}
        },
        "main.viewResponse": {
            "type": "object",
            "properties": {
                "selection": {"$ref": "#/definitions/browse.Selection"},
                "listings": {"type": "array", "items": {"$ref": "#/definitions/catalog.Listing"}},
                "message": {"type": "string"},
                "cartCount": {"type": "integer"},
                "showCheckout": {"type": "boolean"}
            }
        },
        "main.flipResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "flipped": {"type": "boolean"}}
        },
        "main.addToCartRequest": {
            "type": "object",
            "properties": {"listingId": {"type": "string"}}
        },
        "main.cartResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/catalog.Listing"}}
            }
        },
        "main.checkoutResponse": {
            "type": "object",
            "properties": {
                "visible": {"type": "boolean"},
                "lines": {"type": "array", "items": {"type": "object"}},
                "count": {"type": "integer"},
                "total": {"type": "string"},
                "formattedTotal": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {"type": "apiKey", "name": "session_id", "in": "cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8443",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Motorbikes API",
	Description:      "Browse, filter and sort the motorbike catalog and total a cart.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
