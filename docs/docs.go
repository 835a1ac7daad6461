// Package docs holds the Swagger document served at /swagger.
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
        "/events": {
            "get": {
                "description": "Server-Sent Events stream reporting every conversion as it finishes",
                "produces": [
                    "text/event-stream"
                ],
                "tags": [
                    "events"
                ],
                "summary": "Subscribe to conversion events",
                "responses": {
                    "200": {
                        "description": "SSE event stream",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns the health status of the API and its database",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "Service is healthy",
                        "schema": {
                            "$ref": "#/definitions/types.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Service is degraded",
                        "schema": {
                            "$ref": "#/definitions/types.HealthResponse"
                        }
                    }
                }
            }
        },
        "/convert": {
            "post": {
                "description": "Converts an SDF model to a Thing Model or Thing Description, or a Thing Model to SDF. The request body is the source document.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "convert"
                ],
                "summary": "Convert a document",
                "parameters": [
                    {
                        "enum": [
                            "sdf",
                            "tm",
                            "td"
                        ],
                        "type": "string",
                        "description": "Source kind",
                        "name": "from",
                        "in": "query",
                        "required": true
                    },
                    {
                        "enum": [
                            "sdf",
                            "tm",
                            "td"
                        ],
                        "type": "string",
                        "description": "Target kind, defaults to the profile target for SDF and to sdf otherwise",
                        "name": "to",
                        "in": "query"
                    },
                    {
                        "description": "Source document",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.ConvertResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid document or kind",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Unsupported conversion",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Conversion error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/validate": {
            "post": {
                "description": "Checks a document against the JSON schema of its kind without converting it",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "convert"
                ],
                "summary": "Validate a document",
                "parameters": [
                    {
                        "enum": [
                            "sdf",
                            "tm",
                            "td"
                        ],
                        "type": "string",
                        "description": "Document kind",
                        "name": "kind",
                        "in": "query",
                        "required": true
                    },
                    {
                        "description": "Document",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.ValidateResponse"
                        }
                    },
                    "400": {
                        "description": "Unknown kind",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/conversions": {
            "get": {
                "description": "Returns recorded conversions, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "conversions"
                ],
                "summary": "List conversions",
                "parameters": [
                    {
                        "enum": [
                            "succeeded",
                            "failed"
                        ],
                        "type": "string",
                        "description": "Filter by status",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "sdf",
                            "tm",
                            "td"
                        ],
                        "type": "string",
                        "description": "Filter by source kind",
                        "name": "kind",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum number of records (default 50, max 500)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.ListConversionsResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid filter",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Database error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/conversions/{id}": {
            "get": {
                "description": "Returns a single recorded conversion",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "conversions"
                ],
                "summary": "Get conversion",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Conversion ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.ConversionResponse"
                        }
                    },
                    "404": {
                        "description": "Conversion not found",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Database error",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "database": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "types.ConvertResponse": {
            "type": "object",
            "properties": {
                "document": {
                    "type": "object"
                },
                "duration_ms": {
                    "type": "integer"
                },
                "from": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                }
            }
        },
        "types.ValidateResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "kind": {
                    "type": "string"
                },
                "valid": {
                    "type": "boolean"
                }
            }
        },
        "types.Conversion": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "duration_ms": {
                    "type": "integer"
                },
                "error": {
                    "type": "string"
                },
                "from": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "input_size": {
                    "type": "integer"
                },
                "output_size": {
                    "type": "integer"
                },
                "profile_id": {
                    "type": "integer"
                },
                "source": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                }
            }
        },
        "types.ConversionResponse": {
            "type": "object",
            "properties": {
                "conversion": {
                    "$ref": "#/definitions/types.Conversion"
                }
            }
        },
        "types.ListConversionsResponse": {
            "type": "object",
            "properties": {
                "conversions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/types.Conversion"
                    }
                },
                "count": {
                    "type": "integer"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "sdfwot API",
	Description:      "REST API for converting between SDF models and WoT Thing Models and Thing Descriptions",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
