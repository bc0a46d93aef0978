package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "UniPlan API",
        "description": "University course timetabling service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Scheduler", "description": "Timetable generation runs"},
        {"name": "Schedules", "description": "Persisted timetable access and export"}
    ],
    "paths": {
        "/scheduler/generate": {
            "post": {
                "tags": ["Scheduler"],
                "summary": "Run timetable generation",
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"$ref": "#/definitions/RunScheduleRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Run result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"},
                    "412": {"description": "Missing scheduling data"}
                }
            }
        },
        "/scheduler/last-run": {
            "get": {
                "tags": ["Scheduler"],
                "summary": "Fetch the most recent scheduling run result",
                "responses": {
                    "200": {"description": "Cached run result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No run recorded"}
                }
            }
        },
        "/scheduler/status": {
            "get": {
                "tags": ["Scheduler"],
                "summary": "Report schedule completion status",
                "responses": {
                    "200": {"description": "Completion status", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List persisted schedule entries",
                "parameters": [
                    {"in": "query", "name": "day", "type": "string"},
                    {"in": "query", "name": "courseId", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Schedule entries", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/export": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Export the timetable as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered document"},
                    "400": {"description": "Unknown format"}
                }
            }
        }
    },
    "definitions": {
        "RunScheduleRequest": {
            "type": "object",
            "required": ["algorithm"],
            "properties": {
                "algorithm": {"type": "string", "enum": ["greedy", "genetic"]},
                "generations": {"type": "integer"},
                "populationSize": {"type": "integer"},
                "mutationRate": {"type": "number"},
                "seed": {"type": "integer"}
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
