package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Reservation Operations Console",
        "description": "Operator console for conflict review and weekly schedule staging",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Conflicts", "description": "Conflict review, grouping and remedies"},
        {"name": "Selection", "description": "Weekly schedule selection boards"},
        {"name": "Catalog", "description": "Course and room catalog passthrough"}
    ],
    "paths": {
        "/conflicts": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "List current conflicts",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "description": "Search term matching teacher or room names"},
                    {"name": "grouped", "in": "query", "type": "boolean", "description": "Return resource-centric groups"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/detect": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Run conflict detection with preview fallback",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/rooms": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "List candidate rooms for the change-room remedy",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/export": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Download the grouped conflict report",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        },
        "/conflicts/events/{id}/reschedule": {
            "put": {
                "tags": ["Conflicts"],
                "summary": "Reschedule a conflicting event and re-run detection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RescheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/events/{id}/change-room": {
            "put": {
                "tags": ["Conflicts"],
                "summary": "Move a conflicting event to another room and re-run detection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeRoomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/groups/{id}/dismiss": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Hide a conflict group for this session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Dismissed"}
                }
            }
        },
        "/conflicts/groups/restore": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Restore all dismissed conflict groups",
                "responses": {
                    "204": {"description": "Restored"}
                }
            }
        },
        "/selection/boards": {
            "post": {
                "tags": ["Selection"],
                "summary": "Open a selection board seeded from the course catalog",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/CreateBoardRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/boards/{id}": {
            "get": {
                "tags": ["Selection"],
                "summary": "Fetch a selection board",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Selection"],
                "summary": "Discard a selection board",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/selection/boards/{id}/filter": {
            "get": {
                "tags": ["Selection"],
                "summary": "List board entries passing the filter criteria",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "subject", "in": "query", "type": "string"},
                    {"name": "minCapacity", "in": "query", "type": "integer"},
                    {"name": "maxCapacity", "in": "query", "type": "integer"},
                    {"name": "durationHours", "in": "query", "type": "integer"},
                    {"name": "sessionsPerWeek", "in": "query", "type": "integer"},
                    {"name": "nameContains", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/boards/{id}/entries/{courseId}": {
            "patch": {
                "tags": ["Selection"],
                "summary": "Patch one board entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "courseId", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEntryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/boards/{id}/select-filtered": {
            "post": {
                "tags": ["Selection"],
                "summary": "Select every entry passing the filter criteria",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/boards/{id}/deselect-all": {
            "post": {
                "tags": ["Selection"],
                "summary": "Clear every selection on the board",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/boards/{id}/bulk-priority": {
            "post": {
                "tags": ["Selection"],
                "summary": "Assign consecutive priorities to the selected entries",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkPriorityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/boards/{id}/shuffle": {
            "post": {
                "tags": ["Selection"],
                "summary": "Randomly permute priorities over the selected entries",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/boards/{id}/preset": {
            "post": {
                "tags": ["Selection"],
                "summary": "Apply a named selection preset",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PresetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/boards/{id}/validate": {
            "get": {
                "tags": ["Selection"],
                "summary": "Check a board for submission readiness",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "weekStartDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Ready"},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/selection/boards/{id}/submit": {
            "post": {
                "tags": ["Selection"],
                "summary": "Submit a board to the scheduler",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/SubmitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List the course catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/rooms": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List the room inventory",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/refresh": {
            "post": {
                "tags": ["Catalog"],
                "summary": "Drop the cached catalog so the next read refetches",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "RescheduleRequest": {
            "type": "object",
            "required": ["date", "startTime", "endTime"],
            "properties": {
                "date": {"type": "string", "example": "2025-08-19"},
                "startTime": {"type": "string", "example": "08:30"},
                "endTime": {"type": "string", "example": "09:30"}
            }
        },
        "ChangeRoomRequest": {
            "type": "object",
            "required": ["roomId"],
            "properties": {
                "roomId": {"type": "integer"}
            }
        },
        "CreateBoardRequest": {
            "type": "object",
            "properties": {
                "weekStartDate": {"type": "string", "example": "2025-08-18"}
            }
        },
        "UpdateEntryRequest": {
            "type": "object",
            "properties": {
                "selected": {"type": "boolean"},
                "priority": {"type": "integer"},
                "studentCount": {"type": "integer"}
            }
        },
        "BulkPriorityRequest": {
            "type": "object",
            "required": ["start"],
            "properties": {
                "start": {"type": "integer"}
            }
        },
        "PresetRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "enum": ["core-subjects", "small-groups", "full-catalog"]}
            }
        },
        "SubmitRequest": {
            "type": "object",
            "properties": {
                "weekStartDate": {"type": "string"},
                "mode": {"type": "string", "enum": ["structured", "professional"]}
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
