package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Academic Evaluation API",
        "description": "Exam marking, yearly grade rollups and academic summaries",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Marking", "description": "Bulk exam marking and result corrections"},
        {"name": "Grades", "description": "Yearly grade submission and rollups"},
        {"name": "Summaries", "description": "Lifetime and class examination summaries"},
        {"name": "Rosters", "description": "Class subject roster administration"}
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
        "/marking/bulk": {
            "post": {
                "tags": ["Marking"],
                "summary": "Submit marks for a whole exam schedule in one batch",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkMarksRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Schedule or student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/results/{id}": {
            "patch": {
                "tags": ["Marking"],
                "summary": "Correct a single exam result",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateResultRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Result not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}/results": {
            "get": {
                "tags": ["Marking"],
                "summary": "List results for a schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}/marking-sessions": {
            "get": {
                "tags": ["Marking"],
                "summary": "List bulk marking audit sessions for a schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/yearly": {
            "get": {
                "tags": ["Grades"],
                "summary": "List yearly grades with rollups recomputed from raw marks",
                "parameters": [
                    {"name": "studentId", "in": "query", "type": "string"},
                    {"name": "classNumber", "in": "query", "type": "integer"},
                    {"name": "year", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Grades"],
                "summary": "Submit or replace a student's yearly grade",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitYearlyGradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No roster for class", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/results": {
            "get": {
                "tags": ["Marking"],
                "summary": "List exam results for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/summary": {
            "get": {
                "tags": ["Summaries"],
                "summary": "Lifetime academic summary for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No yearly grades recorded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{classNumber}/examinations/{examId}/summary": {
            "get": {
                "tags": ["Summaries"],
                "summary": "Per-subject summary of one examination for a class",
                "parameters": [
                    {"name": "classNumber", "in": "path", "required": true, "type": "integer"},
                    {"name": "examId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No results recorded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{classNumber}/examinations/{examId}/summary/export": {
            "get": {
                "tags": ["Summaries"],
                "summary": "Export a class examination summary as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "classNumber", "in": "path", "required": true, "type": "integer"},
                    {"name": "examId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered file"}
                }
            }
        },
        "/rosters": {
            "get": {
                "tags": ["Rosters"],
                "summary": "List class subject rosters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/rosters/{classNumber}": {
            "get": {
                "tags": ["Rosters"],
                "summary": "Get a class subject roster",
                "parameters": [
                    {"name": "classNumber", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Roster not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Rosters"],
                "summary": "Create or replace a class subject roster",
                "parameters": [
                    {"name": "classNumber", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRosterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "MarkEntry": {
            "type": "object",
            "required": ["student_id"],
            "properties": {
                "student_id": {"type": "string"},
                "obtained_marks": {"type": "number"},
                "status": {"type": "string", "enum": ["absent"]},
                "remarks": {"type": "string"}
            }
        },
        "BulkMarksRequest": {
            "type": "object",
            "required": ["schedule_id", "marks"],
            "properties": {
                "schedule_id": {"type": "string"},
                "marks": {"type": "array", "items": {"$ref": "#/definitions/MarkEntry"}}
            }
        },
        "UpdateResultRequest": {
            "type": "object",
            "properties": {
                "obtained_marks": {"type": "number"},
                "status": {"type": "string", "enum": ["absent", "present"]},
                "remarks": {"type": "string"}
            }
        },
        "SubjectMarkInput": {
            "type": "object",
            "required": ["subject_id", "total_marks"],
            "properties": {
                "subject_id": {"type": "string"},
                "obtained_marks": {"type": "number"},
                "total_marks": {"type": "number"}
            }
        },
        "SubmitYearlyGradeRequest": {
            "type": "object",
            "required": ["student_id", "class_number", "subjects"],
            "properties": {
                "student_id": {"type": "string"},
                "class_number": {"type": "integer"},
                "year": {"type": "integer"},
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/SubjectMarkInput"}}
            }
        },
        "UpdateRosterRequest": {
            "type": "object",
            "required": ["subjects"],
            "properties": {
                "subjects": {"type": "array", "items": {"type": "string"}}
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
