// Package swagger serves the hand-maintained OpenAPI document.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "rguHub Catalog API",
        "description": "Content catalog backend for the student resource portal",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Programs", "description": "Academic programs"},
        {"name": "Syllabi", "description": "Curriculum versions"},
        {"name": "Terms", "description": "Semesters and years"},
        {"name": "Subjects", "description": "Courses within a term"},
        {"name": "MaterialTypes", "description": "Material categories"},
        {"name": "Materials", "description": "Study materials"},
        {"name": "Recruitments", "description": "Job postings"},
        {"name": "Updates", "description": "Latest updates feed"}
    ],
    "paths": {
        "/programs": {
            "get": {
                "tags": ["Programs"],
                "summary": "List programs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Programs"],
                "summary": "Create program",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateProgramRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/programs/{id}": {
            "get": {
                "tags": ["Programs"],
                "summary": "Get program",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Programs"],
                "summary": "Delete program and everything beneath it",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/syllabi": {
            "get": {
                "tags": ["Syllabi"],
                "summary": "List syllabi",
                "parameters": [
                    {"name": "program_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Syllabi"],
                "summary": "Create syllabus",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSyllabusRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms": {
            "get": {
                "tags": ["Terms"],
                "summary": "List terms",
                "parameters": [
                    {"name": "syllabus_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Terms"],
                "summary": "Create term",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTermRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "description": "Unparseable sem or year values return an empty list.",
                "parameters": [
                    {"name": "course", "in": "query", "type": "string"},
                    {"name": "sem", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subjects/{id}": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Get subject",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete subject",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/material-types": {
            "get": {
                "tags": ["MaterialTypes"],
                "summary": "List material types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["MaterialTypes"],
                "summary": "Create material type",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMaterialTypeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/materials": {
            "get": {
                "tags": ["Materials"],
                "summary": "List materials",
                "parameters": [
                    {"name": "subject", "in": "query", "type": "string", "description": "Subject slug"},
                    {"name": "type", "in": "query", "type": "string", "description": "Material type slug"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Materials"],
                "summary": "Create link-only material",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMaterialRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/materials/upload": {
            "post": {
                "tags": ["Materials"],
                "summary": "Upload a material file",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "subject_id", "in": "formData", "required": true, "type": "string"},
                    {"name": "material_type_id", "in": "formData", "type": "string"},
                    {"name": "title", "in": "formData", "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Storage failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/materials/{id}": {
            "get": {
                "tags": ["Materials"],
                "summary": "Get material",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Materials"],
                "summary": "Update material",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateMaterialRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Materials"],
                "summary": "Delete material",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/materials/classify": {
            "post": {
                "tags": ["Materials"],
                "summary": "Schedule a material type backfill",
                "responses": {
                    "202": {"description": "Scheduled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/materials/{id}/download-url": {
            "get": {
                "tags": ["Materials"],
                "summary": "Issue a signed download URL",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/materials/download/{token}": {
            "get": {
                "tags": ["Materials"],
                "summary": "Download a material file",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"}
                }
            }
        },
        "/recruitments": {
            "get": {
                "tags": ["Recruitments"],
                "summary": "List job postings",
                "parameters": [
                    {"name": "program", "in": "query", "type": "string", "description": "Program short name"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Recruitments"],
                "summary": "Publish a job posting",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRecruitmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/latest-updates": {
            "get": {
                "tags": ["Updates"],
                "summary": "Latest catalog updates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateProgramRequest": {
            "type": "object",
            "required": ["name", "short_name", "duration_years"],
            "properties": {
                "name": {"type": "string"},
                "short_name": {"type": "string"},
                "duration_years": {"type": "integer"}
            }
        },
        "CreateSyllabusRequest": {
            "type": "object",
            "required": ["program_id", "name"],
            "properties": {
                "program_id": {"type": "string"},
                "name": {"type": "string"},
                "effective_from": {"type": "string", "format": "date-time"},
                "effective_to": {"type": "string", "format": "date-time"}
            }
        },
        "CreateTermRequest": {
            "type": "object",
            "required": ["syllabus_id", "term_number", "term_type", "name"],
            "properties": {
                "syllabus_id": {"type": "string"},
                "term_number": {"type": "integer"},
                "term_type": {"type": "string", "enum": ["SEMESTER", "YEAR"]},
                "name": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "CreateSubjectRequest": {
            "type": "object",
            "required": ["term_id", "code", "name", "subject_type"],
            "properties": {
                "term_id": {"type": "string"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "subject_type": {"type": "string", "enum": ["THEORY", "PRACTICAL", "CLINICAL"]},
                "slug": {"type": "string"}
            }
        },
        "CreateMaterialTypeRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "icon": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "CreateMaterialRequest": {
            "type": "object",
            "required": ["subject_id", "title", "url"],
            "properties": {
                "subject_id": {"type": "string"},
                "material_type_id": {"type": "string"},
                "title": {"type": "string"},
                "url": {"type": "string"},
                "description": {"type": "string"},
                "year": {"type": "integer"},
                "month": {"type": "string"}
            }
        },
        "UpdateMaterialRequest": {
            "type": "object",
            "properties": {
                "material_type_id": {"type": "string"},
                "title": {"type": "string"},
                "url": {"type": "string"},
                "description": {"type": "string"},
                "year": {"type": "integer"},
                "month": {"type": "string"},
                "is_active": {"type": "boolean"}
            }
        },
        "CreateRecruitmentRequest": {
            "type": "object",
            "required": ["program_id", "company_name", "position", "location", "job_type", "apply_link"],
            "properties": {
                "program_id": {"type": "string"},
                "company_name": {"type": "string"},
                "position": {"type": "string"},
                "location": {"type": "string"},
                "job_type": {"type": "string", "enum": ["FT", "PT", "IN"]},
                "description": {"type": "string"},
                "requirements": {"type": "string"},
                "salary": {"type": "string"},
                "deadline": {"type": "string", "format": "date-time"},
                "apply_link": {"type": "string"}
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
