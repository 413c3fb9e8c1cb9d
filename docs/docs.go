// Package docs содержит описание API для swagger UI. Поддерживается вручную вместе с аннотациями
// обработчиков в internal/delivery/v1/http, маршруты сверяются тестом в этом пакете.
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
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Список товаров",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.ProductResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Владельцем становится текущий пользователь",
                "consumes": ["multipart/form-data", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Создание товара",
                "parameters": [
                    {"type": "string", "description": "Название", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Описание", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "description": "Цена", "name": "price", "in": "formData", "required": true},
                    {"type": "integer", "description": "Количество", "name": "quantity", "in": "formData", "required": true},
                    {"type": "integer", "description": "Категория", "name": "product_type_id", "in": "formData", "required": true},
                    {"type": "file", "description": "Изображение", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/http.ValidationErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/products/new": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Данные для формы создания товара",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CategoryOptionsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/products/types": {
            "get": {
                "description": "Категории без товаров не возвращаются",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Количество товаров по категориям",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.ProductTypeCountResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Карточка товара с владельцем",
                "parameters": [
                    {"type": "integer", "description": "ID товара", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ProductResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.CategoryOptionsResponse": {
            "type": "object",
            "properties": {
                "category_options": {"type": "array", "items": {"$ref": "#/definitions/usecase.CategoryOption"}}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "http.OwnerResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "id": {"type": "string"},
                "last_name": {"type": "string"}
            }
        },
        "http.ProductResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "image_key": {"type": "string"},
                "owner": {"$ref": "#/definitions/http.OwnerResponse"},
                "owner_id": {"type": "string"},
                "price": {"type": "string"},
                "product_type_id": {"type": "integer"},
                "quantity": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "http.ProductTypeCountResponse": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "product_type_id": {"type": "integer"},
                "quantity": {"type": "integer"}
            }
        },
        "http.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "category_options": {"type": "array", "items": {"$ref": "#/definitions/usecase.CategoryOption"}},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "usecase.CategoryOption": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "value": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Product Catalog API",
	Description:      "Каталог товаров: список, карточка, создание и статистика по категориям.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
