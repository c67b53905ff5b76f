// Package docs registers the OpenAPI document served under /swagger.
//
// Regenerate with `swag init -g main.go -o docs` after changing handler
// annotations.
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
        "/user/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/controllers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/controllers.FieldErrorsResponse"}}
                }
            }
        },
        "/user/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Obtain an access and refresh token pair",
                "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/controllers.TokenObtainRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.TokenPairResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/controllers.DetailResponse"}}
                }
            }
        },
        "/user/token/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange a refresh token for a new access token",
                "parameters": [{"in": "body", "name": "token", "required": true, "schema": {"$ref": "#/definitions/controllers.TokenRefreshRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.TokenRefreshResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/controllers.DetailResponse"}}
                }
            }
        },
        "/user/token/verify": {
            "post": {
                "tags": ["auth"],
                "summary": "Check that a token is valid",
                "parameters": [{"in": "body", "name": "token", "required": true, "schema": {"$ref": "#/definitions/controllers.TokenVerifyRequest"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/controllers.DetailResponse"}}
                }
            }
        },
        "/user/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Blacklist a refresh token",
                "parameters": [{"in": "body", "name": "token", "required": true, "schema": {"$ref": "#/definitions/controllers.LogoutRequest"}}],
                "responses": {"205": {"description": "Reset Content"}, "400": {"description": "Bad Request"}}
            }
        },
        "/user/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user's account",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.UserResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Replace the current user's account fields",
                "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/controllers.RegisterRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.UserResponse"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Update some of the current user's account fields",
                "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/controllers.RegisterRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.UserResponse"}}}
            }
        },
        "/user/users": {
            "get": {
                "tags": ["users"],
                "summary": "List users",
                "parameters": [
                    {"type": "string", "description": "Filter by username (ex. ?username=user1)", "name": "username", "in": "query"},
                    {"type": "string", "description": "Filter by first_name (ex. ?first_name=Brad)", "name": "first_name", "in": "query"},
                    {"type": "string", "description": "Filter by last_name (ex. ?last_name=Pitt)", "name": "last_name", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.PaginatedResponse"}}}
            }
        },
        "/user/users/{id}": {
            "get": {
                "tags": ["users"],
                "summary": "Retrieve a user",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.UserDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/controllers.DetailResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/controllers.DetailResponse"}}}
            }
        },
        "/user/activity": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Last login and last request of the current user",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/user/validate/username/{username}": {
            "get": {
                "tags": ["users"],
                "summary": "Check whether a username is taken",
                "parameters": [{"type": "string", "name": "username", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ExistsResponse"}}}
            }
        },
        "/user/validate/email/{email}": {
            "get": {
                "tags": ["users"],
                "summary": "Check whether an email is registered",
                "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ExistsResponse"}}}
            }
        },
        "/user/posts": {
            "get": {
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "string", "description": "Filter by author username (ex. ?username=user1)", "name": "username", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.PaginatedResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Create a post",
                "parameters": [{"in": "body", "name": "post", "required": true, "schema": {"$ref": "#/definitions/controllers.CreatePostRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.PostListItem"}}}
            }
        },
        "/user/posts/{id}": {
            "get": {
                "tags": ["posts"],
                "summary": "Retrieve a post",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.PostDetail"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Replace a post's text",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "post", "required": true, "schema": {"$ref": "#/definitions/controllers.CreatePostRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.PostListItem"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Update a post",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "post", "required": true, "schema": {"$ref": "#/definitions/controllers.CreatePostRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.PostListItem"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["posts"],
                "summary": "Delete a post",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/user/posts/{id}/like": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["interactions"],
                "summary": "Like a post",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/user/posts/{id}/dislike": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["interactions"],
                "summary": "Dislike a post",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/user/posts/{id}/upload-image": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["posts"],
                "summary": "Attach an image to a post",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "file", "name": "media_image", "in": "formData", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.MediaImageResponse"}}}
            }
        },
        "/user/likes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["interactions"],
                "summary": "List likes",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.PaginatedResponse"}}}
            }
        },
        "/user/analytics/likes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Count likes in a period",
                "parameters": [
                    {"type": "string", "description": "Start date (YYYY-MM-DD)", "name": "date_from", "in": "query"},
                    {"type": "string", "description": "End date (YYYY-MM-DD)", "name": "date_to", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        }
    },
    "definitions": {
        "controllers.CreatePostRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {"text": {"type": "string", "maxLength": 255}}
        },
        "controllers.DetailResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "detail": {"type": "string"}}
        },
        "controllers.ExistsResponse": {
            "type": "object",
            "properties": {"exists": {"type": "boolean"}}
        },
        "controllers.FieldErrorsResponse": {
            "type": "object",
            "additionalProperties": {"type": "array", "items": {"type": "string"}}
        },
        "controllers.LogoutRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "controllers.MediaImageResponse": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "media_image": {"type": "string"}}
        },
        "controllers.PaginatedResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "next": {"type": "string"},
                "previous": {"type": "string"},
                "results": {}
            }
        },
        "controllers.PostDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_username": {"type": "string"},
                "text": {"type": "string"},
                "media_image": {"type": "string"},
                "created_at": {"type": "string"},
                "likes_count": {"type": "integer"},
                "dislikes_count": {"type": "integer"}
            }
        },
        "controllers.PostListItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_username": {"type": "string"},
                "text": {"type": "string"},
                "media_image": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "controllers.RegisterRequest": {
            "type": "object",
            "required": ["username", "password", "first_name", "last_name"],
            "properties": {
                "username": {"type": "string", "maxLength": 60},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "first_name": {"type": "string", "maxLength": 60},
                "last_name": {"type": "string", "maxLength": 60},
                "bio": {"type": "string"}
            }
        },
        "controllers.TokenObtainRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "controllers.TokenPairResponse": {
            "type": "object",
            "properties": {"access": {"type": "string"}, "refresh": {"type": "string"}}
        },
        "controllers.TokenRefreshRequest": {
            "type": "object",
            "required": ["refresh"],
            "properties": {"refresh": {"type": "string"}}
        },
        "controllers.TokenRefreshResponse": {
            "type": "object",
            "properties": {"access": {"type": "string"}, "refresh": {"type": "string"}}
        },
        "controllers.TokenVerifyRequest": {
            "type": "object",
            "required": ["token"],
            "properties": {"token": {"type": "string"}}
        },
        "controllers.UserDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "bio": {"type": "string"}
            }
        },
        "controllers.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "bio": {"type": "string"},
                "is_staff": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Social API",
	Description:      "Users, posts, likes and dislikes with JWT authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
