package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>fintrack Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the public API surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "fintrack", "version": "v0.1.0" },
  "paths": {
    "/api/auth/register": {
      "post": {
        "summary": "Register a new user",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "201": { "description": "user created" }, "400": { "description": "validation failed or email in use" } }
      }
    },
    "/api/auth/login": {
      "post": {
        "summary": "Exchange credentials for a bearer token",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token and user summary" }, "400": { "description": "invalid credentials" } }
      }
    },
    "/api/auth/dashboard": {
      "get": { "summary": "Profile for the authenticated user", "responses": { "200": { "description": "user profile" }, "401": { "description": "missing bearer token" }, "403": { "description": "expired or invalid token" } } }
    },
    "/api/transactions": {
      "get": { "summary": "List transactions for the authenticated user", "responses": { "200": { "description": "transactions" } } },
      "post": { "summary": "Record an income or expense", "responses": { "201": { "description": "transaction created" }, "400": { "description": "validation failed" } } }
    },
    "/api/transactions/{id}": {
      "delete": { "summary": "Delete an owned transaction", "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/transactions/{id}/receipt": {
      "post": { "summary": "Attach a receipt file", "responses": { "201": { "description": "receipt stored" } } },
      "get": { "summary": "Time-limited receipt download URL", "responses": { "200": { "description": "url" }, "404": { "description": "no receipt" } } }
    },
    "/api/budgets": {
      "get": { "summary": "List budgets, optionally filtered by month and year", "responses": { "200": { "description": "budgets" } } },
      "post": { "summary": "Set a category budget", "responses": { "201": { "description": "budget created" }, "400": { "description": "validation failed" } } }
    },
    "/api/goals": {
      "get": { "summary": "List savings goals", "responses": { "200": { "description": "goals" } } },
      "post": { "summary": "Create a savings goal", "responses": { "201": { "description": "goal created" } } }
    },
    "/api/goals/{goalId}": {
      "put": { "summary": "Update a savings goal", "responses": { "200": { "description": "updated" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a savings goal", "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/reports/summary": {
      "get": { "summary": "Financial summary with budget status", "responses": { "200": { "description": "summary" } } }
    },
    "/api/reports/monthly-data": {
      "get": { "summary": "Recent monthly income and expense totals", "responses": { "200": { "description": "months" } } }
    },
    "/api/reports/{type}": {
      "get": { "summary": "Monthly or yearly report", "responses": { "200": { "description": "report rows" }, "400": { "description": "unknown report type" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
