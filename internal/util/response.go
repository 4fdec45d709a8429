package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data part of a success payload.
type Response map[string]interface{}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data Response) {
	c.JSON(http.StatusCreated, data)
}

// Error writes a non-2xx response. The status code is the only
// machine-readable signal; the message is for display.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"error": msg})
}
