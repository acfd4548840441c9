package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger - журнал запросов для dev-режима; в production запросы не пишутся.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${queryParams} | ${bytesSent}B ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
