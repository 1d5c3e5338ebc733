package logger

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	gray   = color.New(color.FgHiBlack)
	blue   = color.New(color.FgBlue)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	purple = color.New(color.FgMagenta)
)

func stamp() string {
	return time.Now().Format("15:04:05")
}

// Info log une information générale (bleu)
func Info(message string, args ...interface{}) {
	gray.Printf("[%s] ", stamp())
	blue.Printf("%s\n", fmt.Sprintf(message, args...))
}

// Success log un succès (vert)
func Success(message string, args ...interface{}) {
	gray.Printf("[%s] ", stamp())
	green.Printf("✓ %s\n", fmt.Sprintf(message, args...))
}

// Warning log un avertissement (jaune)
func Warning(message string, args ...interface{}) {
	gray.Printf("[%s] ", stamp())
	yellow.Printf("⚠ %s\n", fmt.Sprintf(message, args...))
}

// Error log une erreur (rouge)
func Error(message string, args ...interface{}) {
	gray.Printf("[%s] ", stamp())
	red.Printf("✗ %s\n", fmt.Sprintf(message, args...))
}

// Request log une requête HTTP avec son status et sa durée
func Request(method, path string, statusCode int, duration time.Duration) {
	statusColor := green
	switch {
	case statusCode >= 500:
		statusColor = red
	case statusCode >= 400:
		statusColor = yellow
	}

	gray.Printf("[%s] ", stamp())
	purple.Printf("%-6s ", method)
	fmt.Printf("%-40s ", path)
	statusColor.Printf("[%d] ", statusCode)
	gray.Printf("(%s)\n", duration.Round(time.Millisecond))
}
