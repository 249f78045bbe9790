package api

import (
	"fitness_tracker/internal/domain" // Domain models
	"fitness_tracker/internal/store"  // Exercise catalog
	"net/http"                        // HTTP status codes
	"strconv"                         // Path parameter parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateExerciseRequest represents a catalog addition
type CreateExerciseRequest struct {
	Name        string `json:"name" binding:"required"` // Display name
	Category    string `json:"category"`                // Defaults to Other
	Muscle      string `json:"muscle"`                  // Muscles worked
	Description string `json:"description"`             // Free text
	Image       string `json:"image"`                   // Emoji or image URL
}

// pathID parses a numeric :id parameter
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ListExercisesHandler returns the whole catalog
func ListExercisesHandler(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		exercises, err := catalog.List(c.Request.Context())
		if err != nil {
			respondError(c, err, "", "Failed to fetch exercises", nil)
			return
		}
		c.JSON(http.StatusOK, exercises)
	}
}

// GetExerciseHandler returns one catalog entry
func GetExerciseHandler(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
			return
		}
		exercise, err := catalog.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Exercise not found", "Failed to fetch exercise", nil)
			return
		}
		c.JSON(http.StatusOK, exercise)
	}
}

// CreateExerciseHandler adds an entry to the shared catalog
func CreateExerciseHandler(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateExerciseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		exercise, err := catalog.Create(c.Request.Context(), domain.ExerciseInput{
			Name:        req.Name,
			Category:    req.Category,
			Muscle:      req.Muscle,
			Description: req.Description,
			Image:       req.Image,
		})
		if err != nil {
			respondError(c, err, "", "Failed to create exercise", nil)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": exercise.ID, "message": "Exercise created successfully"})
	}
}
