package api

import (
	"encoding/json"                       // Partial update decoding
	"fitness_tracker/internal/domain"     // Domain models
	"fitness_tracker/internal/middleware" // Authenticated user accessor
	"fitness_tracker/internal/store"      // Workout aggregate
	"net/http"                            // HTTP status codes
	"time"                                // Response timestamps

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// EntryRequest is one exercise entry in a workout payload
type EntryRequest struct {
	ExerciseID uint     `json:"exerciseId"` // Catalog id
	Sets       int      `json:"sets"`       // Must be > 0
	Reps       int      `json:"reps"`       // Must be > 0
	Weight     *float64 `json:"weight"`     // Optional, kg
	Notes      *string  `json:"notes"`      // Optional
}

// CreateWorkoutRequest represents a new workout
type CreateWorkoutRequest struct {
	Name      string         `json:"name" binding:"required"` // Workout name
	Date      string         `json:"date"`                    // Lenient timestamp, defaults to now
	Duration  *int           `json:"duration"`                // Minutes, optional
	Exercises []EntryRequest `json:"exercises"`               // Entries
}

// EntryResponse is an entry with its exercise resolved at read time
type EntryResponse struct {
	ExerciseID    uint     `json:"exerciseId"`
	ExerciseName  string   `json:"exerciseName"`
	ExerciseImage string   `json:"exerciseImage"`
	Sets          int      `json:"sets"`
	Reps          int      `json:"reps"`
	Weight        *float64 `json:"weight"`
	Notes         string   `json:"notes"`
}

// WorkoutResponse is the workout shape returned to clients
type WorkoutResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Date      time.Time       `json:"date"`
	Duration  *int            `json:"duration"`
	Exercises []EntryResponse `json:"exercises"`
}

func toEntryInputs(reqs []EntryRequest) []domain.EntryInput {
	entries := make([]domain.EntryInput, len(reqs))
	for i, r := range reqs {
		entries[i] = domain.EntryInput{
			ExerciseID: r.ExerciseID,
			Sets:       r.Sets,
			Reps:       r.Reps,
			Weight:     r.Weight,
			Notes:      r.Notes,
		}
	}
	return entries
}

func toWorkoutResponse(w domain.Workout) WorkoutResponse {
	resp := WorkoutResponse{
		ID:        w.ID,
		Name:      w.Name,
		Date:      w.Date.UTC(),
		Duration:  w.Duration,
		Exercises: make([]EntryResponse, len(w.Entries)),
	}
	for i, e := range w.Entries {
		resp.Exercises[i] = EntryResponse{
			ExerciseID:    e.ExerciseID,
			ExerciseName:  e.ExerciseName,
			ExerciseImage: e.ExerciseImage,
			Sets:          e.Sets,
			Reps:          e.Reps,
			Weight:        e.Weight,
			Notes:         e.Notes,
		}
	}
	return resp
}

// decodePatch reads a partial update, telling absent keys from explicit values
func decodePatch(raw map[string]json.RawMessage) (domain.WorkoutPatch, error) {
	var patch domain.WorkoutPatch
	if v, ok := raw["name"]; ok {
		if err := json.Unmarshal(v, &patch.Name); err != nil {
			return patch, err
		}
	}
	if v, ok := raw["date"]; ok {
		if err := json.Unmarshal(v, &patch.Date); err != nil {
			return patch, err
		}
	}
	if v, ok := raw["duration"]; ok {
		if err := json.Unmarshal(v, &patch.Duration); err != nil {
			return patch, err
		}
		patch.DurationSet = true
	}
	if v, ok := raw["exercises"]; ok {
		var reqs []EntryRequest
		if err := json.Unmarshal(v, &reqs); err != nil {
			return patch, err
		}
		patch.EntriesSet = true
		patch.Entries = toEntryInputs(reqs)
	}
	return patch, nil
}

// requireUser fetches the authenticated user or answers 401
func requireUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return user, ok
}

// ListWorkoutsHandler returns the user's workouts, newest first
func ListWorkoutsHandler(workouts *store.Workouts) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}
		list, err := workouts.List(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err, "", "Failed to fetch workouts", logrus.Fields{"user_id": user.ID})
			return
		}
		resp := make([]WorkoutResponse, len(list))
		for i, w := range list {
			resp[i] = toWorkoutResponse(w)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetWorkoutHandler returns one of the user's workouts
func GetWorkoutHandler(workouts *store.Workouts) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workout not found"})
			return
		}
		workout, err := workouts.Get(c.Request.Context(), user.ID, id)
		if err != nil {
			respondError(c, err, "Workout not found", "Failed to fetch workout", logrus.Fields{"user_id": user.ID, "workout_id": id})
			return
		}
		c.JSON(http.StatusOK, toWorkoutResponse(*workout))
	}
}

// CreateWorkoutHandler stores a workout with its entries
func CreateWorkoutHandler(workouts *store.Workouts) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c) // Get authenticated user from context
		if !ok {
			return
		}
		var req CreateWorkoutRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Store workout and entries in one transaction
		workout, err := workouts.Create(c.Request.Context(), user.ID, domain.WorkoutInput{
			Name:     req.Name,
			Date:     req.Date,
			Duration: req.Duration,
			Entries:  toEntryInputs(req.Exercises),
		})
		if err != nil {
			respondError(c, err, "", "Failed to create workout", logrus.Fields{"user_id": user.ID}) // Validation is 400, anything else 500
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":    user.ID,              // Owner
			"workout_id": workout.ID,           // New workout
			"entries":    len(workout.Entries), // Entry count
		}).Info("Workout created")
		c.JSON(http.StatusCreated, gin.H{"id": workout.ID, "message": "Workout created successfully"}) // Return new workout id
	}
}

// UpdateWorkoutHandler applies a partial update to one of the user's workouts
func UpdateWorkoutHandler(workouts *store.Workouts) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c) // Get authenticated user from context
		if !ok {
			return
		}
		id, ok := pathID(c) // Parse workout id from path
		if !ok {
			// Non-numeric ids cannot exist
			c.JSON(http.StatusNotFound, gin.H{"error": "Workout not found"})
			return
		}
		var raw map[string]json.RawMessage // Keep raw values to tell absent keys from null
		if err := c.ShouldBindJSON(&raw); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		patch, err := decodePatch(raw) // Decode only the keys that were sent
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Apply update; someone else's workout is reported as missing
		workout, err := workouts.Update(c.Request.Context(), user.ID, id, patch)
		if err != nil {
			respondError(c, err, "Workout not found", "Failed to update workout", logrus.Fields{"user_id": user.ID, "workout_id": id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Workout updated successfully", "workout": toWorkoutResponse(*workout)}) // Return updated workout
	}
}

// DeleteWorkoutHandler removes one of the user's workouts
func DeleteWorkoutHandler(workouts *store.Workouts) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workout not found"})
			return
		}
		if err := workouts.Delete(c.Request.Context(), user.ID, id); err != nil {
			respondError(c, err, "Workout not found", "Failed to delete workout", logrus.Fields{"user_id": user.ID, "workout_id": id})
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "workout_id": id}).Info("Workout deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Workout deleted successfully"})
	}
}
