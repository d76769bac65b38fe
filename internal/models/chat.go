package models

// WorkoutRow is one logged set of one exercise.
type WorkoutRow struct {
	Exercise  string `json:"exercise" jsonschema_description:"Exercise name, empty string if missing"`
	Set       int    `json:"set" jsonschema_description:"Set number, auto-incremented per exercise"`
	WeightLbs string `json:"weightLbs" jsonschema_description:"Weight in pounds as a bare number with no units, empty string if missing"`
	Reps      string `json:"reps" jsonschema_description:"Number of reps, empty string if missing"`
	Notes     string `json:"notes" jsonschema_description:"Free-form notes, empty string if missing"`
}

// ChatRequest is the payload sent to the chat endpoint.
// Rows carries the caller's full prior log; the server keeps no history.
type ChatRequest struct {
	Message string       `json:"message"`
	Rows    []WorkoutRow `json:"rows"`
}

// ChatResponse holds the rows inferred from a single message.
type ChatResponse struct {
	Rows []WorkoutRow `json:"rows" jsonschema_description:"Only the new rows inferred from the message"`
}

// ReplyResponse is the free-text chat reply.
type ReplyResponse struct {
	Reply string `json:"reply"`
}
