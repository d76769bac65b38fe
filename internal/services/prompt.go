package services

import (
	"encoding/json"
	"fmt"

	"gymlog-backend/internal/models"
)

const RowsSystemPrompt = `You are a Gym Workout Tracker parser.

Return a JSON object with a single key "rows" containing an array of workout rows.
Each row must include: exercise (string), set (integer), weightLbs (string), reps (string), notes (string).
If a field is missing, return an empty string.
If weights are mentioned, convert to numeric pounds with no units.
Set numbers must auto-increment per exercise based on existing rows provided.
Return only new rows inferred from the message.
Do not include extra keys, text, or markdown.`

const ReplySystemPrompt = `You are a Gym Workout Tracker assistant.

The user logs sets in plain language: exercise name, weight, reps and notes.
Reply naturally and briefly in plain text, restating what was logged.
If weights are mentioned, express them in pounds.
If the exercise, weight or reps are unclear, ask a short follow-up question.
Do not use markdown, tables or code blocks.`

type rowsContext struct {
	Message      string              `json:"message"`
	ExistingRows []models.WorkoutRow `json:"existing_rows"`
}

// buildRowsInput serializes the message and the caller's prior rows into
// the user turn of a structured request.
func buildRowsInput(req models.ChatRequest) (string, error) {
	existing := req.Rows
	if existing == nil {
		existing = []models.WorkoutRow{}
	}

	data, err := json.Marshal(rowsContext{Message: req.Message, ExistingRows: existing})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat context: %w", err)
	}
	return string(data), nil
}
