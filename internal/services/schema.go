package services

import (
	"github.com/invopop/jsonschema"

	"gymlog-backend/internal/models"
)

// GenerateSchema reflects a strict schema: every property required, no
// additional properties, no $ref indirection.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var ChatResponseSchema = GenerateSchema[models.ChatResponse]()
