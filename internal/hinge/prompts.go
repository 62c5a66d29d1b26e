package hinge

// Mapeo questionId -> texto del prompt, extraído del asset prompts.json del
// cliente móvil. La tabla es data versionada, no lógica: un id desconocido
// degrada a string vacío y el caller conserva el id crudo.
var promptTexts = map[string]string{
	"c5e2e1c3-0d58-4b3f-8b2a-1f4a9d6e7b10": "My simple pleasures",
	"7f2c1a9e-3b44-4c8d-9e01-2d5b8c6f4a22": "A shower thought I recently had",
	"1d9b4e2f-6a77-4f05-b3c8-9e0a5d1c7f33": "The way to win me over is",
	"8a3f5c1d-2e66-49b2-a7d4-0c9b6e8f2a44": "I geek out on",
	"4e7a2d9c-5f11-4b86-8c3e-1a0d7b5e9f55": "Together, we could",
	"b6c8e0a2-7d33-4f59-91b4-3e5a8c0d2f66": "Two truths and a lie",
	"9f1d3b5e-8c22-4a70-b6d9-4f7e0a2c8b77": "Dating me is like",
	"2c4e6a8d-9b55-4d18-a3f0-5b1c7e9d4a88": "I'll fall for you if",
	"e8b0d2f4-1a66-4c39-97e2-6d3f5a7c1b99": "My most irrational fear",
	"5a7c9e1b-4d88-4e60-82f5-7c0b2d4f6eaa": "Typical Sunday",
}

// PromptText devuelve el texto del prompt o "" si el id no está mapeado.
func PromptText(questionID string) string {
	return promptTexts[questionID]
}
