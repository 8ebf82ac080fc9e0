// Package oracle adapts external vision-language services into the
// classifier oracle the game consumes: image bytes in, free-form waste
// description out.
package oracle

import "context"

// instructionPrompt is the fixed waste-sorting instruction sent with
// every image. The oracle is asked to name applicable categories
// verbatim; label extraction downstream depends on that phrasing.
const instructionPrompt = "You are a waste-sorting assistant. " +
	"Analyze the image and identify ALL items present. If people are present, analyze the item they are holding. If it is a container ASSUME IT IS EMPTY. " +
	"For each item or category of items, determine if it belongs to: trash, recycling, or compost. Prioritize analyzing and looking for items related to waste management. " +
	"List all applicable waste categories present in the image. If a category is NOT applicable, do NOT include that keyword in your response. " +
	"Format your response by clearly stating which categories apply (you can mention multiple), " +
	"then provide a friendly explanation of what you see and why each category is needed. " +
	"If no items in the image are related to waste management or recycling categories, do NOT include any of the keywords in your response."

// Classifier sends an image to a vision-language model and returns its
// free-form textual description of detected waste categories.
type Classifier interface {
	// Classify blocks until the oracle answers or ctx is done. The
	// returned text is unconstrained natural language; an answer that
	// names no category is a valid outcome, not an error.
	Classify(ctx context.Context, imageBytes []byte) (string, error)
}
