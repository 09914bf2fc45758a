// Package intent turns free-form query text into a structured Query with
// weighted keywords and intent categories.
//
// Extraction normally delegates to an ai.IntentExtractor. When the extractor
// is unavailable or returns nothing usable, the package falls back to naive
// stop-word-filtered tokenization with a uniform keyword weight and reports
// the request as degraded. A recommendation request therefore never fails
// because the language model is down.
package intent
