package openai

import (
	"fmt"
	"strings"

	"github.com/appscout/appscout/ai"
)

const intentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "keywords": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "term": {
            "type": "string",
            "pattern": "^[a-z]+( [a-z]+)*$"
          },
          "weight": {
            "type": "number",
            "minimum": 0,
            "maximum": 1
          }
        },
        "required": ["term", "weight"],
        "additionalProperties": false
      }
    },
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {
            "type": "string"
          },
          "confidence": {
            "type": "number",
            "minimum": 0,
            "maximum": 1
          }
        },
        "required": ["name", "confidence"],
        "additionalProperties": false
      }
    }
  },
  "required": ["keywords", "categories"],
  "additionalProperties": false
}`

const intentPromptTemplate = `Extract search keywords and intent categories from the user's app-discovery query and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Keyword terms must be lowercase, 1-3 words, singular form only.
- Weight is a number from 0 (barely relevant) to 1 (central to the query). Rate based on how essential the term is for finding a matching app.
- Category names must match exactly one of the listed values: %s.
- Include only keywords that are explicitly mentioned or clearly implied. Do not hallucinate.
- If lifestyle tags are appended after the query, treat them as weak additional keywords (weight below 0.4).
- If nothing can be extracted, return "keywords": [] and "categories": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "track my daily expenses and budget"
Output:
{
  "keywords": [
    {"term":"budget","weight":0.9},
    {"term":"expense","weight":0.9},
    {"term":"track","weight":0.7},
    {"term":"daily","weight":0.3}
  ],
  "categories": [
    {"name":"Finance","confidence":0.95}
  ]
}

Example (informal, no punctuation):
Input: "something to help me water my plants"
Output:
{
  "keywords": [
    {"term":"plant","weight":0.9},
    {"term":"water","weight":0.8},
    {"term":"reminder","weight":0.4}
  ],
  "categories": [
    {"name":"Gardening","confidence":0.9},
    {"name":"Lifestyle","confidence":0.4}
  ]
}`

const judgeResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "judgments": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {
            "type": "integer"
          },
          "relevance": {
            "type": "number",
            "minimum": 0,
            "maximum": 10
          },
          "confidence": {
            "type": "number",
            "minimum": 0,
            "maximum": 1
          },
          "explanation": {
            "type": "string"
          }
        },
        "required": ["id", "relevance", "confidence", "explanation"],
        "additionalProperties": false
      }
    }
  },
  "required": ["judgments"],
  "additionalProperties": false
}`

const judgePromptTemplate = `You judge how relevant candidate apps are to a user's query. For every candidate in the list, return a judgment as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Return exactly one judgment per candidate, carrying the candidate's numeric id unchanged.
- Relevance is 0 (unrelated) to 10 (a perfect answer to the query).
- Confidence is 0 to 1: how certain you are about the relevance score.
- Explanation is one short sentence naming what about the app matches the query. Mention matched terms when they exist.
- Judge against the query only; ignore app popularity.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// buildIntentPrompt creates the intent extraction system prompt with the
// category list embedded.
func buildIntentPrompt() string {
	return fmt.Sprintf(intentPromptTemplate,
		intentResponseSchema,
		strings.Join(ai.IntentCategories, ", "))
}

// buildJudgePrompt creates the relevance judgment system prompt.
func buildJudgePrompt() string {
	return fmt.Sprintf(judgePromptTemplate, judgeResponseSchema)
}

// buildJudgeInput renders the query and candidate batch as the user message.
func buildJudgeInput(query string, candidates []ai.JudgeCandidate) string {
	var sb strings.Builder
	sb.WriteString("Query: ")
	sb.WriteString(query)
	sb.WriteString("\n\nCandidates:\n")
	for _, c := range candidates {
		fmt.Fprintf(&sb, "- id=%d name=%q one_liner=%q categories=%s\n",
			c.Id, c.Name, c.OneLiner, strings.Join(c.Categories, "/"))
	}
	return sb.String()
}
