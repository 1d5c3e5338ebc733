package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	model "github.com/msrishav-28/eduflow-dev/internal/models"
)

// depthInstructions règle la longueur de la réponse du Q&A.
var depthInstructions = map[string]string{
	"concise":  "Provide a short, concise answer (1-2 sentences)",
	"balanced": "Provide a balanced answer with key details (3-4 sentences)",
	"detailed": "Provide a detailed, comprehensive answer with examples (5-7 sentences)",
}

// ValidDepth indique si la profondeur de réponse demandée est connue.
func ValidDepth(depth string) bool {
	_, ok := depthInstructions[depth]
	return ok
}

// BuildQAPrompt construit le prompt de question/réponse.
func BuildQAPrompt(question, depth string) string {
	instruction, ok := depthInstructions[depth]
	if !ok {
		instruction = depthInstructions["balanced"]
	}
	return fmt.Sprintf(`Answer the following question with clarity and accuracy.

Depth level: %s - %s

Question: %s

Provide a clear, structured answer:`, depth, instruction, question)
}

// BuildSummaryPrompt construit le prompt de résumé simple.
func BuildSummaryPrompt(text string, maxPoints int) string {
	return fmt.Sprintf(`Summarize the following text into %d key bullet points.
Keep each point concise and clear. Focus on the most important information.

Text:
%s

Provide the summary as a numbered list of bullet points:`, maxPoints, text)
}

// styleInstructions règle le format des résumés avancés.
func styleInstructions(style string, maxPoints int) string {
	switch style {
	case "short_notes":
		return fmt.Sprintf("Create %d very concise bullet point notes (5-10 words each). Focus on key facts only.", maxPoints)
	case "long_notes":
		return fmt.Sprintf("Create %d comprehensive detailed notes (2-3 sentences each). Include context and explanations.", maxPoints)
	case "bullet_points":
		return fmt.Sprintf("Create %d clear bullet points highlighting the main topics.", maxPoints)
	case "detailed":
		return fmt.Sprintf("Create %d detailed points with examples and explanations.", maxPoints)
	default: // balanced
		return fmt.Sprintf("Create %d balanced bullet points (1-2 sentences each). Include main ideas and key details.", maxPoints)
	}
}

// ValidStyle indique si le style de résumé demandé est connu.
func ValidStyle(style string) bool {
	switch style {
	case "short_notes", "long_notes", "balanced", "bullet_points", "detailed":
		return true
	}
	return false
}

// BuildStyledSummaryPrompt construit le prompt de résumé avancé (v2).
func BuildStyledSummaryPrompt(text, style string, maxPoints int) string {
	return fmt.Sprintf(`Summarize the following text.

%s

Text:
%s

Provide ONLY the bullet points, numbered 1-%d. No introduction or conclusion.`,
		styleInstructions(style, maxPoints), text, maxPoints)
}

// ParseBullets extrait les puces d'une réponse de résumé, au plus max.
func ParseBullets(response string, max int) []string {
	bullets := []string{}
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cleaned := strings.TrimLeft(line, "0123456789.-*•) ")
		cleaned = strings.TrimSpace(cleaned)
		if cleaned != "" {
			bullets = append(bullets, cleaned)
		}
		if len(bullets) == max {
			break
		}
	}
	return bullets
}

// BuildMCQTopicPrompt construit le prompt de QCM sur un sujet libre.
func BuildMCQTopicPrompt(topic string, numQuestions int) string {
	return fmt.Sprintf(`Generate %d multiple choice questions on the topic: %s

For each question, provide:
1. The question text
2. Four options (A, B, C, D)
3. The correct answer letter
4. A brief explanation

Format your response as JSON array with objects containing: "question", "options" (array of {letter, text}), "correct_answer", "explanation"

Example format:
[{"question": "...", "options": [{"letter": "A", "text": "..."}, ...], "correct_answer": "A", "explanation": "..."}]

Generate the questions now:`, numQuestions, topic)
}

var difficultyInstructions = map[string]string{
	"easy":   "straightforward questions about basic facts and definitions",
	"medium": "questions requiring understanding and interpretation",
	"hard":   "complex questions requiring analysis and application",
}

var questionTypeInstructions = map[string]string{
	"factual":     "questions about specific facts, dates, names, and definitions",
	"conceptual":  "questions about concepts, relationships, and understanding",
	"application": "questions requiring application of knowledge to scenarios",
	"mixed":       "a mix of factual, conceptual, and application questions",
}

// ValidDifficulty indique si la difficulté demandée est connue.
func ValidDifficulty(difficulty string) bool {
	_, ok := difficultyInstructions[difficulty]
	return ok
}

// ValidQuestionType indique si le type de question demandé est connu.
func ValidQuestionType(questionType string) bool {
	_, ok := questionTypeInstructions[questionType]
	return ok
}

// BuildMCQTextPrompt construit le prompt de QCM avancé (v2) sur un texte.
// Le texte source est tronqué pour tenir dans le contexte du modèle.
func BuildMCQTextPrompt(text string, numQuestions int, difficulty, questionType string) string {
	diff, ok := difficultyInstructions[difficulty]
	if !ok {
		diff = difficultyInstructions["medium"]
	}
	qt, ok := questionTypeInstructions[questionType]
	if !ok {
		qt = questionTypeInstructions["mixed"]
	}
	if len(text) > 3000 {
		text = text[:3000]
	}
	return fmt.Sprintf(`Generate %d multiple choice questions based on the following text.

Requirements:
- Difficulty: %s - %s
- Type: %s - %s
- Each question must have exactly 4 options (A, B, C, D)
- Clearly indicate the correct answer
- Provide a brief explanation for the correct answer

Text:
%s

Format your response as JSON array:
[
  {
    "question": "Question text here?",
    "options": [
      {"letter": "A", "text": "Option A"},
      {"letter": "B", "text": "Option B"},
      {"letter": "C", "text": "Option C"},
      {"letter": "D", "text": "Option D"}
    ],
    "correct_answer": "A",
    "explanation": "Explanation here"
  }
]

Generate the questions now:`, numQuestions, difficulty, diff, questionType, qt, text)
}

// ExtractJSONArray isole le premier tableau JSON d'une réponse de modèle.
func ExtractJSONArray(response string) string {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start != -1 && end > start {
		return response[start : end+1]
	}
	return response
}

// ParseMCQ décode la réponse JSON du modèle en questions, au plus max.
func ParseMCQ(response string, max int) ([]model.MCQuestion, error) {
	var questions []model.MCQuestion
	if err := json.Unmarshal([]byte(ExtractJSONArray(response)), &questions); err != nil {
		return nil, fmt.Errorf("parse MCQ response: %w", err)
	}
	if len(questions) > max {
		questions = questions[:max]
	}
	return questions, nil
}

// BuildCodeExplainPrompt construit le prompt d'explication de code.
func BuildCodeExplainPrompt(code, language string) string {
	return fmt.Sprintf("Explain the following %s code in detail.\n"+
		"Include:\n"+
		"1. What the code does at a high level\n"+
		"2. Explanation of key variables and functions\n"+
		"3. Step-by-step breakdown of logic\n"+
		"4. Any important patterns or concepts used\n"+
		"5. Potential improvements or edge cases to consider\n\n"+
		"Code:\n```%s\n%s\n```\n\n"+
		"Provide a clear, educational explanation:", language, language, code)
}
