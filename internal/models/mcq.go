package model

// MCQOption est une option de réponse (A, B, C ou D)
type MCQOption struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// MCQuestion est une question à choix multiples générée
type MCQuestion struct {
	Question      string      `json:"question"`
	Options       []MCQOption `json:"options"`
	CorrectAnswer string      `json:"correct_answer"`
	Explanation   string      `json:"explanation"`
}
