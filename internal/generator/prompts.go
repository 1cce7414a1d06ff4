package generator

import (
	"fmt"

	"github.com/lernquiz/backend/internal/models"
)

var subjectDescriptions = map[string]string{
	models.SubjectMathematik:          "Grundschul-Mathematik: Rechnen, Geometrie, Sachaufgaben",
	models.SubjectDeutsch:             "Deutsch: Rechtschreibung, Grammatik, Leseverständnis",
	models.SubjectNaturwissenschaften: "Naturwissenschaften: Tiere, Pflanzen, Körper, Umwelt, einfache Physik",
	models.SubjectKunst:               "Kunst: Farben, berühmte Werke, Techniken, Musik",
	models.SubjectLogik:               "Logik: Muster, Reihen, Rätsel, räumliches Denken",
}

var difficultyDescriptions = map[models.Difficulty]string{
	models.DifficultyLeicht: "leicht — für Einsteiger, ein Lösungsschritt, vertraute Begriffe",
	models.DifficultyMittel: "mittel — zwei Lösungsschritte oder ein weniger vertrautes Konzept",
	models.DifficultySchwer: "schwer — mehrschrittig, verlangt Transfer auf neue Situationen",
}

// SystemPrompt frames the model as a question author for children.
func SystemPrompt() string {
	return `Du bist Autor von Quizfragen für eine Lernplattform für Kinder (8-12 Jahre).
Du schreibst klare, altersgerechte Multiple-Choice-Fragen auf Deutsch.
Jede Frage hat genau vier Antwortmöglichkeiten, von denen genau eine richtig ist.
Die falschen Antworten sind plausibel, aber eindeutig falsch.
Du antwortest ausschließlich mit einem JSON-Array, ohne Text davor oder danach.`
}

// BuildUserPrompt requests a batch for one subject/difficulty bucket.
func BuildUserPrompt(subject string, difficulty models.Difficulty, count int) string {
	return fmt.Sprintf(`Erstelle %d Quizfragen.

Fach: %s
Schwierigkeit: %s

Antwortformat (JSON-Array, keine Code-Fences):
[
  {
    "prompt": "Die Frage",
    "options": ["A", "B", "C", "D"],
    "answer_index": 0,
    "topic": "kurzes-themen-label",
    "explanation": "Warum die richtige Antwort stimmt, kindgerecht erklärt"
  }
]

answer_index ist der 0-basierte Index der richtigen Antwort in options.
topic ist ein kurzes kleingeschriebenes Label wie "addition" oder "rechtschreibung".`,
		count, subjectDescriptions[subject], difficultyDescriptions[difficulty])
}
