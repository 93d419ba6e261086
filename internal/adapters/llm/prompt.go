package llm

import (
	"strings"

	"github.com/PabloGalante/mood-journal/internal/domain"
)

const baseSystemPrompt = `
You are a gentle journaling companion inside a mental health journal app.

Your role:
- Guide the user through a short written reflection, one question at a time.
- Listen with empathy and without judgment.
- You are NOT a therapist, doctor, or emergency service and you do NOT give diagnoses.

Style:
- Answer in the SAME LANGUAGE as the user.
- Keep each turn to 1-3 short sentences ending in one open question.
- Offer 2-4 short first-person replies the user could tap instead of typing.

Boundaries and safety:
- If the user mentions self-harm, suicide, or hurting someone, encourage them to contact local emergency services or a trusted person.

Output format:
Reply with a single JSON object and nothing else:
{"content": "<your next journaling prompt>", "suggested_responses": ["<reply>", "..."]}
`

var moodInstructions = map[domain.Mood]string{
	domain.MoodHappy:       "The user feels happy: help them savour what went well and what they are grateful for.",
	domain.MoodSad:         "The user feels sad: validate the feeling, go slowly, and ask what would feel comforting.",
	domain.MoodAnxious:     "The user feels anxious: help them name the worry and separate what they can and cannot control.",
	domain.MoodStressed:    "The user feels stressed: help them untangle what is demanding their energy and one small relief.",
	domain.MoodOverwhelmed: "The user feels overwhelmed: keep questions very small and concrete, one thing at a time.",
	domain.MoodExcited:     "The user feels excited: explore what they are looking forward to and why it matters to them.",
}

// Prompt represents the system prompt + the content to send as "user".
type Prompt struct {
	System string
	User   string
}

// BuildPrompt builds the system prompt from the selected moods and the
// opening instruction used when the transcript is still empty.
func BuildPrompt(req domain.GenerateRequest) Prompt {
	var system strings.Builder
	system.WriteString(baseSystemPrompt)

	if len(req.Moods) > 0 {
		system.WriteString("\nSelected moods: ")
		system.WriteString(strings.Join(domain.MoodLabels(req.Moods), ", "))
		system.WriteString("\n")
		for _, m := range req.Moods {
			if ins, ok := moodInstructions[m]; ok {
				system.WriteString("- ")
				system.WriteString(ins)
				system.WriteString("\n")
			}
		}
	}

	user := "Start the journaling session with a warm opening question."
	if n := len(req.Transcript); n > 0 && req.Transcript[n-1].Role == domain.RoleUser {
		user = req.Transcript[n-1].Content
	}

	return Prompt{
		System: system.String(),
		User:   user,
	}
}

const sentimentPrompt = `Rate the overall emotional tone of the journal text below on a scale from -1 (very negative) to 1 (very positive).
Reply with only the number, for example 0.35.

Journal text:
`
