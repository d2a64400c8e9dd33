// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package prompts

import (
	"fmt"
	"strings"
)

const quizInstructions = `Generate 20 quiz questions that accurately assess the student's understanding of this skill and reveal gaps in their knowledge.

Instructions:
- Output only a valid JSON array inside a fenced code block tagged json. No explanations, no extra text.
- The array must contain exactly 20 objects.
- Each object has: id (string), question, options (keys "A" through "D"), correctAnswer (one of "A".."D"), userAnswer (always null), explanation.

Example output:

` + "```json" + `
[
  {
    "id": "1",
    "question": "What is a closure in JavaScript?",
    "options": {
      "A": "A function without return",
      "B": "A block of code",
      "C": "A function that retains access to its lexical scope",
      "D": "A variable declaration"
    },
    "correctAnswer": "C",
    "userAnswer": null,
    "explanation": "Closures allow functions to retain access to variables from their scope even after the outer function has returned."
  }
]
` + "```"

// QuizPrompt builds the quiz-generation prompt around the user's free-text
// skill description.
func QuizPrompt(userInput string) string {
	var b strings.Builder

	b.WriteString("A student is learning a skill but struggles with self-doubt. ")
	b.WriteString("They are not sure whether what they have learned is enough and lack confidence in their current knowledge. ")
	fmt.Fprintf(&b, "The skill they are learning, or their statement on that skill: %s\n\n", userInput)
	b.WriteString(quizInstructions)

	return b.String()
}

const analysisInstructions = `Instructions:
- Output only a valid JSON object inside a fenced code block tagged json. No explanations, no extra text.
- The object must have exactly these fields: strengths, areasForImprovement, studyTips, nextSteps (arrays of strings) and recommendedResources (array of {"title", "url"} objects).

Example output:

` + "```json" + `
{
  "strengths": ["Strong foundational knowledge of JavaScript syntax"],
  "areasForImprovement": ["Need more practice with asynchronous programming"],
  "studyTips": ["Practice with real-world projects to understand async operations"],
  "recommendedResources": [
    { "title": "JavaScript.info - Async/Await tutorial", "url": "https://javascript.info/async-await" }
  ],
  "nextSteps": ["Complete 5 practice problems on closures"]
}
` + "```"

// AnalysisPrompt builds the performance-analysis prompt from the student's
// answered quiz, serialized as JSON.
func AnalysisPrompt(answeredQuiz string) string {
	var b strings.Builder

	b.WriteString("A student was struggling with self-doubt in a particular skill and has completed a quiz on it. ")
	b.WriteString("Based on their answers, provide a detailed analysis of their performance, highlighting strengths and areas for improvement. ")
	b.WriteString("Offer personalized study tips to help them overcome self-doubt and build confidence in their knowledge of the skill.\n\n")
	fmt.Fprintf(&b, "The student's answers are as follows: %s\n\n", answeredQuiz)
	b.WriteString(analysisInstructions)

	return b.String()
}

// RoadmapPrompt builds the 5-day learning roadmap prompt from the student
// details, serialized as JSON.
func RoadmapPrompt(details string) string {
	var b strings.Builder

	b.WriteString("A student has been struggling with self-doubt in a specific skill area and has just completed a quiz related to that skill. ")
	b.WriteString("Using the student's answers, create a detailed and personalized 5-day learning roadmap designed to help them build confidence and master the skill.\n")
	fmt.Fprintf(&b, "Student details: %s\n\n", details)
	b.WriteString("Output only valid JSON inside a fenced code block tagged json. No explanations, no extra text.")

	return b.String()
}
