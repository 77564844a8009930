package models

// InterviewTopic is one entry in the fixed topic catalog. The catalog is
// presentation data; the service only needs ids and titles for prompts.
type InterviewTopic struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	QuestionsCount  int    `json:"questions_count"`
	DurationMinutes int    `json:"duration_minutes"`
}

var interviewTopics = []InterviewTopic{
	{
		ID:              "event-feedback",
		Title:           "Event Feedback",
		Description:     "Share your thoughts on the recent event.",
		QuestionsCount:  5,
		DurationMinutes: 5,
	},
	{
		ID:              "policy-hearing",
		Title:           "Policy Hearing",
		Description:     "Discuss your views on the new company policy.",
		QuestionsCount:  10,
		DurationMinutes: 15,
	},
	{
		ID:              "user-interview",
		Title:           "User Interview",
		Description:     "Help us improve our product with your feedback.",
		QuestionsCount:  7,
		DurationMinutes: 10,
	},
}

// Topics returns the full catalog.
func Topics() []InterviewTopic {
	out := make([]InterviewTopic, len(interviewTopics))
	copy(out, interviewTopics)
	return out
}

// TopicTitle resolves a topic id to its display title, falling back to the
// raw id for unknown topics so prompts still read sensibly.
func TopicTitle(id string) string {
	for _, t := range interviewTopics {
		if t.ID == id {
			return t.Title
		}
	}
	return id
}
