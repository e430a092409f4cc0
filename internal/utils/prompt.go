package utils

import (
	"fmt"
	"strings"
)

// URLSystemPrompt is the system message sent to chat models
const URLSystemPrompt = "You are a phishing detection system. Respond only with JSON."

const urlPromptFormat = `You are a phishing detection system. Decide whether the following URL leads to a phishing site.
Respond with a JSON object containing:
- phishing: string, exactly "Yes" if the URL is phishing or "No" if it is not
- explanation: string (brief explanation of the decision)

URL:
%s

Respond only with the JSON object and nothing else.`

// URLAnswer is the JSON object a model is asked to answer with
type URLAnswer struct {
	Phishing    string `json:"phishing"`
	Explanation string `json:"explanation"`
}

// URLPrompt renders the classification prompt for a normalized URL
func URLPrompt(url string) string {
	return fmt.Sprintf(urlPromptFormat, url)
}

// ParseURLAnswer extracts the model's answer. Only "Yes" and "No" are
// accepted, compared case-insensitively after trimming.
func ParseURLAnswer(text string) (phishing bool, explanation string, err error) {
	var answer URLAnswer
	if err := UnmarshalLenient(text, &answer); err != nil {
		return false, "", err
	}

	switch strings.ToLower(strings.TrimSpace(answer.Phishing)) {
	case "yes":
		return true, answer.Explanation, nil
	case "no":
		return false, answer.Explanation, nil
	default:
		return false, "", fmt.Errorf("unexpected phishing value %q", answer.Phishing)
	}
}
