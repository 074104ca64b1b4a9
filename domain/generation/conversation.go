package generation

import (
	"github.com/pagesmith-app/pagesmith/pkg/llm"
)

// BuildConversation assembles the completion conversation. A fresh prompt
// becomes a single user turn; a modification replays the current artifact
// as an assistant turn so the model edits instead of starting over.
func BuildConversation(prompt string, existingCode *string) []llm.Message {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
	}

	if existingCode != nil && *existingCode != "" {
		messages = append(messages,
			llm.Message{Role: llm.RoleAssistant, Content: "Here's the current code:\n" + *existingCode},
			llm.Message{Role: llm.RoleUser, Content: "Please modify the above code: " + prompt},
		)
	} else {
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})
	}

	return messages
}
