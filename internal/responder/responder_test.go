package responder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReply_KeywordRouting(t *testing.T) {
	tests := []struct {
		name     string
		prompt   string
		contains string
	}{
		{"growth", "How do I get more likes?", "consistency is key"},
		{"followers", "I want more followers", "consistency is key"},
		{"trending", "What is trending right now?", "Trending Now"},
		{"hashtags", "Which hashtag should I use?", "Trending Now"},
		{"views", "How can I increase my reach?", "explode your views"},
		{"content", "What content should I post?", "perfect content"},
		{"timing", "When should I publish?", "Best Posting Times"},
		{"greeting", "hello there", "I'm ViralBud"},
		{"fallback", "any tips for my brand account?", "authentic storytelling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Reply(tt.prompt), tt.contains)
		})
	}
}

func TestReply_RuleOrder(t *testing.T) {
	// "followers" (first rule) wins over "trending" (second rule)
	reply := Reply("are followers trending?")
	assert.Contains(t, reply, "consistency is key")
}

func TestReply_OutOfScope(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{"weather", "What's the weather today?"},
		{"programming", "Write me some python"},
		{"arithmetic", "what is 2+2?"},
		{"arithmetic with spaces", "compute 10 * 3 please"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, OutOfScopeReply(), Reply(tt.prompt))
		})
	}
}

func TestReply_ForbiddenTopicWithSocialContext(t *testing.T) {
	// "health" alone is out of scope, but not when the prompt is about content
	reply := Reply("how do I grow a health content page?")
	assert.NotEqual(t, OutOfScopeReply(), reply)
}
