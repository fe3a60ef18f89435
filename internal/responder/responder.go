// Package responder implements ViralBud, the keyword-routed growth
// assistant. Rules are evaluated in declaration order against the lowercased
// prompt; the first rule with a matching keyword wins.
package responder

import (
	"regexp"
	"strings"
)

const (
	outOfScopeReply = "I’m ViralBud — I only help with social media growth, trends, and content strategy. Please ask a social media–related question."
	fallbackReply   = "That's an interesting question! Generally, focusing on authentic storytelling and community building works best. Can you be more specific about your social media goals?"
)

type rule struct {
	keywords []string
	reply    string
}

var rules = []rule{
	{
		keywords: []string{"more likes", "followers", "growth", "engagement"},
		reply:    "To get more likes and followers, consistency is key! 🚀\n\n1. Post at least 3 times a week.\n2. Use high-quality visuals (videos perform 2x better).\n3. Engage with every comment in the first hour.\n4. Use trending hashtags like #fyp, #viral, and niche tags.",
	},
	{
		keywords: []string{"trending", "trend", "hashtag"},
		reply:    "🔥 Trending Now:\n\n• Short-form educational videos (Reels/Shorts)\n• 'Behind the Scenes' content\n• User Generated Content (UGC)\n• Interactive polls and Q&A posts.",
	},
	{
		keywords: []string{"views", "reach", "impression"},
		reply:    "To explode your views 📈:\n\n• Hook viewers in the first 3 seconds.\n• Post when your audience is most active (check the Engagement tab).\n• Collaborate with other creators in your niche.",
	},
	{
		keywords: []string{"content", "post", "caption", "hook"},
		reply:    "Let's find your perfect content! 🤔\n\nAre you an Educator, Entertainer, or Business?\n• Educator: How-to guides, tips, and industry news.\n• Entertainer: Skits, challenges, and storytelling.\n• Business: Product demos, testimonials, and offers.",
	},
	{
		keywords: []string{"time", "when"},
		reply:    "⏰ Best Posting Times:\n\n• Weekdays: 10 AM - 1 PM and 7 PM - 9 PM.\n• Weekends: 9 AM - 11 AM.\n• Check your specific audience insights for precision.",
	},
	{
		keywords: []string{"hello", "hi"},
		reply:    "Hello! I'm ViralBud 🤖. Ask me anything about growing your social media presence!",
	},
}

// Topics the assistant refuses unless the prompt also carries social-media
// context ("post", "content" or "media").
var forbiddenTopics = []string{
	"weather", "recipe", "math", "code", "java", "python", "programming",
	"politics", "medical", "health", "stock", "finance", "movie", "song",
	"joke", "life", "love", "dating", "sports", "game", "history", "science",
}

var arithmeticPattern = regexp.MustCompile(`\d+\s*[+\-*/]\s*\d+`)

func isOutOfScope(query string) bool {
	hasSocialContext := strings.Contains(query, "post") ||
		strings.Contains(query, "content") ||
		strings.Contains(query, "media")
	if !hasSocialContext {
		for _, topic := range forbiddenTopics {
			if strings.Contains(query, topic) {
				return true
			}
		}
	}
	return arithmeticPattern.MatchString(query)
}

// OutOfScopeReply returns the refusal text, so callers can distinguish
// refusals from answers.
func OutOfScopeReply() string { return outOfScopeReply }

// Reply answers a prompt. Out-of-scope prompts get a refusal; prompts that
// match no rule get the generic fallback.
func Reply(prompt string) string {
	query := strings.ToLower(prompt)

	if isOutOfScope(query) {
		return outOfScopeReply
	}

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(query, kw) {
				return r.reply
			}
		}
	}
	return fallbackReply
}
