package narrative

import "strings"

// ChatReply is the response of the chat endpoint.
type ChatReply struct {
	Reply            string   `json:"reply"`
	SuggestedActions []string `json:"suggestedActions"`
}

type chatRule struct {
	matches func(lower string) bool
	reply   ChatReply
}

func containsAny(keywords ...string) func(string) bool {
	return func(s string) bool {
		for _, k := range keywords {
			if strings.Contains(s, k) {
				return true
			}
		}
		return false
	}
}

func containsAll(keywords ...string) func(string) bool {
	return func(s string) bool {
		for _, k := range keywords {
			if !strings.Contains(s, k) {
				return false
			}
		}
		return true
	}
}

// chatRules are evaluated in order; the first match wins.
var chatRules = []chatRule{
	{
		matches: containsAny("hysa", "high-yield", "savings account"),
		reply: ChatReply{
			Reply: "A HYSA (High-Yield Savings Account) offers higher interest rates than traditional savings accounts — often 4-5% APY. " +
				"It's a great place for your emergency fund or short-term savings goals. " +
				"Your money stays accessible while earning more. This is not financial advice.",
			SuggestedActions: []string{"If you don't have an emergency fund, start by saving $200–$500 in a HYSA."},
		},
	},
	{
		matches: containsAll("credit", "utilization"),
		reply: ChatReply{
			Reply: "Credit utilization is the percentage of your available credit that you're using. " +
				"Keeping it under 30% is generally recommended, and under 10% is ideal for boosting your credit score. " +
				"This is not financial advice.",
			SuggestedActions: []string{"Check your current credit card balances and aim to pay them down below 30% of your limit."},
		},
	},
	{
		matches: containsAny("budget", "budgeting"),
		reply: ChatReply{
			Reply: "A good starting point is the 50/30/20 rule: 50% of income for needs, 30% for wants, and 20% for savings. " +
				"As a student, your ratios might differ — the key is tracking consistently. This is not financial advice.",
			SuggestedActions: []string{"Review your current month's spending in the dashboard and see how it maps to 50/30/20."},
		},
	},
	{
		matches: containsAny("save", "saving"),
		reply: ChatReply{
			Reply: "Start small! Even $25/week adds up to $1,300/year. " +
				"Automate transfers to a savings account so you pay yourself first. This is not financial advice.",
			SuggestedActions: []string{"Set up a weekly $25 transfer to your savings goal."},
		},
	},
}

var chatFallback = ChatReply{
	Reply: "That's a great question! I'm BudgetU's financial literacy assistant. " +
		"I can help with topics like budgeting, saving, credit, and understanding financial terms. " +
		"Try asking about HYSAs, credit utilization, or budgeting strategies. This is not financial advice.",
	SuggestedActions: []string{"Explore the Education tab for financial literacy topics."},
}

// Chat answers a free-text question from a fixed set of replies.
func Chat(message string) ChatReply {
	lower := strings.ToLower(message)
	for _, rule := range chatRules {
		if rule.matches(lower) {
			return clone(rule.reply)
		}
	}
	return clone(chatFallback)
}

// clone keeps callers from mutating the shared rule table.
func clone(r ChatReply) ChatReply {
	return ChatReply{Reply: r.Reply, SuggestedActions: append([]string(nil), r.SuggestedActions...)}
}
