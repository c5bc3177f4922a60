package core

import "testing"

func TestHeuristicScore(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{
			name: "benign chat",
			text: "see you at lunch tomorrow",
			want: 0,
		},
		{
			name: "urgency plus financial",
			text: "urgent: your bank account needs attention",
			want: 4,
		},
		{
			name: "otp phish with link",
			text: "your account is blocked, share otp and click http://fake.example to verify",
			want: 10,
		},
		{
			name: "reward bait",
			text: "congratulations you won a lottery prize",
			want: 3,
		},
		{
			name: "action verb alone",
			text: "please confirm the meeting time",
			want: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HeuristicScore(tc.text); got != tc.want {
				t.Errorf("HeuristicScore(%q) = %d, want %d", tc.text, got, tc.want)
			}
		})
	}
}

func TestHeuristicScoreCategoriesCountOnce(t *testing.T) {
	single := HeuristicScore("urgent request")
	repeated := HeuristicScore("urgent urgent immediately hurry now")
	if single != repeated {
		t.Errorf("repeated urgency words scored %d, single scored %d", repeated, single)
	}
}

func TestQuickTriage(t *testing.T) {
	scammerHistory := []Message{
		{Sender: SenderScammer, Text: "your account will be suspended today"},
	}
	userHistory := []Message{
		{Sender: SenderUser, Text: "my bank account is fine thanks"},
	}

	cases := []struct {
		name    string
		text    string
		history []Message
		want    Triage
	}{
		{
			name: "high score is scam outright",
			text: "urgent: verify your bank account or it will be blocked",
			want: TriageScam,
		},
		{
			name: "low score is safe",
			text: "lunch at noon?",
			want: TriageSafe,
		},
		{
			name:    "borderline without prior signals",
			text:    "please update your payment details",
			history: nil,
			want:    TriageBorderline,
		},
		{
			name:    "borderline escalates on scammer history",
			text:    "please update your payment details",
			history: scammerHistory,
			want:    TriageScam,
		},
		{
			name:    "user history does not escalate",
			text:    "please update your payment details",
			history: userHistory,
			want:    TriageBorderline,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := QuickTriage(tc.text, tc.history); got != tc.want {
				t.Errorf("QuickTriage = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTriageString(t *testing.T) {
	if TriageScam.String() != "scam" || TriageSafe.String() != "safe" || TriageBorderline.String() != "borderline" {
		t.Error("unexpected triage labels")
	}
}
