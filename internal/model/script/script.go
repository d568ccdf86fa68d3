package script

// AgentName is the concierge persona presented to prospects.
const AgentName = "Luma"

// WelcomeLine opens every session transcript.
const WelcomeLine = "Welcome to Nova Wardrobe — I'm " + AgentName + ", here to help craft fits that hit just right."

// Script returns the intake sequence. The list is fixed at startup; no step
// is added or removed during a session.
func Script() []Step {
	return []Step{
		{
			ID:          "name",
			Kind:        KindShortText,
			Prompt:      "Hey there! I'm " + AgentName + ", your style scout. What's your first name?",
			Placeholder: "Alex",
		},
		{
			ID:          "email",
			Kind:        KindEmail,
			Prompt:      "Perfect. Where should we send your personalized lookbook?",
			Helper:      "We only send 1-2 drops a month. No spam, promise.",
			Placeholder: "alex@email.com",
		},
		{
			ID:       "style",
			Kind:     KindChoice,
			Prompt:   "Which vibe feels most you right now?",
			Multiple: true,
			Options: []Option{
				{Value: "streetwear", Label: "Streetwear Edge"},
				{Value: "minimal", Label: "Minimal Essentials"},
				{Value: "luxury", Label: "Luxury Staples"},
				{Value: "athleisure", Label: "Elevated Athleisure"},
				{Value: "bold", Label: "Bold Statements"},
			},
		},
		{
			ID:     "fit",
			Kind:   KindChoice,
			Prompt: "What are you building your closet for?",
			Options: []Option{
				{Value: "daily", Label: "Everyday rotation"},
				{Value: "work", Label: "Creative workspace"},
				{Value: "events", Label: "Night out / events"},
				{Value: "travel", Label: "Travel-ready fits"},
			},
		},
		{
			ID:     "budget",
			Kind:   KindChoice,
			Prompt: "Got a budget range in mind for your next refresh?",
			Options: []Option{
				{Value: "under-150", Label: "Under $150"},
				{Value: "150-300", Label: "$150 - $300"},
				{Value: "300-600", Label: "$300 - $600"},
				{Value: "over-600", Label: "$600+"},
			},
		},
		{
			ID:          "notes",
			Kind:        KindLongText,
			Prompt:      "Any brands or pieces you're hunting for right now?",
			Helper:      "Give me keywords, fabrics, colors... anything helps.",
			Placeholder: "E.g. Washed black denim jacket, oversized knit, neutral cargos...",
		},
	}
}
