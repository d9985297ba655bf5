package rubric

// Default returns the built-in 10-criterion lecture rubric used when the
// config file does not declare its own.
func Default() Rubric {
	r, err := New([]Criterion{
		{
			Key:  "structure_clarity",
			Name: "Structure & Clarity",
			Levels: map[int]string{
				5: "Clear agenda, coherent thread, clean transitions",
				4: "Mostly clear, minor jumps",
				3: "Partially coherent, unsteady opening",
				2: "No recognizable flow, orientation missing",
				1: "Chaotic, no structure",
			},
		},
		{
			Key:  "explanation",
			Name: "Explanation Competence",
			Levels: map[int]string{
				5: "Complex topics explained simply, examples, precise answers",
				4: "Understandable, but partly abstract or rushed",
				3: "Partly clear, partly vague",
				2: "Superficial, evasive answers",
				1: "Incomprehensible, no explanation",
			},
		},
		{
			Key:  "practical_relevance",
			Name: "Practical Relevance",
			Levels: map[int]string{
				5: "Several concrete, immediately applicable examples",
				4: "Examples present, partly generic",
				3: "Few examples, often superficial",
				2: "Vague, little added value",
				1: "No practical relevance",
			},
		},
		{
			Key:  "interactivity",
			Name: "Interactivity",
			Levels: map[int]string{
				5: "Several genuine interactions (questions, group work, discussion)",
				4: "At least one interaction, but shallow",
				3: "Attempted, but cut short",
				2: "Hardly any interaction, only rhetorical questions",
				1: "No interaction",
			},
		},
		{
			Key:  "time_management",
			Name: "Time Management",
			Levels: map[int]string{
				5: "Schedule kept, breaks taken correctly",
				4: "Minor deviations",
				3: "Over or under time, but tolerable",
				2: "Clearly over time (>10-15 min)",
				1: "No time control",
			},
		},
		{
			Key:  "audience_fit",
			Name: "Audience Adaptation",
			Levels: map[int]string{
				5: "Perfectly beginner-friendly, no prior knowledge needed",
				4: "Largely suitable, isolated complex passages",
				3: "Mixed: partly accessible, partly abstract",
				2: "Mostly too hard or too shallow",
				1: "Audience completely missed",
			},
		},
		{
			Key:  "communication_style",
			Name: "Communication Style",
			Levels: map[int]string{
				5: "Clear, structured, motivating, appreciative",
				4: "Positive, minor weaknesses (filler words)",
				3: "Friendly, but monotone or insecure",
				2: "Bumpy, distant",
				1: "Negative, confusing",
			},
		},
		{
			Key:  "engagement",
			Name: "Engagement & Enthusiasm",
			Levels: map[int]string{
				5: "High energy, enthusiasm noticeable",
				4: "Engagement present, not sustained",
				3: "Making an effort, but routine or monotone",
				2: "Little passion",
				1: "Listless",
			},
		},
		{
			Key:  "empathy",
			Name: "Empathy & Participant Handling",
			Levels: map[int]string{
				5: "Very patient, every question taken seriously",
				4: "Friendly, some answers too short",
				3: "Respectful, at times dismissive or unclear",
				2: "Repeatedly impatient",
				1: "Disrespectful",
			},
		},
		{
			Key:  "technical_handling",
			Name: "Handling of Technical Issues",
			Levels: map[int]string{
				5: "Resolved confidently, no impact",
				4: "Minor disruptions, well handled",
				3: "Disruptions mildly impairing",
				2: "Considerable problems",
				1: "Session massively disturbed",
			},
		},
	})
	if err != nil {
		// The built-in rubric is a compile-time constant in spirit.
		panic(err)
	}
	return r
}
