package schema

// The six pillar worksheets of the SiteHustle curriculum, in course order.
// Section order matters: the progression tracker unlocks them one by one.
var pillars = [PillarCount]Pillar{
	{
		ID:    1,
		Slug:  "foundation",
		Title: "Foundation & Brand Identity",
		Sections: []Section{
			{
				Name:  "reflection",
				Title: "Reflection",
				Fields: []Field{
					{Path: "whoIAm", Label: "Who I am", Kind: KindText, Required: true},
					{Path: "whoIAmNot", Label: "Who I am not", Kind: KindText, Required: true},
					{Path: "whyBuildBrand", Label: "Why I am building this brand", Kind: KindText, Required: true},
				},
			},
			{
				Name:  "personality",
				Title: "Brand Personality",
				Fields: []Field{
					{Path: "archetype", Label: "Brand archetype", Kind: KindText, Required: true},
					{Path: "coreTraits", Label: "Core traits", Kind: KindTextArray, Required: true, MinItems: 3},
					{Path: "voiceTone", Label: "Voice and tone", Kind: KindText, Required: true},
					{Path: "brandValues", Label: "Brand values", Kind: KindTextArray},
				},
			},
			{
				Name:  "story",
				Title: "Brand Story",
				Fields: []Field{
					{Path: "origin", Label: "Origin story", Kind: KindText, Required: true},
					{Path: "turningPoint", Label: "Turning point", Kind: KindText, Required: true},
					{Path: "lessonLearned", Label: "Lesson learned", Kind: KindText, Required: true},
					{Path: "visionStatement", Label: "Vision statement", Kind: KindText},
				},
			},
			{
				Name:  "differentiation",
				Title: "Differentiation",
				Fields: []Field{
					{Path: "uniqueValue", Label: "Unique value", Kind: KindText, Required: true},
					{Path: "whatSetsMeApart", Label: "What sets me apart", Kind: KindText, Required: true},
					{Path: "competitorGaps", Label: "Competitor gaps", Kind: KindTextArray},
				},
			},
			{
				Name:  "executionRoadmap",
				Title: "Execution Roadmap",
				Fields: []Field{
					{Path: "thirtyDayGoal", Label: "30-day goal", Kind: KindText, Required: true},
					{Path: "weeklyMilestones", Label: "Weekly milestones", Kind: KindTextArray, Required: true, MinItems: 4},
					{Path: "contentPlan", Label: "Content plan", Kind: KindText, Required: true},
					{Path: "immediateActions", Label: "Immediate actions", Kind: KindTextArray, Required: true, MinItems: 3},
				},
			},
		},
	},
	{
		ID:    2,
		Slug:  "audience-offer",
		Title: "Audience & Offer",
		Sections: []Section{
			{
				Name:  "targetAudience",
				Title: "Target Audience",
				Fields: []Field{
					{
						Path: "idealCustomerProfile", Label: "Ideal customer profile", Kind: KindObject, Required: true,
						Children: []Field{
							{Path: "problem", Label: "Problem they face", Kind: KindText, Required: true},
							{Path: "demographics", Label: "Demographics", Kind: KindText, Required: true},
							{Path: "desires", Label: "Desires", Kind: KindText, Required: true},
							{Path: "objections", Label: "Objections", Kind: KindTextArray},
						},
					},
					{Path: "whereTheyGather", Label: "Where they gather", Kind: KindTextArray, Required: true},
				},
			},
			{
				Name:  "nicheClarity",
				Title: "Niche Clarity",
				Fields: []Field{
					{Path: "nicheStatement", Label: "Niche statement", Kind: KindText, Required: true},
					{Path: "topicsOwned", Label: "Topics I own", Kind: KindTextArray, Required: true, MinItems: 3},
					{Path: "topicsAvoided", Label: "Topics I avoid", Kind: KindTextArray},
				},
			},
			{
				Name:  "offer",
				Title: "Core Offer",
				Fields: []Field{
					{Path: "offerName", Label: "Offer name", Kind: KindText, Required: true},
					{Path: "transformation", Label: "Transformation promised", Kind: KindText, Required: true},
					{Path: "deliverables", Label: "Deliverables", Kind: KindTextArray, Required: true, MinItems: 3},
					{Path: "pricePoint", Label: "Price point", Kind: KindNumber, Required: true},
					{Path: "guarantee", Label: "Guarantee", Kind: KindText},
				},
			},
		},
	},
	{
		ID:    3,
		Slug:  "content-engine",
		Title: "Content Engine",
		Sections: []Section{
			{
				Name:  "contentPillars",
				Title: "Content Pillars",
				Fields: []Field{
					{Path: "pillars", Label: "Content pillars", Kind: KindTextArray, Required: true, MinItems: 3},
					{Path: "flagshipFormat", Label: "Flagship format", Kind: KindText, Required: true},
					{Path: "contentIdeas", Label: "Content ideas", Kind: KindTextArray, Required: true, MinItems: 5},
				},
			},
			{
				Name:  "productionCadence",
				Title: "Production Cadence",
				Fields: []Field{
					{Path: "postsPerWeek", Label: "Posts per week", Kind: KindNumber, Required: true},
					{Path: "batchDay", Label: "Batching day", Kind: KindText, Required: true},
					{Path: "repurposingPlan", Label: "Repurposing plan", Kind: KindText, Required: true},
				},
			},
			{
				Name:  "distribution",
				Title: "Distribution",
				Fields: []Field{
					{Path: "primaryPlatform", Label: "Primary platform", Kind: KindText, Required: true},
					{Path: "secondaryPlatforms", Label: "Secondary platforms", Kind: KindTextArray},
					{Path: "emailListGoal", Label: "Email list goal", Kind: KindNumber},
				},
			},
		},
	},
	{
		ID:    4,
		Slug:  "site-funnel",
		Title: "Site & Funnel",
		Sections: []Section{
			{
				Name:  "siteStructure",
				Title: "Site Structure",
				Fields: []Field{
					{Path: "domainName", Label: "Domain name", Kind: KindText, Required: true},
					{Path: "corePages", Label: "Core pages", Kind: KindTextArray, Required: true, MinItems: 3},
					{Path: "heroMessage", Label: "Hero message", Kind: KindText, Required: true},
				},
			},
			{
				Name:  "leadMagnet",
				Title: "Lead Magnet",
				Fields: []Field{
					{Path: "magnetTitle", Label: "Lead magnet title", Kind: KindText, Required: true},
					{Path: "magnetFormat", Label: "Format", Kind: KindText, Required: true},
					{Path: "promiseStatement", Label: "Promise statement", Kind: KindText, Required: true},
				},
			},
			{
				Name:  "emailFunnel",
				Title: "Email Funnel",
				Fields: []Field{
					{Path: "welcomeSequence", Label: "Welcome sequence emails", Kind: KindTextArray, Required: true, MinItems: 3},
					{Path: "callToAction", Label: "Call to action", Kind: KindText, Required: true},
					{Path: "nurtureCadence", Label: "Nurture cadence", Kind: KindText},
				},
			},
		},
	},
	{
		ID:    5,
		Slug:  "launch",
		Title: "Launch",
		Sections: []Section{
			{
				Name:  "launchGoal",
				Title: "Launch Goal",
				Fields: []Field{
					{Path: "revenueTarget", Label: "Revenue target", Kind: KindNumber, Required: true},
					{Path: "launchDate", Label: "Launch date", Kind: KindText, Required: true},
					{Path: "successMetric", Label: "Success metric", Kind: KindText, Required: true},
				},
			},
			{
				Name:  "promotionPlan",
				Title: "Promotion Plan",
				Fields: []Field{
					{Path: "channels", Label: "Promotion channels", Kind: KindTextArray, Required: true, MinItems: 2},
					{Path: "contentCountdown", Label: "Countdown content", Kind: KindTextArray, Required: true, MinItems: 3},
					{Path: "partnerships", Label: "Partnerships", Kind: KindTextArray},
				},
			},
			{
				Name:  "launchChecklist",
				Title: "Launch Checklist",
				Fields: []Field{
					{Path: "prelaunchTasks", Label: "Pre-launch tasks", Kind: KindTextArray, Required: true, MinItems: 5},
					{Path: "launchDayTasks", Label: "Launch-day tasks", Kind: KindTextArray, Required: true, MinItems: 3},
					{Path: "contingency", Label: "Contingency plan", Kind: KindText},
				},
			},
		},
	},
	{
		ID:    6,
		Slug:  "growth-systems",
		Title: "Growth & Systems",
		Sections: []Section{
			{
				Name:  "metricsReview",
				Title: "Metrics Review",
				Fields: []Field{
					{Path: "northStarMetric", Label: "North-star metric", Kind: KindText, Required: true},
					{Path: "reviewCadence", Label: "Review cadence", Kind: KindText, Required: true},
					{Path: "trackedNumbers", Label: "Numbers tracked weekly", Kind: KindTextArray, Required: true, MinItems: 3},
				},
			},
			{
				Name:  "systemsAutomation",
				Title: "Systems & Automation",
				Fields: []Field{
					{Path: "outsourceFirst", Label: "First task to outsource", Kind: KindText, Required: true},
					{Path: "automations", Label: "Automations", Kind: KindTextArray},
					{Path: "toolStack", Label: "Tool stack", Kind: KindTextArray},
				},
			},
			{
				Name:  "ninetyDayPlan",
				Title: "90-Day Plan",
				Fields: []Field{
					{Path: "ninetyDayGoal", Label: "90-day goal", Kind: KindText, Required: true},
					{Path: "monthlyThemes", Label: "Monthly themes", Kind: KindTextArray, Required: true, MinItems: 3},
					{Path: "commitmentStatement", Label: "Commitment statement", Kind: KindText, Required: true},
				},
			},
		},
	},
}

// Pillars returns all pillar schemas in course order.
func Pillars() []Pillar {
	out := make([]Pillar, PillarCount)
	copy(out, pillars[:])
	return out
}
