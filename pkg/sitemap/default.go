package sitemap

// Default returns the built-in feature map of the Decentralized AI Hub.
// Each call returns a fresh copy.
func Default() *Map {
	return &Map{
		Title:    "Decentralized AI Hub",
		Subtitle: "Hybrid sitemap",
		Root:     "home",
		Features: defaultFeatures(),
		Layout: Layout{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Radius: DefaultRadius,
			Positions: map[string]Position{
				"home":      {X: 400, Y: 100},
				"profiles":  {X: 200, Y: 250},
				"resources": {X: 400, Y: 250},
				"events":    {X: 600, Y: 250},
				"news":      {X: 100, Y: 400},
				"external":  {X: 300, Y: 400},
				"search":    {X: 500, Y: 400},
				"contact":   {X: 700, Y: 400},
				"forum":     {X: 200, Y: 550},
				"projects":  {X: 400, Y: 550},
				"funding":   {X: 600, Y: 550},
			},
			Links: []Link{
				{From: "home", To: "profiles"},
				{From: "home", To: "resources"},
				{From: "home", To: "events"},
				{From: "profiles", To: "news"},
				{From: "resources", To: "external"},
				{From: "resources", To: "search"},
				{From: "events", To: "contact"},
				{From: "resources", To: "forum"},
				{From: "resources", To: "projects"},
				{From: "resources", To: "funding"},
			},
		},
	}
}

func defaultFeatures() []Feature {
	return []Feature{
		{
			ID:          "home",
			Name:        "Home Page",
			Description: "Central landing page for the Decentralized AI Hub.",
			Details:     "Provides an overview of the hub and quick access to all main features.",
			Kind:        KindInternal,
		},
		{
			ID:          "profiles",
			Name:        "User Profiles",
			Description: "Manage and view user profiles within the community.",
			Details:     "Essential for creating a sense of community and facilitating connections. Allows users to showcase their expertise and interests. Serves as a foundation for future features like collaboration matching.",
			Kind:        KindInternal,
		},
		{
			ID:          "resources",
			Name:        "Resource Library",
			Description: "Central repository for documents, papers, and tools.",
			Details:     "Provides immediate value to visitors and encourages return visits. Can be easily expanded over time with user contributions.",
			Kind:        KindInternal,
		},
		{
			ID:          "events",
			Name:        "Event Calendar",
			Description: "Track and manage community events and meetups.",
			Details:     "Keeps the community informed about relevant workshops, conferences, and meetups. Encourages engagement and networking. Can include both hub-hosted events and external events.",
			Kind:        KindInternal,
		},
		{
			ID:          "news",
			Name:        "News & Updates",
			Description: "Latest developments and announcements in decentralized AI.",
			Details:     "Keeps the site dynamic with fresh content. Provides a platform for sharing important developments in decentralized AI. Can start as a simple blog and evolve into a more comprehensive news section.",
			Kind:        KindInternal,
		},
		{
			ID:          "external",
			Name:        "External Resources",
			Description: "Links to external platforms and tools.",
			Details:     "Curated list of links to external platforms and tools (e.g., Discord for discussions, GitHub for projects). Serves as a navigation hub for the decentralized ecosystem. Easy to update and expand as you add more external integrations.",
			Kind:        KindInternal,
		},
		{
			ID:          "search",
			Name:        "Search Features",
			Description: "Find relevant information across the hub.",
			Details:     "Allows users to quickly find relevant resources, events, and profiles. Enhances user experience and the overall usefulness of the site. Can be expanded later to include more advanced filtering and sorting options.",
			Kind:        KindInternal,
		},
		{
			ID:          "contact",
			Name:        "Contact & Feedback",
			Description: "Communication channel for users and administrators.",
			Details:     "Provides a direct line of communication between users and hub administrators. Essential for gathering user feedback and continuously improving the platform. Can also serve as a starting point for those interested in partnerships or collaborations.",
			Kind:        KindInternal,
		},
		{
			ID:              "forum",
			Name:            "Community Forum",
			Description:     "External platform for community discussions.",
			Details:         "Hosted on an external platform like Discord or Discourse. Enables in-depth discussions and community engagement.",
			Kind:            KindExternal,
			RecommendedTool: "Discord",
			Integrations: []string{
				"Use Discord's API to display recent discussions on the main site",
				"Create a bot for cross-posting updates between the main site and Discord",
				"Implement a Discord widget on the main site showing active users or recent messages",
			},
		},
		{
			ID:              "projects",
			Name:            "Project Collaboration",
			Description:     "Platform for collaborative AI projects.",
			Details:         "Links to external platforms like GitHub for actual project collaboration. May include an internal project showcase or directory.",
			Kind:            KindExternal,
			RecommendedTool: "GitHub",
			Integrations: []string{
				"Use GitHub's API to display recent project activities on the main site",
				"Implement a project showcase on the main site, pulling data from GitHub repositories",
				"Create a bot for cross-posting updates between GitHub and the main site",
			},
		},
		{
			ID:              "funding",
			Name:            "Funding Opportunities",
			Description:     "Information on grants and investments for AI projects.",
			Details:         "Curated list of funding opportunities for decentralized AI projects. May start as an internal list and potentially move to a more robust external platform as the community grows.",
			Kind:            KindExternal,
			RecommendedTool: "Airtable",
			Integrations: []string{
				"Use Airtable's API to display current funding opportunities on the main site",
				"Create a submission form on the main site that pushes data to Airtable",
				"Set up automations to post new opportunities to Discord or the main site's news section",
			},
		},
	}
}
