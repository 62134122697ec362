package venue

// Default returns the built-in registry of Boulder-area venues.
func Default() *Registry {
	return NewRegistry([]*Venue{
		{
			Name:     "Velvet Elk Lounge",
			Location: "Boulder",
			Tags:     []string{"Music", "Live Music", "Bar", "Nightlife"},
			File:     "velvet_elk_events.json",
		},
		{
			Name:     "Junkyard Social Club",
			Location: "Boulder",
			Tags:     []string{"Community", "Arts", "Performance", "All Ages"},
			File:     "junkyard_events.json",
		},
		{
			Name:     "Mountain Sun Pubs",
			Location: "Boulder",
			Tags:     []string{"Music", "Pub", "Bar", "Food & Drink"},
			File:     "mountain_sun_events.json",
		},
		{
			Name:     "St Julien Hotel & Spa",
			Location: "Boulder",
			Tags:     []string{"Entertainment", "Hotel", "Upscale"},
			File:     "st_julien_events.json",
		},
		{
			Name:     "Trident Booksellers & Cafe",
			Location: "Boulder",
			Tags:     []string{"Books", "Literary", "Cafe", "Arts"},
			File:     "trident_events.json",
		},
		{
			Name:     "License No 1",
			Location: "Boulder",
			Tags:     []string{"Nightlife", "Bar", "21+"},
			File:     "license_no1_events.json",
		},
		{
			Name:     "Jungle",
			Location: "Boulder",
			Tags:     []string{"Music", "Live Music", "Bar", "Nightlife"},
			File:     "jungle_events.json",
		},
		{
			Name:     "Rosetta Hall",
			Location: "Boulder",
			Tags:     []string{"Music", "Nightlife", "Dance", "DJ", "21+"},
			File:     "rosetta_hall_events.json",
		},
		{
			Name:     "Gold Hill Inn",
			Location: "Gold Hill",
			Tags:     []string{"Live Music", "Restaurant", "Historic"},
			File:     "gold_hill_inn_events.json",
		},
		{
			Name:     "300 Suns Brewing",
			Location: "Longmont",
			Tags:     []string{"Brewery", "Live Music", "Family Friendly"},
			File:     "300_suns_events.json",
		},
		{
			Name:     "Bricks on Main",
			Location: "Longmont",
			Tags:     []string{"Community", "Retail", "Entertainment"},
			File:     "bricks_events.json",
		},
		{
			Name:     "Roots Music Project",
			Location: "Boulder",
			Tags:     []string{"Live Music", "Community"},
			File:     "roots_music_events.json",
		},
		{
			Name:     "eTown Hall",
			Location: "Boulder",
			Tags:     []string{"Music", "Live Music", "Concert Hall"},
			File:     "etown_events.json",
		},
		{
			Name:     "Z2 Entertainment",
			Location: "Boulder",
			Tags:     []string{"Music", "Live Music", "Concert", "Theater"},
			File:     "z2_entertainment_events.json",
		},
	})
}
