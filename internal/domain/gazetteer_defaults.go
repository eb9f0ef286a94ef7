package domain

var defaultUSStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
	"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
	"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
	"New Hampshire", "New Jersey", "New Mexico", "New York",
	"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
	"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
	"West Virginia", "Wisconsin", "Wyoming",
}

var defaultUSStateAbbrevs = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

var defaultCountries = []string{
	"United States", "USA", "U.S.A.", "U.S.", "United States of America",
	"Canada", "Mexico", "England", "United Kingdom", "UK", "Scotland",
	"Wales", "Northern Ireland", "France", "Germany", "Belgium", "Italy",
	"Spain", "Portugal", "Netherlands", "Switzerland", "Austria", "Sweden",
	"Norway", "Finland", "Denmark", "Russia", "Soviet Union", "Japan",
	"China", "India", "Australia", "New Zealand", "Brazil", "Argentina",
	"Chile", "South Africa",
}

// defaultCountryAliases is applied once, not chained: "Soviet Union" becomes
// "Russia", which is not then rewritten to "Russian Federation".
var defaultCountryAliases = map[string]string{
	"USA":                      "United States",
	"U.S.A.":                   "United States",
	"U.S.":                     "United States",
	"US":                       "United States",
	"United States of America": "United States",
	"England":                  "United Kingdom",
	"Scotland":                 "United Kingdom",
	"Wales":                    "United Kingdom",
	"Northern Ireland":         "United Kingdom",
	"UK":                       "United Kingdom",
	"Russia":                   "Russian Federation",
	"Soviet Union":             "Russia",
}

// defaultAircraftRules is scanned in order. Rotorcraft and gliders come first
// so airframe words such as "Bell 206" or "ASK 21" are not shadowed by the
// broader engine families further down.
var defaultAircraftRules = []Rule{
	{Label: "Helicopter", Keywords: []string{
		"helicopter", "sikorsky", "bell 2", "bell 4", "bell uh", "eurocopter",
		"aerospatiale as3", "aerospatiale sa3", "as350", "as332", "mil mi-",
		"mi-8", "mi-17", "robinson r", "agusta", "westland", "hughes 369",
		"md 500", "kamov", "vertol", "chinook", "ch-46", "ch-47", "ch-53",
		"uh-1", "uh-60", "ah-64", "black hawk", "blackhawk", "super puma",
		"sea king", "bo 105", "bo-105", "gyrocopter", "autogiro",
	}},
	{Label: "Glider", Keywords: []string{
		"glider", "sailplane", "schleicher", "schempp", "schweizer sgs",
		"ask 21", "ask-21",
	}},
	{Label: "Amphibian/Seaplane", Keywords: []string{
		"seaplane", "floatplane", "float plane", "on floats", "flying boat",
		"amphibian", "amphibious", "catalina", "pby", "canadair cl-",
		"grumman goose", "grumman mallard", "albatross", "sunderland",
		"beriev", "be-200", "shin meiwa", "clipper",
	}},
	{Label: "Military", Keywords: []string{
		"military", "air force", "usaf", "royal air force", "navy", "army",
		"marine corps", "luftwaffe", "c-46", "c-47", "c-54", "c-119", "c-123",
		"c-124", "c-130", "c-133", "c-141", "c-5a", "c-17", "kc-135", "kc-10",
		"kc-97", "hercules", "transall", "b-17", "b-24", "b-25", "b-26",
		"b-29", "b-36", "b-47", "b-52", "f-4 ", "f-14", "f-15", "f-16",
		"f-18", "f/a-18", "f-86", "f-100", "f-104", "f-111", "mig-",
		"sukhoi su-", "p-3 ", "p-3c", "orion", "awacs", "bomber", "fighter",
		"tanker", "reconnaissance",
	}},
	{Label: "Jet", Keywords: []string{
		"boeing 7", "707", "727", "737", "747", "757", "767", "777", "787",
		"airbus", "a300", "a310", "a318", "a319", "a320", "a321", "a330",
		"a340", "a350", "a380", "mcdonnell douglas md-", "md-11", "md-8",
		"md-9", "dc-8", "dc-9", "dc-10", "l-1011", "tristar", "comet",
		"caravelle", "concorde", "trident", "bac 1-11", "bac one-eleven",
		"vc-10", "vc10", "fokker f-28", "fokker f28", "fokker 70",
		"fokker 100", "erj", "embraer 170", "embraer 175", "embraer 190",
		"embraer 195", "crj", "canadair regional jet", "learjet",
		"lear jet", "gulfstream", "citation", "falcon", "hs-125", "bae 146",
		"avro rj", "yak-40", "yak-42", "tu-104", "tu-124", "tu-134",
		"tu-144", "tu-154", "tu-204", "il-62", "il-76", "il-86", "il-96",
		"superjet", "arj21", "jetliner", "business jet", "regional jet",
	}},
	{Label: "Turboprop", Keywords: []string{
		"turboprop", "turbo-prop", "atr 42", "atr-42", "atr42", "atr 72",
		"atr-72", "atr72", "dash 8", "dhc-8", "q400", "dash 7", "dhc-7",
		"dhc-6", "twin otter", "saab 340", "saab 2000", "fokker f-27",
		"fokker f27", "fokker 50", "f-27", "fh-227", "bandeirante",
		"emb-110", "emb-120", "brasilia", "beech 1900", "beechcraft 1900",
		"king air", "jetstream", "shorts 330", "shorts 360", "short 330",
		"short 360", "let 410", "l-410", "cessna 208", "caravan", "pc-12",
		"an-12", "an-24", "an-26", "an-28", "an-32", "an-140", "ma60",
		"ma-60", "viscount", "vanguard", "l-188", "lockheed 188",
		"il-18", "britannia", "hs-748", "hs 748", "avro 748", "convair 580",
		"convair 600", "convair 640", "nord 262", "casa 212", "c-212",
		"cn-235", "dornier 228", "dornier 328", "do-228", "metro",
		"swearingen", "turbo commander", "p180",
	}},
	{Label: "Piston/Prop", Keywords: []string{
		"piston", "propeller", "cessna", "piper", "beech", "bonanza",
		"mooney", "cirrus", "dc-3", "dc-4", "dc-6", "dc-7", "constellation",
		"convair 240", "convair 340", "convair 440", "martin 2-0-2",
		"martin 4-0-4", "curtiss commando", "lodestar", "lockheed 10",
		"lockheed 14", "boeing 247", "boeing 307", "boeing 377",
		"stratocruiser", "dragon rapide", "de havilland dove",
		"de havilland heron", "il-14", "il-12", "li-2", "an-2",
		"beaver", "dhc-2", "dhc-3", "islander", "trislander", "stinson",
		"navion", "aero commander",
	}},
	{Label: "Vintage/Early", Keywords: []string{
		"tri-motor", "trimotor", "fokker f-vii", "fokker f.vii", "fokker f-10",
		"junkers", "ju-52", "ju 52", "zeppelin", "airship", "dirigible",
		"balloon", "blimp", "wright flyer", "wright", "curtiss", "biplane",
		"dh-4", "handley page", "farman", "latecoere", "travel air",
		"boeing 40", "boeing 80", "douglas m-2", "hindenburg", "breguet",
		"caudron", "avro 6", "de havilland dh-",
	}},
}

var defaultPhaseRules = []Rule{
	{Label: "Ground/Taxi", Keywords: []string{
		"taxiing", "taxi", "while parked", "was parked", "pushback",
		"push back", "at the gate", "on the ramp", "ground collision",
		"during engine start", "engine run-up",
	}},
	{Label: "Takeoff", Keywords: []string{
		"takeoff", "take-off", "take off", "taking off", "took off",
		"lifted off", "liftoff", "lift-off", "rejected takeoff",
		"aborted takeoff", "takeoff roll",
	}},
	{Label: "Initial climb", Keywords: []string{
		"initial climb", "climbing out", "climb out", "climb-out",
		"after liftoff", "after departure", "shortly after departing",
		"soon after departing",
	}},
	{Label: "Climb", Keywords: []string{
		"climb", "climbing", "ascent", "ascending",
	}},
	{Label: "Cruise", Keywords: []string{
		"cruise", "cruising", "en route", "enroute", "en-route",
		"flight level", "at altitude",
	}},
	{Label: "Descent", Keywords: []string{
		"descent", "descending", "descended", "began to descend",
		"let-down", "letdown",
	}},
	{Label: "Approach", Keywords: []string{
		"approach", "approaching", "on final", "glide slope", "glideslope",
		"glide path", "circling", "holding pattern",
	}},
	{Label: "Landing", Keywords: []string{
		"landing", "landed", "touchdown", "touch down", "touched down",
		"rollout", "overran the runway", "overrun", "runway excursion",
		"ran off the runway", "short of the runway", "undershot",
	}},
	{Label: "Go-around", Keywords: []string{
		"go-around", "go around", "went around", "missed approach",
		"balked landing", "aborted landing",
	}},
}

// defaultWeatherRules avoids bare substrings that occur inside unrelated
// words. " rain" does not hit "terrain" and " icy" does not hit "policy".
var defaultWeatherRules = []Rule{
	{Label: "Storm/Thunderstorm", Keywords: []string{
		"thunderstorm", "thunder", "lightning", "storm", "cumulonimbus",
		"tornado", "hurricane", "typhoon", "cyclone", "hailstone",
		"squall line",
	}},
	{Label: "Fog/Low visibility", Keywords: []string{
		"fog", "misty", "haze", "low visibility", "poor visibility",
		"reduced visibility", "limited visibility", "zero visibility",
		"low clouds", "low ceiling", "overcast",
		"instrument meteorological conditions", "imc",
	}},
	{Label: "Snow/Icy surface", Keywords: []string{
		"snow", "blizzard", "sleet", "slush", " icy", "ice-covered",
		"ice covered", "frozen runway", "whiteout",
	}},
	{Label: "Icing (in-flight)", Keywords: []string{
		"icing", "ice accumulation", "ice accretion", "ice on the wings",
		"ice buildup", "ice build-up", " iced", "freezing rain",
		"freezing drizzle", "de-ice", "deice",
	}},
	{Label: "Rain", Keywords: []string{
		" rain", "drizzle", "downpour", "showers", "precipitation",
		"wet runway",
	}},
	{Label: "Wind/Wind shear", Keywords: []string{
		"wind shear", "windshear", "microburst", "gusts", "gusty",
		"gusting", "crosswind", "cross wind", "tailwind", "strong wind",
		"high wind", "downdraft", "downdraught",
	}},
	{Label: "Turbulence", Keywords: []string{
		"turbulence", "turbulent", "rough air", "mountain wave",
	}},
	{Label: "Good/Visual conditions", Keywords: []string{
		"good weather", "fine weather", "clear weather", "clear skies",
		"clear sky", "visual meteorological", "vmc", "visual conditions",
		"good visibility", "weather was good", "cavok",
	}},
}

var defaultAdverseConditions = []string{
	"Storm/Thunderstorm",
	"Fog/Low visibility",
	"Snow/Icy surface",
	"Icing (in-flight)",
	"Rain",
	"Wind/Wind shear",
	"Turbulence",
}
