package canon

// Alias tables are keyed by normalized text (see Normalize).

// DefaultIndustryAliases maps common industry spellings to canonical labels.
var DefaultIndustryAliases = map[string]string{
	"fintech":                 "FinTech",
	"fin tech":                "FinTech",
	"financial technology":    "FinTech",
	"financial services":      "FinTech",
	"finance":                 "FinTech",
	"payments":                "FinTech",
	"healthtech":              "HealthTech",
	"health tech":             "HealthTech",
	"healthcare":              "HealthTech",
	"health care":             "HealthTech",
	"digital health":          "HealthTech",
	"medtech":                 "HealthTech",
	"ai":                      "AI/ML",
	"ai/ml":                   "AI/ML",
	"ai ml":                   "AI/ML",
	"artificial intelligence": "AI/ML",
	"machine learning":        "AI/ML",
	"ml":                      "AI/ML",
	"saas":                    "SaaS",
	"software as a service":   "SaaS",
	"enterprise software":     "SaaS",
	"b2b software":            "SaaS",
	"edtech":                  "EdTech",
	"ed tech":                 "EdTech",
	"education":               "EdTech",
	"education technology":    "EdTech",
	"ecommerce":               "E-commerce",
	"e commerce":              "E-commerce",
	"online retail":           "E-commerce",
	"retail":                  "E-commerce",
	"cleantech":               "CleanTech",
	"clean tech":              "CleanTech",
	"climate":                 "CleanTech",
	"climate tech":            "CleanTech",
	"climatetech":             "CleanTech",
	"renewable energy":        "CleanTech",
	"energy":                  "CleanTech",
	"biotech":                 "BioTech",
	"bio tech":                "BioTech",
	"biotechnology":           "BioTech",
	"life sciences":           "BioTech",
	"agritech":                "AgriTech",
	"agtech":                  "AgriTech",
	"agriculture":             "AgriTech",
	"proptech":                "PropTech",
	"real estate":             "PropTech",
	"insurtech":               "InsurTech",
	"insurance":               "InsurTech",
	"cybersecurity":           "Cybersecurity",
	"cyber security":          "Cybersecurity",
	"security":                "Cybersecurity",
	"gaming":                  "Gaming",
	"games":                   "Gaming",
	"blockchain":              "Blockchain",
	"crypto":                  "Blockchain",
	"web3":                    "Blockchain",
	"logistics":               "Logistics",
	"supply chain":            "Logistics",
	"mobility":                "Mobility",
	"transportation":          "Mobility",
	"foodtech":                "FoodTech",
	"food tech":               "FoodTech",
	"food and beverage":       "FoodTech",
	"media":                   "Media",
	"entertainment":           "Media",
	"consumer":                "Consumer",
	"consumer goods":          "Consumer",
	"d2c":                     "Consumer",
	"dtc":                     "Consumer",
	"hardware":                "Hardware",
	"iot":                     "Hardware",
	"robotics":                "Robotics",
	"deeptech":                "DeepTech",
	"deep tech":               "DeepTech",
	"hr tech":                 "HRTech",
	"hrtech":                  "HRTech",
	"legaltech":               "LegalTech",
	"legal tech":              "LegalTech",
	"travel":                  "TravelTech",
	"traveltech":              "TravelTech",
	"travel tech":             "TravelTech",
}

// DefaultStageAliases maps common funding stage spellings to canonical labels.
var DefaultStageAliases = map[string]string{
	"pre seed":       "Pre-Seed",
	"preseed":        "Pre-Seed",
	"angel":          "Pre-Seed",
	"seed":           "Seed",
	"seed round":     "Seed",
	"series a":       "Series A",
	"a round":        "Series A",
	"series b":       "Series B",
	"b round":        "Series B",
	"series c":       "Series C",
	"c round":        "Series C",
	"series d":       "Series D",
	"series e":       "Series E",
	"growth":         "Growth",
	"growth stage":   "Growth",
	"late stage":     "Growth",
	"series c+":      "Growth",
	"pre ipo":        "Growth",
	"early stage":    "Seed",
	"bridge":         "Bridge",
	"debt":           "Debt",
	"debt financing": "Debt",
}

// Region maps normalized place keywords to a coarse geographic region.
type Region struct {
	Name     string
	Keywords []string
}

// DefaultRegions is the keyword table used in region mode.
// Regions are matched in order; the first hit wins.
var DefaultRegions = []Region{
	{
		Name: "North America",
		Keywords: []string{
			"usa", "us", "u s", "united states", "america", "canada",
			"new york", "nyc", "san francisco", "bay area", "silicon valley",
			"palo alto", "menlo park", "los angeles", "boston", "seattle",
			"austin", "chicago", "miami", "denver", "toronto", "vancouver",
			"montreal", "california", "texas",
		},
	},
	{
		Name: "Europe",
		Keywords: []string{
			"uk", "united kingdom", "england", "london", "germany", "berlin",
			"munich", "france", "paris", "netherlands", "amsterdam", "spain",
			"madrid", "barcelona", "sweden", "stockholm", "switzerland",
			"zurich", "ireland", "dublin", "italy", "milan", "europe",
			"finland", "helsinki", "denmark", "copenhagen", "estonia",
		},
	},
	{
		Name: "India",
		Keywords: []string{
			"india", "bangalore", "bengaluru", "mumbai", "delhi", "new delhi",
			"gurgaon", "gurugram", "noida", "hyderabad", "pune", "chennai",
			"kolkata", "ahmedabad", "jaipur",
		},
	},
	{
		Name: "Asia Pacific",
		Keywords: []string{
			"singapore", "china", "beijing", "shanghai", "shenzhen",
			"hong kong", "japan", "tokyo", "korea", "seoul", "indonesia",
			"jakarta", "vietnam", "australia", "sydney", "melbourne",
			"new zealand", "taiwan", "philippines", "malaysia", "thailand",
		},
	},
	{
		Name: "Middle East",
		Keywords: []string{
			"uae", "dubai", "abu dhabi", "israel", "tel aviv", "saudi arabia",
			"riyadh", "qatar", "doha", "bahrain",
		},
	},
	{
		Name: "Latin America",
		Keywords: []string{
			"brazil", "sao paulo", "mexico", "mexico city", "argentina",
			"buenos aires", "colombia", "bogota", "chile", "santiago",
		},
	},
	{
		Name: "Africa",
		Keywords: []string{
			"nigeria", "lagos", "kenya", "nairobi", "south africa",
			"cape town", "johannesburg", "egypt", "cairo", "ghana",
		},
	},
}
