package canon

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Team size buckets, smallest first.
const (
	TeamSmall      = "Small"
	TeamMedium     = "Medium"
	TeamLarge      = "Large"
	TeamEnterprise = "Enterprise"
)

// Founded year buckets, youngest first.
const (
	YearNew         = "New"
	YearGrowing     = "Growing"
	YearEstablished = "Established"
)

// TeamBuckets lists the team size buckets in ordinal order.
var TeamBuckets = []string{TeamSmall, TeamMedium, TeamLarge, TeamEnterprise}

// YearBuckets lists the founded year buckets in ordinal order.
var YearBuckets = []string{YearNew, YearGrowing, YearEstablished}

const (
	// smallTeam stands in for qualitative forms like "under 10".
	smallTeam = 5

	// openEndedOffset is added to open-ended forms like "100+".
	openEndedOffset = 1

	newSince     = 2018
	growingSince = 2010
)

var (
	teamRange  = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:-|–|—|to)\s*(\d+(?:\.\d+)?)$`)
	teamNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

	openEndedPrefixes = []string{">=", ">", "over", "more than", "above", "at least"}
	smallPrefixes     = []string{"<=", "<", "under", "less than", "fewer than", "below", "up to"}
)

// ParseTeamSize extracts a head count from free text.
// It reports false when no usable number is present.
func ParseTeamSize(s string) (float64, bool) {
	text := strings.ToLower(strings.TrimSpace(s))
	text = strings.ReplaceAll(text, ",", "")
	text = strings.TrimSuffix(strings.TrimSpace(strings.TrimSuffix(text, "employees")), " people")
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	if m := teamRange.FindStringSubmatch(text); m != nil {
		lo, errLo := strconv.ParseFloat(m[1], 64)
		hi, errHi := strconv.ParseFloat(m[2], 64)
		if errLo != nil || errHi != nil {
			return 0, false
		}
		return (lo + hi) / 2, true
	}

	for _, p := range smallPrefixes {
		if strings.HasPrefix(text, p) && teamNumber.MatchString(text) {
			return smallTeam, true
		}
	}

	openEnded := strings.HasSuffix(text, "+")
	for _, p := range openEndedPrefixes {
		if strings.HasPrefix(text, p) {
			openEnded = true
			break
		}
	}
	if openEnded {
		n, err := strconv.ParseFloat(teamNumber.FindString(text), 64)
		if err != nil {
			return 0, false
		}
		return n + openEndedOffset, true
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// TeamBucket maps a team size to Small (<=10), Medium (<=50),
// Large (<=200) or Enterprise. Unparseable input yields Unknown.
func TeamBucket(s string) string {
	n, ok := ParseTeamSize(s)
	if !ok {
		return Unknown
	}
	switch {
	case n <= 10:
		return TeamSmall
	case n <= 50:
		return TeamMedium
	case n <= 200:
		return TeamLarge
	default:
		return TeamEnterprise
	}
}

// YearBucket maps a founding year to New (>=2018), Growing (>=2010) or
// Established. Non-numeric input yields Unknown.
func YearBucket(s string) string {
	year, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(year) || math.IsInf(year, 0) {
		return Unknown
	}
	switch {
	case year >= newSince:
		return YearNew
	case year >= growingSince:
		return YearGrowing
	default:
		return YearEstablished
	}
}
