package game

import (
	"fmt"
	"strings"
)

// predicate decides whether a player satisfies one stat category.
type predicate func(PlayerProfile) bool

// statLabels is the fixed stat half of the category catalog, in catalog order.
// It must stay in exact 1:1 correspondence with statPredicates; NewCatalog
// enforces that at construction and catalog_test re-checks it.
var statLabels = []string{
	"All-Stars",
	"MVP Winners",
	"Championship Winners",
	"DPOY Winners",
	"Rookie of the Year Winners",
	"6th Man Award Winners",

	"1+ Championship",
	"2+ Championships",

	"1+ All-Star Selection",
	"3+ All-Star Selections",
	"5+ All-Star Selections",

	"25+ PPG Career",
	"20+ PPG Career",
	"15+ PPG Career",
	"10+ PPG Career",
	"5+ PPG Career",
	"Under 5 PPG Career",

	"10+ RPG Career",
	"8+ RPG Career",
	"5+ RPG Career",
	"3+ RPG Career",
	"Under 3 RPG Career",

	"8+ APG Career",
	"5+ APG Career",
	"3+ APG Career",
	"1+ APG Career",
	"Under 1 APG Career",

	"1.5+ SPG Career",
	"1+ SPG Career",
	"0.5+ SPG Career",

	"1.5+ BPG Career",
	"1+ BPG Career",
	"0.5+ BPG Career",

	"Lottery Pick",
	"Undrafted",

	"Drafted in 2010s",
	"Drafted in 2000s",
	"Drafted in 1990s",
	"Drafted Before 1990",
	"Drafted 2015 or Later",
	"Drafted 2010 or Earlier",

	"10+ Years in League",
	"5-9 Years in League",
	"0-4 Years in League",
	"Rookie (1 Year)",

	"Went to a College with State in its Name",
	"Went to a College with Michigan in its Name",

	"20+ PPG and 5+ APG",
	"10+ RPG and 1+ BPG",
	"5+ APG and 1+ SPG",
	"Champion Without All-Star",
}

// statPredicates maps each stat label to its closed-form check. Thresholds are
// part of the label text itself, so the table is the single source of truth.
var statPredicates = map[string]predicate{
	"All-Stars":                  func(p PlayerProfile) bool { return p.AllStars > 0 },
	"MVP Winners":                func(p PlayerProfile) bool { return p.MVPs > 0 },
	"Championship Winners":       func(p PlayerProfile) bool { return p.Rings > 0 },
	"DPOY Winners":               func(p PlayerProfile) bool { return p.DPOYs > 0 },
	"Rookie of the Year Winners": func(p PlayerProfile) bool { return p.RookieOfTheYear },
	"6th Man Award Winners":      func(p PlayerProfile) bool { return p.SixthManAwards > 0 },

	"1+ Championship":  func(p PlayerProfile) bool { return p.Rings >= 1 },
	"2+ Championships": func(p PlayerProfile) bool { return p.Rings >= 2 },

	"1+ All-Star Selection":  func(p PlayerProfile) bool { return p.AllStars >= 1 },
	"3+ All-Star Selections": func(p PlayerProfile) bool { return p.AllStars >= 3 },
	"5+ All-Star Selections": func(p PlayerProfile) bool { return p.AllStars >= 5 },

	"25+ PPG Career":     func(p PlayerProfile) bool { return p.PPG >= 25 },
	"20+ PPG Career":     func(p PlayerProfile) bool { return p.PPG >= 20 },
	"15+ PPG Career":     func(p PlayerProfile) bool { return p.PPG >= 15 },
	"10+ PPG Career":     func(p PlayerProfile) bool { return p.PPG >= 10 },
	"5+ PPG Career":      func(p PlayerProfile) bool { return p.PPG >= 5 },
	"Under 5 PPG Career": func(p PlayerProfile) bool { return p.PPG < 5 },

	"10+ RPG Career":     func(p PlayerProfile) bool { return p.RPG >= 10 },
	"8+ RPG Career":      func(p PlayerProfile) bool { return p.RPG >= 8 },
	"5+ RPG Career":      func(p PlayerProfile) bool { return p.RPG >= 5 },
	"3+ RPG Career":      func(p PlayerProfile) bool { return p.RPG >= 3 },
	"Under 3 RPG Career": func(p PlayerProfile) bool { return p.RPG < 3 },

	"8+ APG Career":      func(p PlayerProfile) bool { return p.APG >= 8 },
	"5+ APG Career":      func(p PlayerProfile) bool { return p.APG >= 5 },
	"3+ APG Career":      func(p PlayerProfile) bool { return p.APG >= 3 },
	"1+ APG Career":      func(p PlayerProfile) bool { return p.APG >= 1 },
	"Under 1 APG Career": func(p PlayerProfile) bool { return p.APG < 1 },

	"1.5+ SPG Career": func(p PlayerProfile) bool { return p.SPG >= 1.5 },
	"1+ SPG Career":   func(p PlayerProfile) bool { return p.SPG >= 1 },
	"0.5+ SPG Career": func(p PlayerProfile) bool { return p.SPG >= 0.5 },

	"1.5+ BPG Career": func(p PlayerProfile) bool { return p.BPG >= 1.5 },
	"1+ BPG Career":   func(p PlayerProfile) bool { return p.BPG >= 1 },
	"0.5+ BPG Career": func(p PlayerProfile) bool { return p.BPG >= 0.5 },

	"Lottery Pick": func(p PlayerProfile) bool { return p.LotteryPick },
	"Undrafted":    func(p PlayerProfile) bool { return p.DraftYear == -1 },

	"Drafted in 2010s":        func(p PlayerProfile) bool { return p.DraftYear >= 2010 && p.DraftYear <= 2019 },
	"Drafted in 2000s":        func(p PlayerProfile) bool { return p.DraftYear >= 2000 && p.DraftYear <= 2009 },
	"Drafted in 1990s":        func(p PlayerProfile) bool { return p.DraftYear >= 1990 && p.DraftYear <= 1999 },
	"Drafted Before 1990":     func(p PlayerProfile) bool { return p.DraftYear < 1990 && p.DraftYear != -1 },
	"Drafted 2015 or Later":   func(p PlayerProfile) bool { return p.DraftYear >= 2015 },
	"Drafted 2010 or Earlier": func(p PlayerProfile) bool { return p.DraftYear <= 2010 && p.DraftYear != -1 },

	"10+ Years in League": func(p PlayerProfile) bool { return p.YearsInLeague >= 10 },
	"5-9 Years in League": func(p PlayerProfile) bool { return p.YearsInLeague >= 5 && p.YearsInLeague <= 9 },
	"0-4 Years in League": func(p PlayerProfile) bool { return p.YearsInLeague >= 0 && p.YearsInLeague <= 4 },
	"Rookie (1 Year)":     func(p PlayerProfile) bool { return p.YearsInLeague == 1 },

	"Went to a College with State in its Name":    collegeContains("State"),
	"Went to a College with Michigan in its Name": collegeContains("Michigan"),

	"20+ PPG and 5+ APG":        func(p PlayerProfile) bool { return p.PPG >= 20 && p.APG >= 5 },
	"10+ RPG and 1+ BPG":        func(p PlayerProfile) bool { return p.RPG >= 10 && p.BPG >= 1 },
	"5+ APG and 1+ SPG":         func(p PlayerProfile) bool { return p.APG >= 5 && p.SPG >= 1 },
	"Champion Without All-Star": func(p PlayerProfile) bool { return p.Rings > 0 && p.AllStars == 0 },
}

func collegeContains(word string) predicate {
	word = strings.ToLower(word)
	return func(p PlayerProfile) bool {
		return p.College != "" && strings.Contains(strings.ToLower(p.College), word)
	}
}

// Catalog is an immutable snapshot of all category labels: the dynamic team
// names followed by the fixed stat labels. Build it once at bootstrap and hand
// it to both the generator and the matcher, so there is no lazy-load state to
// race on under concurrent first requests.
type Catalog struct {
	teams  []string
	labels []string
	teamed map[string]struct{}
}

// NewCatalog builds a catalog from the valid team names. It fails if a team
// name collides with a stat label, if a label appears twice, or if the stat
// label list and the predicate table have drifted apart.
func NewCatalog(teamNames []string) (*Catalog, error) {
	if len(statLabels) != len(statPredicates) {
		return nil, fmt.Errorf("catalog: %d stat labels but %d predicates", len(statLabels), len(statPredicates))
	}
	for _, label := range statLabels {
		if _, ok := statPredicates[label]; !ok {
			return nil, fmt.Errorf("catalog: stat label %q has no predicate", label)
		}
	}

	c := &Catalog{
		teams:  make([]string, 0, len(teamNames)),
		labels: make([]string, 0, len(teamNames)+len(statLabels)),
		teamed: make(map[string]struct{}, len(teamNames)),
	}

	seen := make(map[string]struct{}, len(teamNames)+len(statLabels))
	for _, name := range teamNames {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("catalog: duplicate team name %q", name)
		}
		if _, clash := statPredicates[name]; clash {
			return nil, fmt.Errorf("catalog: team name %q collides with a stat label", name)
		}
		seen[name] = struct{}{}
		c.teams = append(c.teams, name)
		c.teamed[name] = struct{}{}
		c.labels = append(c.labels, name)
	}
	c.labels = append(c.labels, statLabels...)

	if len(c.labels) < 2 {
		return nil, fmt.Errorf("catalog: need at least 2 labels, have %d", len(c.labels))
	}
	return c, nil
}

// Teams returns the team labels in provider order.
func (c *Catalog) Teams() []string {
	out := make([]string, len(c.teams))
	copy(out, c.teams)
	return out
}

// Labels returns the combined catalog in its canonical order. The order is
// part of the seed-to-puzzle mapping, so it must stay stable for a given
// team-name snapshot.
func (c *Catalog) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// IsTeam reports whether a label is a team name.
func (c *Catalog) IsTeam(label string) bool {
	_, ok := c.teamed[label]
	return ok
}

// Size returns the total label count.
func (c *Catalog) Size() int {
	return len(c.labels)
}
