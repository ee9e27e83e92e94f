package types

// fullNames maps team abbreviations to the full franchise names used
// by grade and injury feeds. Boundary adapters accept either form.
var fullNames = map[TeamID]string{
	"ARI": "Arizona Cardinals",
	"ATL": "Atlanta Falcons",
	"BAL": "Baltimore Ravens",
	"BUF": "Buffalo Bills",
	"CAR": "Carolina Panthers",
	"CHI": "Chicago Bears",
	"CIN": "Cincinnati Bengals",
	"CLE": "Cleveland Browns",
	"DAL": "Dallas Cowboys",
	"DEN": "Denver Broncos",
	"DET": "Detroit Lions",
	"GB":  "Green Bay Packers",
	"HOU": "Houston Texans",
	"IND": "Indianapolis Colts",
	"JAX": "Jacksonville Jaguars",
	"KC":  "Kansas City Chiefs",
	"LAC": "Los Angeles Chargers",
	"LAR": "Los Angeles Rams",
	"LV":  "Las Vegas Raiders",
	"MIA": "Miami Dolphins",
	"MIN": "Minnesota Vikings",
	"NE":  "New England Patriots",
	"NO":  "New Orleans Saints",
	"NYG": "New York Giants",
	"NYJ": "New York Jets",
	"PHI": "Philadelphia Eagles",
	"PIT": "Pittsburgh Steelers",
	"SEA": "Seattle Seahawks",
	"SF":  "San Francisco 49ers",
	"TB":  "Tampa Bay Buccaneers",
	"TEN": "Tennessee Titans",
	"WAS": "Washington Commanders",
}

// abbreviations is the inverse of fullNames, built once at init.
var abbreviations = func() map[string]TeamID {
	m := make(map[string]TeamID, len(fullNames))
	for abbr, name := range fullNames {
		m[name] = abbr
	}
	return m
}()

// FullName returns the full franchise name for an abbreviation, or the
// abbreviation itself when unknown.
func (t TeamID) FullName() string {
	if name, ok := fullNames[t]; ok {
		return name
	}
	return string(t)
}

// ResolveTeam accepts an abbreviation or a full franchise name and
// returns the canonical TeamID. The second result is false when the
// input matches neither form.
func ResolveTeam(s string) (TeamID, bool) {
	if _, ok := fullNames[TeamID(s)]; ok {
		return TeamID(s), true
	}
	if abbr, ok := abbreviations[s]; ok {
		return abbr, true
	}
	return "", false
}
