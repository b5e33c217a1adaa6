// models/election.go
package models

// Election is one entry on the upcoming-elections list.
type Election struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Date           string `json:"date"`
	Phase          string `json:"phase,omitempty"`
	Constituencies int    `json:"constituencies,omitempty"`
	Live           bool   `json:"live"`
}

// Candidate is one entry on the fixed ballot.
type Candidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
}

// PartyResult is one row of the tallied demo results.
type PartyResult struct {
	ID         string `json:"id"`
	Party      string `json:"party"`
	Votes      string `json:"votes"`
	Percentage string `json:"percentage"`
	Color      string `json:"color"`
}

// Demo data. This is a mock: nothing feeds these tallies and cast votes are
// never counted into them.
var (
	UpcomingElections = []Election{
		{ID: "1", Name: "Maharashtra Assembly Election", Date: "20 November 2024", Phase: "Phase 1", Constituencies: 288, Live: true},
		{ID: "2", Name: "Local Body Elections", Date: "5 December 2024"},
	}

	Candidates = []Candidate{
		{ID: "1", Name: "Rajesh Kumar", Party: "Indian National Congress"},
		{ID: "2", Name: "Priya Sharma", Party: "Bharatiya Janata Party"},
		{ID: "3", Name: "Amit Patel", Party: "Aam Aadmi Party"},
		{ID: "4", Name: "Sunita Desai", Party: "Shiv Sena"},
	}

	LiveResults = []PartyResult{
		{ID: "1", Party: "Bharatiya Janata Party", Votes: "12,46,162", Percentage: "36.7%", Color: "#FFA500"},
		{ID: "2", Party: "Indian National Congress", Votes: "9,87,684", Percentage: "29.1%", Color: "#1976D2"},
		{ID: "3", Party: "Aam Aadmi Party", Votes: "4,57,168", Percentage: "13.5%", Color: "#4CAF50"},
		{ID: "4", Party: "Trinamool Congress", Votes: "3,46,084", Percentage: "10.2%", Color: "#008080"},
	}
)

// CandidateByID looks up a ballot entry.
func CandidateByID(id string) (Candidate, bool) {
	for _, c := range Candidates {
		if c.ID == id {
			return c, true
		}
	}
	return Candidate{}, false
}
