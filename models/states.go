// models/states.go
package models

// StateInfo holds one state and its fixed district options. District choices
// on the signup form are a pure function of the selected state.
type StateInfo struct {
	Name      string   `json:"name"`
	Districts []string `json:"districts"`
}

// States is the fixed list offered by the signup form.
var States = []StateInfo{
	{
		Name:      "Andhra Pradesh",
		Districts: []string{"Anantapur", "Chittoor", "East Godavari", "Guntur", "Krishna", "Kurnool", "Visakhapatnam"},
	},
	{
		Name:      "Delhi",
		Districts: []string{"Central Delhi", "East Delhi", "New Delhi", "North Delhi", "South Delhi", "West Delhi"},
	},
	{
		Name:      "Gujarat",
		Districts: []string{"Ahmedabad", "Gandhinagar", "Rajkot", "Surat", "Vadodara"},
	},
	{
		Name:      "Karnataka",
		Districts: []string{"Bengaluru Urban", "Belagavi", "Dakshina Kannada", "Mysuru", "Shivamogga", "Udupi"},
	},
	{
		Name:      "Maharashtra",
		Districts: []string{"Ahmednagar", "Aurangabad", "Kolhapur", "Mumbai City", "Mumbai Suburban", "Nagpur", "Nashik", "Pune", "Thane"},
	},
	{
		Name:      "Tamil Nadu",
		Districts: []string{"Chennai", "Coimbatore", "Madurai", "Salem", "Tiruchirappalli"},
	},
	{
		Name:      "Uttar Pradesh",
		Districts: []string{"Agra", "Ghaziabad", "Kanpur Nagar", "Lucknow", "Prayagraj", "Varanasi"},
	},
	{
		Name:      "West Bengal",
		Districts: []string{"Darjeeling", "Howrah", "Kolkata", "Murshidabad", "North 24 Parganas"},
	},
}

// DistrictsForState returns the district options for a state, or nil when the
// state is not in the fixed list.
func DistrictsForState(state string) []string {
	for _, s := range States {
		if s.Name == state {
			return s.Districts
		}
	}
	return nil
}
