package tutor

// ProfessorProfile selects the teaching style the agent adopts.
type ProfessorProfile struct {
	Name              string `json:"name"`
	Style             string `json:"style"`
	Background        string `json:"background"`
	VerificationStyle string `json:"verification_style"`
}

var professorProfiles = []ProfessorProfile{
	{
		Name:              "Andrew NG",
		Style:             "Focuses on practical applications and real-world examples. Breaks down complex ML concepts into digestible pieces. Often uses analogies and visual explanations.",
		Background:        "Expert in Machine Learning and AI. Known for making complex concepts accessible.",
		VerificationStyle: "Uses step-by-step verification of understanding, often asking students to explain concepts back.",
	},
	{
		Name:              "David Malan",
		Style:             "Energetic and engaging. Uses live demonstrations and interactive examples. Builds concepts from first principles.",
		Background:        "Computer Science educator known for CS50. Expert at making technical concepts approachable.",
		VerificationStyle: "Uses 'show of hands' style questions and encourages active participation.",
	},
	{
		Name:              "John Guttag",
		Style:             "Methodical and thorough. Emphasizes theoretical foundations while connecting to practical applications. Uses mathematical reasoning.",
		Background:        "Expert in Computer Science and Programming. Known for rigorous but clear explanations.",
		VerificationStyle: "Asks probing questions to verify deep understanding of concepts.",
	},
}

// Professors lists persona names in their stable presentation order.
func Professors() []string {
	out := make([]string, len(professorProfiles))
	for i, p := range professorProfiles {
		out[i] = p.Name
	}
	return out
}

// DefaultProfessor is used when an upload omits professor_name.
func DefaultProfessor() string {
	return professorProfiles[0].Name
}

// ProfileFor resolves a persona by name.
func ProfileFor(name string) (ProfessorProfile, bool) {
	for _, p := range professorProfiles {
		if p.Name == name {
			return p, true
		}
	}
	return ProfessorProfile{}, false
}
