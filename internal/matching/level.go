package matching

// Level describes an experience band for display
type Level struct {
	Name       string `json:"name"`
	LookingFor string `json:"looking_for"`
}

// LevelFor returns the experience band for years of experience
func LevelFor(years int) Level {
	switch {
	case years <= 0:
		return Level{Name: "Fresher/Student", LookingFor: "Internships, Entry-level, Trainee roles"}
	case years <= 2:
		return Level{Name: "Junior", LookingFor: "Junior, Associate roles"}
	case years <= 5:
		return Level{Name: "Mid-level", LookingFor: "Mid-level positions"}
	default:
		return Level{Name: "Senior", LookingFor: "Senior, Lead positions"}
	}
}
