package pad

const heaterBaseURL = "https://s3.amazonaws.com/freecodecamp/drums/"

// DefaultKit returns the built-in "Heater" kit, laid out for a 3x3 grid on the left hand of a QWERTY keyboard.
func DefaultKit() []Pad {
	return []Pad{
		{ID: "heater1", Key: "Q", Source: heaterBaseURL + "Heater-1.mp3", Label: "Heater 1"},
		{ID: "heater2", Key: "W", Source: heaterBaseURL + "Heater-2.mp3", Label: "Heater 2"},
		{ID: "heater3", Key: "E", Source: heaterBaseURL + "Heater-3.mp3", Label: "Heater 3"},
		{ID: "heater4", Key: "A", Source: heaterBaseURL + "Heater-4_1.mp3", Label: "Heater 4"},
		{ID: "clap", Key: "S", Source: heaterBaseURL + "Heater-6.mp3", Label: "Clap"},
		{ID: "open-hh", Key: "D", Source: heaterBaseURL + "Dsc_Oh.mp3", Label: "Open HH"},
		{ID: "kick-n-hat", Key: "Z", Source: heaterBaseURL + "Kick_n_Hat.mp3", Label: "Kick 'n Hat"},
		{ID: "kick", Key: "X", Source: heaterBaseURL + "RP4_KICK_1.mp3", Label: "Kick"},
		{ID: "closed-hh", Key: "C", Source: heaterBaseURL + "Cev_H2.mp3", Label: "Closed HH"},
	}
}
