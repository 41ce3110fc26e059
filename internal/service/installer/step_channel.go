package installer

const (
	channelCLI      = "cli"
	channelTelegram = "telegram"
	channelBoth     = "both"
)

// NewChannelStep selects where Bowen answers when started.
func NewChannelStep() Step {
	return &ChoiceStep{
		title: "Select your Chat Channel:",
		choices: []choice{
			{id: channelCLI, title: "Terminal", desc: "interactive prompt"},
			{id: channelTelegram, title: "Telegram", desc: "bot, runs unattended"},
			{id: channelBoth, title: "Terminal and Telegram"},
		},
		apply: func(state *InstallState, id string) {
			state.App.EnableCLI = id != channelTelegram
			state.App.EnableTelegram = id != channelCLI
		},
	}
}
