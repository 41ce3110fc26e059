package command

import (
	"github.com/sandevgo/bowen/internal/core"
)

func NewCommands(api core.LegislationAPI) []core.Command {
	return []core.Command{
		NewNewCommand(),
		NewResetCommand(),
		NewSessionCommand(),
		NewSourcesCommand(),
		NewRetryCommand(),
		NewActsCommand(api),
		NewSearchCommand(api),
		NewHealthCommand(api),
		NewExamplesCommand(),
	}
}
