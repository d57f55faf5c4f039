package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "socialboard"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api server",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Starts the main service with all http apis and the websocket feed.`,
		},
	}

	s.app = app
}
